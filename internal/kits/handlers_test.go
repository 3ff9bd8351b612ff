package kits_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/burnett013/faa-kit-aircraft-main/internal/db"
	"github.com/burnett013/faa-kit-aircraft-main/internal/kits"
)

// newTestServer points the package-level DB handle at an in-memory store and
// serves the real route tree against it.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	gdb := openTestDB(t)
	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() { db.DB = prev })

	srv := httptest.NewServer(kits.SetupRoutes())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

// TestKitsEndpoint_TotalHeaderAndPage verifies the list endpoint pages the
// body and reports the pre-pagination total in X-Total-Count.
func TestKitsEndpoint_TotalHeaderAndPage(t *testing.T) {
	srv := newTestServer(t)
	seedKit(t, db.DB, "N100", "VANS", "TX", "", "", "", "")
	seedKit(t, db.DB, "N200", "VANS", "TX", "", "", "", "")
	seedKit(t, db.DB, "N300", "VANS", "CA", "", "", "", "")

	var page []kits.Kit
	resp := getJSON(t, srv.URL+"/?limit=2", &page)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Total-Count"); got != "3" {
		t.Errorf("X-Total-Count = %q, want 3", got)
	}
	if len(page) != 2 {
		t.Fatalf("expected a page of 2, got %d", len(page))
	}
	if page[0].NNumber != "N100" || page[1].NNumber != "N200" {
		t.Errorf("expected n_number ascending order, got %+v", page)
	}
}

// TestKitsEndpoint_RejectsBadPagination verifies malformed and out-of-range
// limit/offset values are 400s, never silently clamped.
func TestKitsEndpoint_RejectsBadPagination(t *testing.T) {
	srv := newTestServer(t)

	for _, q := range []string{"limit=abc", "limit=0", "limit=9999", "offset=-1", "offset=x"} {
		resp := getJSON(t, srv.URL+"/?"+q, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("query %q: expected 400, got %d", q, resp.StatusCode)
		}
	}
}

// TestKitsEndpoint_RegionsParamResolvesServerSide verifies ?regions= expands
// to member states, and that All clears the restriction.
func TestKitsEndpoint_RegionsParamResolvesServerSide(t *testing.T) {
	srv := newTestServer(t)
	seedKit(t, db.DB, "N100", "", "CA", "", "", "", "") // West
	seedKit(t, db.DB, "N200", "", "TX", "", "", "", "") // South only

	resp := getJSON(t, srv.URL+"/?regions=West", nil)
	resp.Body.Close()
	if got := resp.Header.Get("X-Total-Count"); got != "1" {
		t.Errorf("regions=West: X-Total-Count = %q, want 1", got)
	}

	resp = getJSON(t, srv.URL+"/?regions=All", nil)
	resp.Body.Close()
	if got := resp.Header.Get("X-Total-Count"); got != "2" {
		t.Errorf("regions=All: X-Total-Count = %q, want 2 (unrestricted)", got)
	}
}

// TestFilterEndpoints verifies the fixed dropdown-source routes.
func TestFilterEndpoints(t *testing.T) {
	srv := newTestServer(t)
	seedKit(t, db.DB, "N100", "VANS", "TX", "", "VANS AIRCRAFT", "RV-7", "")
	seedKit(t, db.DB, "N200", "SONEX", "CA", "", "SONEX LLC", "SONEX", "")

	var mfrs []string
	getJSON(t, srv.URL+"/filters/mfrs", &mfrs)
	if len(mfrs) != 2 {
		t.Errorf("expected 2 mfrs, got %v", mfrs)
	}

	var mdls []string
	getJSON(t, srv.URL+"/filters/kitmdls?kitmfg=VANS+AIRCRAFT", &mdls)
	if len(mdls) != 1 || mdls[0] != "RV-7" {
		t.Errorf("expected scoped [RV-7], got %v", mdls)
	}

	resp := getJSON(t, srv.URL+"/filters/kitmdls", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("kitmdls without kitmfg: expected 400, got %d", resp.StatusCode)
	}

	var names []string
	getJSON(t, srv.URL+"/filters/regions", &names)
	if len(names) != 5 || names[0] != "All" {
		t.Errorf("expected the 5 region names with All first, got %v", names)
	}
}

// TestDistinctFieldEndpoint verifies the generic field route honors the
// allow-list contract over HTTP.
func TestDistinctFieldEndpoint(t *testing.T) {
	srv := newTestServer(t)
	seedKit(t, db.DB, "N100", "", "TX", "", "", "", "P")

	var vals []string
	resp := getJSON(t, srv.URL+"/filters/values/engcat", &vals)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(vals) != 1 || vals[0] != "P" {
		t.Errorf("expected [P], got %v", vals)
	}

	resp = getJSON(t, srv.URL+"/filters/values/unknown_field", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown field: expected 400, got %d", resp.StatusCode)
	}
}

// TestAggEndpoints verifies response shape ({name,count}) and state scoping
// for the aggregation routes.
func TestAggEndpoints(t *testing.T) {
	srv := newTestServer(t)
	seedKit(t, db.DB, "N100", "", "TX", "", "VANS AIRCRAFT", "", "P")
	seedKit(t, db.DB, "N200", "", "TX", "", "VANS AIRCRAFT", "", "")
	seedKit(t, db.DB, "N300", "", "CA", "", "SONEX LLC", "", "R")

	var byState []kits.GroupCount
	getJSON(t, srv.URL+"/agg/by_state", &byState)
	if len(byState) != 2 || byState[0].Name != "TX" || byState[0].Count != 2 {
		t.Errorf("by_state = %v, want TX=2 first", byState)
	}

	var byEng []kits.GroupCount
	getJSON(t, srv.URL+"/agg/by_engcat?states=TX", &byEng)
	if len(byEng) != 1 || byEng[0].Name != "P" || byEng[0].Count != 1 {
		t.Errorf("by_engcat scoped to TX = %v, want [{P 1}]", byEng)
	}

	var byMfg []kits.GroupCount
	getJSON(t, srv.URL+"/agg/by_kitmfg?regions=South", &byMfg)
	if len(byMfg) != 1 || byMfg[0].Name != "VANS AIRCRAFT" || byMfg[0].Count != 2 {
		t.Errorf("by_kitmfg scoped to South = %v, want [{VANS AIRCRAFT 2}]", byMfg)
	}
}

// TestCityCountEndpoint verifies the metrics route wraps the count in a
// named field.
func TestCityCountEndpoint(t *testing.T) {
	srv := newTestServer(t)
	seedKit(t, db.DB, "N100", "", "TX", "AUSTIN", "", "", "")
	seedKit(t, db.DB, "N200", "", "TX", "AUSTIN", "", "", "")
	seedKit(t, db.DB, "N300", "", "CA", "CHICO", "", "", "")

	var out map[string]int64
	getJSON(t, srv.URL+"/metrics/city_count?states=TX", &out)
	if out["city_count"] != 1 {
		t.Errorf(`expected {"city_count":1}, got %v`, out)
	}
}

// TestKitsEndpoint_EmptyStoreReturnsEmptyArray verifies a fresh store yields
// [] rather than null or an error.
func TestKitsEndpoint_EmptyStoreReturnsEmptyArray(t *testing.T) {
	srv := newTestServer(t)

	var page []kits.Kit
	resp := getJSON(t, srv.URL+"/", &page)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if page == nil || len(page) != 0 {
		t.Errorf("expected empty array, got %v", page)
	}
}
