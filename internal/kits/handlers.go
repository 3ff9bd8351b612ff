package kits

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/burnett013/faa-kit-aircraft-main/internal/db"
	"github.com/burnett013/faa-kit-aircraft-main/internal/regions"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// stateFilter builds the state-set restriction for a request: explicit
// ?states=TX,CA codes plus any ?regions=North,West names resolved
// server-side. Both empty means unrestricted.
func stateFilter(r *http.Request) []string {
	states := splitCSV(r.URL.Query().Get("states"))
	states = append(states, regions.StatesForRegions(splitCSV(r.URL.Query().Get("regions")))...)
	return states
}

// KitsHandler lists kits: GET /kits?mfr=&model=&state=&states=&regions=&kitmfg=&kitmdl=&limit=&offset=
// The page is the JSON body; the pre-pagination match total rides in the
// X-Total-Count header so clients can tell when they hit the last page.
func KitsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := DefaultLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxLimit {
			http.Error(w, "limit must be an integer between 1 and 5000", http.StatusBadRequest)
			return
		}
		limit = n
	}

	offset := 0
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "offset must be a non-negative integer", http.StatusBadRequest)
			return
		}
		offset = n
	}

	total, rows, err := List(db.DB, ListParams{
		Mfr:    q.Get("mfr"),
		Model:  q.Get("model"),
		State:  q.Get("state"),
		States: stateFilter(r),
		KitMfg: q.Get("kitmfg"),
		KitMdl: q.Get("kitmdl"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	writeJSON(w, rows)
}

func distinctHandler(field string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vals, err := DistinctValues(db.DB, field, "")
		if err != nil {
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, vals)
	}
}

// KitMdlsHandler lists the kit models for one manufacturer, feeding the
// cascading manufacturer → model dropdown.
func KitMdlsHandler(w http.ResponseWriter, r *http.Request) {
	kitmfg := r.URL.Query().Get("kitmfg")
	if kitmfg == "" {
		http.Error(w, "kitmfg is required", http.StatusBadRequest)
		return
	}

	vals, err := DistinctValues(db.DB, "kitmdl", kitmfg)
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, vals)
}

// DistinctFieldHandler serves GET /kits/filters/values/{field}. Fields
// outside the allow-list are a caller error, not an empty list.
func DistinctFieldHandler(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")

	vals, err := DistinctValues(db.DB, field, r.URL.Query().Get("kitmfg"))
	if err != nil {
		if errors.Is(err, ErrUnsupportedField) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, vals)
}

// RegionNamesHandler returns the closed set of selectable region names.
func RegionNamesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, regions.Names())
}

func aggHandler(count func(db *gorm.DB, states []string) ([]GroupCount, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := count(db.DB, stateFilter(r))
		if err != nil {
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, rows)
	}
}

// CityCountHandler returns the number of distinct cities in scope.
func CityCountHandler(w http.ResponseWriter, r *http.Request) {
	n, err := CountDistinctCities(db.DB, stateFilter(r))
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]int64{"city_count": n})
}
