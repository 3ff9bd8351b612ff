package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Row is one raw extract line, untyped. Numeric and date coercion happens
// in SQL when the curated table is built, mirroring the columns the FAA
// releasable-database extract carries.
type Row struct {
	NNumber        string
	SerialNumber   string
	MfrMdlCode     string
	Mfr            string
	Model          string
	AcftCat        string
	NoSeats        string
	AcWeight       string
	EngCat         string
	SurfCat        string
	NoEng          string
	City           string
	State          string
	ZipMin         string
	KitMfg         string
	KitMdl         string
	ModeSCode      string
	YearMfr        string
	LastActionDate string
	CertIssueDate  string
	AirWorthDate   string
}

// requiredColumns are the extract headers the importer depends on, in the
// FAA's own naming.
var requiredColumns = []string{
	"N-NUMBER", "SERIAL NUMBER", "MFR MDL CODE", "MFR", "MODEL",
	"ACFTCAT", "NO-SEATS", "AC-WEIGHT", "ENGCAT",
	"SURFCAT", "NO-ENG", "CITY", "STATE", "ZIP_MIN",
	"KITMFG", "KITMDL", "MODE S CODE",
	"YEAR MFR", "LAST ACTION DATE", "CERT ISSUE DATE", "AIR WORTH DATE",
}

// ParseCSV reads the extract at path. Rows without a registration code and
// rows repeating one already seen are skipped with a warning instead of
// failing the whole load; the returned warnings end up on the ingest-run
// audit row.
func ParseCSV(path string) ([]Row, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, errors.New("csv has no data rows")
	}

	header := records[0]
	// Handle BOM on first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, nil, fmt.Errorf("missing required column: %s", name)
		}
	}

	seen := map[string]bool{}
	var out []Row
	var warnings []string

	for rowIdx := 1; rowIdx < len(records); rowIdx++ {
		rec := records[rowIdx]
		get := func(name string) string {
			i := col[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		n := get("N-NUMBER")
		if n == "" {
			warnings = append(warnings, fmt.Sprintf("row %d: blank N-NUMBER, skipped", rowIdx+1))
			continue
		}
		if seen[n] {
			warnings = append(warnings, fmt.Sprintf("row %d: duplicate N-NUMBER %q, skipped", rowIdx+1, n))
			continue
		}
		seen[n] = true

		// State codes are normalized here once; the query layer assumes
		// stored codes are already uppercase.
		state := strings.ToUpper(get("STATE"))
		if len(state) > 2 {
			state = state[:2]
		}

		out = append(out, Row{
			NNumber:        n,
			SerialNumber:   get("SERIAL NUMBER"),
			MfrMdlCode:     get("MFR MDL CODE"),
			Mfr:            get("MFR"),
			Model:          get("MODEL"),
			AcftCat:        get("ACFTCAT"),
			NoSeats:        get("NO-SEATS"),
			AcWeight:       get("AC-WEIGHT"),
			EngCat:         get("ENGCAT"),
			SurfCat:        get("SURFCAT"),
			NoEng:          get("NO-ENG"),
			City:           get("CITY"),
			State:          state,
			ZipMin:         get("ZIP_MIN"),
			KitMfg:         get("KITMFG"),
			KitMdl:         get("KITMDL"),
			ModeSCode:      get("MODE S CODE"),
			YearMfr:        get("YEAR MFR"),
			LastActionDate: get("LAST ACTION DATE"),
			CertIssueDate:  get("CERT ISSUE DATE"),
			AirWorthDate:   get("AIR WORTH DATE"),
		})
	}

	return out, warnings, nil
}
