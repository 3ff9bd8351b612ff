package kits

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrUnsupportedField is returned when a distinct-values query names a field
// outside the allow-list. It marks a caller bug, not a data condition.
var ErrUnsupportedField = errors.New("unsupported field for distinct")

const (
	DefaultLimit = 100
	MaxLimit     = 5000
)

// ListParams are the composable filters for List. Zero values mean
// "no restriction on this field"; filters are combined with AND.
type ListParams struct {
	Mfr    string
	Model  string
	State  string
	States []string
	KitMfg string
	KitMdl string
	Limit  int
	Offset int
}

// GroupCount is one bucket of a group-count aggregation.
type GroupCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// distinctFields is the allow-list for DistinctValues. Only these columns
// are ever interpolated into SQL.
var distinctFields = map[string]bool{
	"mfr":       true,
	"model":     true,
	"state":     true,
	"acftcat":   true,
	"engcat":    true,
	"surfcat":   true,
	"ac_weight": true,
	"city":      true,
	"zip_min":   true,
	"kitmfg":    true,
	"kitmdl":    true,
}

// Stored state codes are uppercased at ingestion time, so matching only
// needs to normalize the incoming filter.
func upperAll(states []string) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = strings.ToUpper(s)
	}
	return out
}

func stateScoped(q *gorm.DB, states []string) *gorm.DB {
	if len(states) > 0 {
		q = q.Where("state IN ?", upperAll(states))
	}
	return q
}

// List returns the total number of matching kits and one page of them,
// ordered by registration code so repeated calls paginate stably.
func List(db *gorm.DB, p ListParams) (int64, []Kit, error) {
	q := db.Model(&Kit{})

	if p.KitMfg != "" {
		q = q.Where("kitmfg = ?", p.KitMfg)
	}
	if p.KitMdl != "" {
		q = q.Where("kitmdl = ?", p.KitMdl)
	}
	if p.Mfr != "" {
		q = q.Where("mfr = ?", p.Mfr)
	}
	if p.Model != "" {
		q = q.Where("model = ?", p.Model)
	}
	if p.State != "" {
		q = q.Where("state = ?", strings.ToUpper(p.State))
	}
	q = stateScoped(q, p.States)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows := []Kit{}
	err := q.Order("n_number").Limit(limit).Offset(p.Offset).Find(&rows).Error
	if err != nil {
		return 0, nil, err
	}
	return total, rows, nil
}

// DistinctValues returns the distinct non-null, non-empty values of field,
// ascending. When field is "kitmdl" and kitmfg is set, results are scoped to
// that kit manufacturer's models (cascading-dropdown case).
func DistinctValues(db *gorm.DB, field, kitmfg string) ([]string, error) {
	if !distinctFields[field] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedField, field)
	}

	q := db.Model(&Kit{}).
		Where(field + " IS NOT NULL AND " + field + " <> ''")
	if field == "kitmdl" && kitmfg != "" {
		q = q.Where("kitmfg = ?", kitmfg)
	}

	vals := []string{}
	err := q.Distinct().Order(field).Pluck(field, &vals).Error
	if err != nil {
		return nil, err
	}
	return vals, nil
}

// CountByKitMfg returns (kit manufacturer, count) buckets, largest first.
// Blank manufacturers are kept and surface as an empty name.
func CountByKitMfg(db *gorm.DB, states []string) ([]GroupCount, error) {
	return groupCount(db, "kitmfg", states, false)
}

// CountByState returns (state, count) buckets, largest first.
func CountByState(db *gorm.DB, states []string) ([]GroupCount, error) {
	return groupCount(db, "state", states, false)
}

// CountByEngCat returns (engine category, count) buckets, largest first.
// Unlike the state and manufacturer aggregations, rows with a NULL or empty
// category are excluded from the grouping.
func CountByEngCat(db *gorm.DB, states []string) ([]GroupCount, error) {
	return groupCount(db, "engcat", states, true)
}

func groupCount(db *gorm.DB, column string, states []string, skipBlanks bool) ([]GroupCount, error) {
	q := db.Model(&Kit{}).
		Select("COALESCE(" + column + ", '') AS name, COUNT(*) AS count")
	if skipBlanks {
		q = q.Where(column + " IS NOT NULL AND " + column + " <> ''")
	}
	q = stateScoped(q, states)

	out := []GroupCount{}
	err := q.Group(column).Order("COUNT(*) DESC").Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountDistinctCities counts distinct non-null city values, optionally
// restricted to a state set.
func CountDistinctCities(db *gorm.DB, states []string) (int64, error) {
	q := db.Model(&Kit{}).Where("city IS NOT NULL")
	q = stateScoped(q, states)

	var n int64
	if err := q.Distinct("city").Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
