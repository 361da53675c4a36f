package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// SearchFilters holds the normalized search parameters. All fields are
// optional; zero values mean "not filtered".
type SearchFilters struct {
	Query        string
	Location     string
	Region       string
	Ward         string
	DaycareType  string
	PriceMin     *float64
	PriceMax     *float64
	AgeRange     []string
	Availability string // "yes" or "no", only meaningful with AgeRange
	ProgramAge   []string
	Features     []string
	CWELCC       bool
	Subsidy      bool
	Page         int
	Limit        int
}

// condition is one SQL predicate with its bind arguments. Conditions
// combine conjunctively when applied.
type condition struct {
	expr string
	args []interface{}
}

// ageKeyMap translates the caller-facing age range vocabulary to the
// JSON keys stored in the age_groups column. Lookup is done on the
// trimmed, lowercased input, so pluralization and casing both resolve
// to the same key.
var ageKeyMap = map[string]string{
	"infants":      "infant",
	"infant":       "infant",
	"toddlers":     "toddler",
	"toddler":      "toddler",
	"preschool":    "preschool",
	"kindergarten": "kindergarten",
	"school age":   "schoolAge",
	"schoolage":    "schoolAge",
}

// NormalizeAgeKeys maps raw age range values to canonical age group
// keys, dropping anything outside the known vocabulary.
func NormalizeAgeKeys(values []string) []string {
	keys := make([]string, 0, len(values))
	for _, v := range values {
		if key, ok := ageKeyMap[strings.ToLower(strings.TrimSpace(v))]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// containsPattern wraps a term for ILIKE substring matching.
func containsPattern(term string) string {
	return "%" + term + "%"
}

// textSearchCondition builds the shared disjunction group for the free
// text and location filters. Both contribute to one OR group, so a
// query matching either the text fields or the location fields passes.
func textSearchCondition(query, location string) (condition, bool) {
	var exprs []string
	var args []interface{}

	if query != "" {
		pattern := containsPattern(query)
		exprs = append(exprs,
			"name ILIKE ?",
			"description ILIKE ?",
			"EXISTS (SELECT 1 FROM jsonb_array_elements_text(features) AS ft WHERE ft ILIKE ?)",
		)
		args = append(args, pattern, pattern, pattern)
	}

	if location != "" {
		pattern := containsPattern(location)
		exprs = append(exprs, "city ILIKE ?", "address ILIKE ?")
		args = append(args, pattern, pattern)
	}

	if len(exprs) == 0 {
		return condition{}, false
	}

	return condition{
		expr: "(" + strings.Join(exprs, " OR ") + ")",
		args: args,
	}, true
}

// ageGroupCondition builds the capacity predicate for the requested
// age groups. With availability "yes" a listing must have open
// capacity in at least one requested group; with "no" it must fail to
// serve at least one requested group (capacity zero or the sub-record
// missing). The OR across groups is deliberate in both branches.
func ageGroupCondition(groups []string, availability string) (condition, bool) {
	keys := NormalizeAgeKeys(groups)
	if len(keys) == 0 {
		return condition{}, false
	}

	wantCapacity := availability != "no"

	exprs := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for _, key := range keys {
		if wantCapacity {
			exprs = append(exprs, "(age_groups #>> ?)::numeric > 0")
		} else {
			exprs = append(exprs, "COALESCE((age_groups #>> ?)::numeric, 0) = 0")
		}
		args = append(args, fmt.Sprintf("{%s,capacity}", key))
	}

	return condition{
		expr: "(" + strings.Join(exprs, " OR ") + ")",
		args: args,
	}, true
}

// arrayIntersectsCondition matches rows whose JSONB string array
// column shares at least one element with values.
func arrayIntersectsCondition(column string, values []string) (condition, bool) {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return condition{}, false
	}

	return condition{
		expr: fmt.Sprintf("EXISTS (SELECT 1 FROM jsonb_array_elements_text(%s) AS elem WHERE elem IN ?)", column),
		args: []interface{}{cleaned},
	}, true
}

// conditions assembles all active filter predicates.
func (f SearchFilters) conditions() []condition {
	var conds []condition

	if c, ok := textSearchCondition(f.Query, f.Location); ok {
		conds = append(conds, c)
	}

	if f.Region != "" {
		conds = append(conds, condition{
			expr: "region ILIKE ?",
			args: []interface{}{containsPattern(f.Region)},
		})
	}

	if f.PriceMin != nil {
		conds = append(conds, condition{
			expr: "price >= ?",
			args: []interface{}{*f.PriceMin},
		})
	}
	if f.PriceMax != nil {
		conds = append(conds, condition{
			expr: "price <= ?",
			args: []interface{}{*f.PriceMax},
		})
	}

	if c, ok := ageGroupCondition(f.AgeRange, f.Availability); ok {
		conds = append(conds, c)
	}

	if c, ok := arrayIntersectsCondition("program_age", f.ProgramAge); ok {
		conds = append(conds, c)
	}

	if c, ok := arrayIntersectsCondition("features", f.Features); ok {
		conds = append(conds, c)
	}

	if f.Ward != "" {
		pattern := containsPattern(f.Ward)
		conds = append(conds, condition{
			expr: "(ward ILIKE ? OR city ILIKE ?)",
			args: []interface{}{pattern, pattern},
		})
	}

	if f.DaycareType != "" {
		conds = append(conds, condition{
			expr: "daycare_type ILIKE ?",
			args: []interface{}{containsPattern(f.DaycareType)},
		})
	}

	if f.CWELCC {
		conds = append(conds, condition{
			expr: "cwelcc = ?",
			args: []interface{}{true},
		})
	}
	if f.Subsidy {
		conds = append(conds, condition{
			expr: "subsidy_available = ?",
			args: []interface{}{true},
		})
	}

	return conds
}

// apply chains every active predicate onto the query as a conjunction.
func (f SearchFilters) apply(db *gorm.DB) *gorm.DB {
	for _, c := range f.conditions() {
		db = db.Where(c.expr, c.args...)
	}
	return db
}
