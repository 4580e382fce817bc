// Package filtering selects the hire records matching a report's filter criteria.
package filtering

import (
	"time"

	"github.com/jonathan/channel-dashboard/internal/types"
)

// Apply returns the records matching c, in input order.
//
// Categorical dimensions with an empty selection are unconstrained. A grade
// range drops records without a numeric grade. Records without a hire date are
// dropped only when c constrains dates; an open side of the range resolves to
// the earliest/latest date among the records that survived the other filters.
func Apply(records []types.HireRecord, c types.FilterCriteria) []types.HireRecord {
	out := make([]types.HireRecord, 0, len(records))
	for _, r := range records {
		if matchesSelection(r, c.Selection) && matchesGrade(r, c.GradeRange) {
			out = append(out, r)
		}
	}

	if !c.DateRequested() {
		return out
	}

	dated := out[:0:0]
	for _, r := range out {
		if r.HasDate() {
			dated = append(dated, r)
		}
	}

	start, end, ok := ResolveBounds(dated, c)
	if !ok {
		return dated
	}

	inRange := make([]types.HireRecord, 0, len(dated))
	for _, r := range dated {
		d := *r.HireDate
		if !d.Before(start) && !d.After(end) {
			inRange = append(inRange, r)
		}
	}
	return inRange
}

// ResolveBounds turns the criteria's date parts into concrete inclusive bounds.
// Unspecified or invalid sides fall back to the min/max hire date of records.
// ok is false when records carry no dates.
func ResolveBounds(records []types.HireRecord, c types.FilterCriteria) (start, end time.Time, ok bool) {
	minDate, maxDate, ok := types.DateRange(records)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return resolveStart(c.Start, minDate), resolveEnd(c.End, maxDate), true
}

func matchesSelection(r types.HireRecord, sel types.Selection) bool {
	for _, d := range types.Dimensions {
		if !contains(sel.Values(d), r.Value(d)) {
			return false
		}
	}
	return true
}

// contains treats an empty selection as "everything"
func contains(selected []string, v string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if s == v {
			return true
		}
	}
	return false
}

func matchesGrade(r types.HireRecord, g *types.GradeRange) bool {
	if g == nil {
		return true
	}
	if r.GradeNumeric == nil {
		return false
	}
	return g.Contains(*r.GradeNumeric)
}
