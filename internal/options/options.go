// Package options enumerates the selectable filter values for the dashboard panel.
package options

import (
	"sort"
	"strings"

	"github.com/jonathan/channel-dashboard/internal/filtering"
	"github.com/jonathan/channel-dashboard/internal/normalize"
	"github.com/jonathan/channel-dashboard/internal/types"
)

// Enumerate returns the sorted values each dimension can take. Every dimension
// is narrowed by the other dimensions' selections but never by its own.
func Enumerate(records []types.HireRecord, sel types.Selection) types.Options {
	lists := make(map[types.Dimension][]string, len(types.Dimensions))
	for _, d := range types.Dimensions {
		others := types.FilterCriteria{Selection: sel.With(d, nil)}
		lists[d] = distinct(filtering.Apply(records, others), d)
	}
	return types.Options{
		BGs:           lists[types.DimensionBG],
		JobCategories: lists[types.DimensionJobCategory],
		JobTitles:     lists[types.DimensionJobTitle],
		Grades:        lists[types.DimensionGrade],
	}
}

// Prune drops selected values that are no longer offered.
func Prune(sel types.Selection, opts types.Options) types.Selection {
	for _, d := range types.Dimensions {
		current := sel.Values(d)
		if len(current) == 0 {
			continue
		}
		offered := make(map[string]bool, len(opts.Get(d)))
		for _, v := range opts.Get(d) {
			offered[v] = true
		}
		kept := make([]string, 0, len(current))
		for _, v := range current {
			if offered[v] {
				kept = append(kept, v)
			}
		}
		sel = sel.With(d, kept)
	}
	return sel
}

func distinct(records []types.HireRecord, d types.Dimension) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range records {
		v := r.Value(d)
		if isPlaceholder(v) || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	if d == types.DimensionGrade {
		sortGrades(out)
	} else {
		sort.Strings(out)
	}
	return out
}

func isPlaceholder(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "nan")
}

// sortGrades orders numeric grades by value, then the remaining labels lexically.
func sortGrades(grades []string) {
	sort.SliceStable(grades, func(i, j int) bool {
		a, b := normalize.ParseGrade(grades[i]), normalize.ParseGrade(grades[j])
		switch {
		case a != nil && b != nil:
			if *a != *b {
				return *a < *b
			}
			return grades[i] < grades[j]
		case a != nil:
			return true
		case b != nil:
			return false
		}
		return grades[i] < grades[j]
	})
}
