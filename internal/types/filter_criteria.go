package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// GradeRange is an inclusive numeric grade window.
type GradeRange struct {
	Min int `json:"min" validate:"gte=0"`
	Max int `json:"max" validate:"gtefield=Min"`
}

// Contains reports whether grade lies inside the range.
func (g GradeRange) Contains(grade int) bool {
	return grade >= g.Min && grade <= g.Max
}

// DateBound is one side of a date filter built from year/month/day parts.
// A zero part is unspecified.
type DateBound struct {
	Year  int `json:"year,omitempty" validate:"gte=0,lte=9999"`
	Month int `json:"month,omitempty" validate:"gte=0,lte=12"`
	Day   int `json:"day,omitempty" validate:"gte=0,lte=31"`
}

// IsZero reports whether every part is unspecified.
func (b DateBound) IsZero() bool {
	return b.Year == 0 && b.Month == 0 && b.Day == 0
}

// BoundFromTime builds a fully specified bound from t.
func BoundFromTime(t time.Time) DateBound {
	return DateBound{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Selection holds the chosen values of the categorical filter dimensions.
// An empty slice leaves the dimension unconstrained.
type Selection struct {
	BGs           []string `json:"bgs,omitempty"`
	JobCategories []string `json:"job_categories,omitempty"`
	JobTitles     []string `json:"job_titles,omitempty"`
	Grades        []string `json:"grades,omitempty"`
}

// FilterCriteria is the resolved filter request for one report.
type FilterCriteria struct {
	Selection
	GradeRange *GradeRange `json:"grade_range,omitempty"`
	Start      DateBound   `json:"start,omitempty"`
	End        DateBound   `json:"end,omitempty"`
}

// DateRequested reports whether the caller constrained dates at all.
func (c FilterCriteria) DateRequested() bool {
	return !c.Start.IsZero() || !c.End.IsZero()
}

// Validate validates the criteria using the validator.
func (c *FilterCriteria) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid filter criteria: %w", err)
	}
	return nil
}
