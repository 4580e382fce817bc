package types

// Dimension names a categorical filter dimension.
type Dimension string

const (
	DimensionBG          Dimension = "bgs"
	DimensionJobCategory Dimension = "job_categories"
	DimensionJobTitle    Dimension = "job_titles"
	DimensionGrade       Dimension = "grades"
)

// Dimensions lists the categorical dimensions in panel order.
var Dimensions = []Dimension{DimensionBG, DimensionJobCategory, DimensionJobTitle, DimensionGrade}

// Values returns the selection for one dimension.
func (s Selection) Values(d Dimension) []string {
	switch d {
	case DimensionBG:
		return s.BGs
	case DimensionJobCategory:
		return s.JobCategories
	case DimensionJobTitle:
		return s.JobTitles
	case DimensionGrade:
		return s.Grades
	}
	return nil
}

// With returns a copy of s with one dimension replaced.
func (s Selection) With(d Dimension, values []string) Selection {
	switch d {
	case DimensionBG:
		s.BGs = values
	case DimensionJobCategory:
		s.JobCategories = values
	case DimensionJobTitle:
		s.JobTitles = values
	case DimensionGrade:
		s.Grades = values
	}
	return s
}

// Value returns a record's value for one dimension.
func (r HireRecord) Value(d Dimension) string {
	switch d {
	case DimensionBG:
		return r.BG
	case DimensionJobCategory:
		return r.JobCategory
	case DimensionJobTitle:
		return r.JobTitle
	case DimensionGrade:
		return r.Grade
	}
	return ""
}

// Options holds the selectable values per dimension.
type Options struct {
	BGs           []string `json:"bgs"`
	JobCategories []string `json:"job_categories"`
	JobTitles     []string `json:"job_titles"`
	Grades        []string `json:"grades"`
}

// Get returns the option list for one dimension.
func (o Options) Get(d Dimension) []string {
	return Selection(o).Values(d)
}
