// Package types provides type definitions for structured data used throughout the channel dashboard.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// HireRecord is one spreadsheet row after normalization.
// Absent text fields are "" and absent dates/grades are nil; no other
// missing-value markers survive normalization.
type HireRecord struct {
	// Row is the 1-based data row in the source sheet (header excluded)
	Row int `json:"row"`

	OrgPath string `json:"org_path"`
	BG      string `json:"bg"`

	HireDate *time.Time `json:"hire_date,omitempty"`

	ResumeSource string `json:"resume_source"`

	PaidChannelPath string `json:"paid_channel_path"`
	ChannelA        string `json:"channel_a"`
	ChannelB        string `json:"channel_b"`
	ChannelC        string `json:"channel_c"`
	ChannelD        string `json:"channel_d"`

	LastChannel1 string `json:"last_channel_1"`
	LastChannel2 string `json:"last_channel_2"`

	ReferrerName   string `json:"referrer_name"`
	ReferrerHomeBG string `json:"referrer_home_bg"`

	JobCategory  string `json:"job_category"`
	JobTitle     string `json:"job_title"`
	Grade        string `json:"grade"`
	GradeNumeric *int   `json:"grade_numeric,omitempty"`
}

// HasDate reports whether the record carries a parsed hire date.
func (r HireRecord) HasDate() bool {
	return r.HireDate != nil
}

// DateRange reports the earliest and latest hire dates in records.
// ok is false when no record has a date.
func DateRange(records []HireRecord) (minDate, maxDate time.Time, ok bool) {
	for _, r := range records {
		if r.HireDate == nil {
			continue
		}
		d := *r.HireDate
		if !ok {
			minDate, maxDate, ok = d, d, true
			continue
		}
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}
	return minDate, maxDate, ok
}
