package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order; the first successful parse wins
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006/1/2 15:04",
	"2006/1/2 15:04:05",
	"2006.1.2",
	"2006年1月2日",
	"1/2/06",
	"01-02-06",
	"1/2/2006",
}

// Excel serial day numbers accepted as dates (1954-10-15 .. 2119-04-08)
const (
	minSerial = 20000
	maxSerial = 80000
)

// ParseDate parses a hire date cell. Unparsable or empty values yield nil.
// The result is the calendar day at UTC midnight.
func ParseDate(s string) *time.Time {
	s = CleanText(s)
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dayOf(t)
		}
	}

	if serial, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && serial >= minSerial && serial <= maxSerial {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return dayOf(t)
		}
	}

	return nil
}

func dayOf(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
