package filtering

import (
	"time"

	"github.com/jonathan/channel-dashboard/internal/types"
)

func resolveStart(b types.DateBound, fallback time.Time) time.Time {
	if b.IsZero() {
		return fallback
	}
	month, day := b.Month, b.Day
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	t, ok := buildDate(yearOr(b.Year, fallback), month, day)
	if !ok {
		return fallback
	}
	return t
}

func resolveEnd(b types.DateBound, fallback time.Time) time.Time {
	if b.IsZero() {
		return fallback
	}
	year := yearOr(b.Year, fallback)
	month := b.Month
	if month == 0 {
		month = 12
	}
	day := b.Day
	if day == 0 && month >= 1 && month <= 12 {
		day = daysIn(year, time.Month(month))
	}
	t, ok := buildDate(year, month, day)
	if !ok {
		return fallback
	}
	return t
}

func yearOr(year int, fallback time.Time) int {
	if year == 0 {
		return fallback.Year()
	}
	return year
}

// buildDate rejects parts time.Date would silently normalize, like 30 February.
func buildDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
