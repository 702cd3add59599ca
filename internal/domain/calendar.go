package domain

import (
	"math"
	"time"
)

// DateOf formats an instant as its local YYYY-MM-DD calendar date.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}

// Midnight truncates an instant to the start of its local calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the absolute whole-day difference between two
// calendar dates, rounded up. Both inputs are truncated to midnight first,
// so the result is the number of calendar day boundaries crossed.
func DaysBetween(a, b time.Time) int {
	diff := Midnight(b).Sub(Midnight(a)).Hours() / 24
	return int(math.Ceil(math.Abs(diff)))
}

// SameDay reports whether two instants fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DateOf(a) == DateOf(b)
}

// ParseDate parses a YYYY-MM-DD string in the local zone. The zero time is
// returned for empty or malformed input.
func ParseDate(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
