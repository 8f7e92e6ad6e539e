package domain

import (
	"math"
	"time"
)

// DateOf truncates a timestamp to its calendar day, preserving the location.
// All due/overdue comparisons in the engine are calendar-day comparisons: a
// card scheduled for today at 23:00 is already due at 08:00. The platform
// assumes one timezone per deployment, carried in the timestamps themselves.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// DaysBetween returns the number of whole calendar days from a to b.
// Negative when b is before a. Rounding absorbs the 23- and 25-hour days a
// daylight saving transition produces.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(DateOf(b).Sub(DateOf(a)).Hours() / 24))
}
