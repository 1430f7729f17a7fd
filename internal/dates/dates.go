// Package dates produces the calendar-date identities habits are compared
// against. A date identity is a YYYY-MM-DD string derived from the local wall
// clock; the empty string stands for "never".
package dates

import (
	"time"

	"github.com/julianstephens/tinyhabits/internal/constants"
)

// Format returns the canonical date identity for an arbitrary time.
func Format(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Today returns the date identity for the current local calendar day.
func Today() string {
	return Format(time.Now())
}

// Yesterday returns the date identity for the local calendar day before today.
// This is a calendar-day step, not a 24-hour one, so month, year, and leap-day
// boundaries are handled by AddDate.
func Yesterday() string {
	return Format(time.Now().AddDate(0, 0, -1))
}

// IsToday reports whether d is today's date identity. Empty means never.
func IsToday(d string) bool {
	return d != "" && d == Today()
}

// IsYesterday reports whether d is yesterday's date identity.
func IsYesterday(d string) bool {
	return d != "" && d == Yesterday()
}
