package utils

import "time"

// DateLayout is the ISO calendar date format used for ledger keys, days off
// and all date-only columns.
const DateLayout = "2006-01-02"

// canonicalLocation is the single timezone in which "today" is resolved for
// goal bookkeeping. Every client must agree on which calendar day it is,
// otherwise two devices near local midnight would disagree on "today".
var canonicalLocation = mustLoadLocation("America/Los_Angeles")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("cannot load location " + name + ": " + err.Error())
	}
	return loc
}

// CivilDate truncates t to its calendar date, dropping time-of-day and
// timezone. Date arithmetic on such values with AddDate always lands on the
// next calendar day, immune to DST skew.
func CivilDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TodayCanonical returns the current calendar date in the canonical timezone.
// The host machine's local timezone is deliberately ignored.
func TodayCanonical(clock Clock) time.Time {
	return CivilDate(clock.Now().In(canonicalLocation))
}
