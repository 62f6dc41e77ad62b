package pacing

import (
	"time"

	"github.com/inkpace/inkpace/internal/utils"
	"github.com/inkpace/inkpace/pkg/goal"
)

// IsWritingDay reports whether the given date counts towards pacing for the
// goal. A date listed in DaysOff never counts, even when its weekday is
// enabled in the weekly pattern.
func IsWritingDay(date time.Time, g goal.Goal) bool {
	if g.IsDayOff(date.Format(utils.DateLayout)) {
		return false
	}
	return g.WritingDays[weekdayIndex(date.Weekday())]
}

// weekdayIndex converts Go's Sunday-first weekday to the Monday-first index
// used by Goal.WritingDays (Monday = 0 ... Sunday = 6).
func weekdayIndex(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// CountWritingDays counts writing days in the inclusive range [start, end].
// Returns 0 when start is after end. Iteration steps over normalized civil
// dates, so it can never skip or repeat a day around DST transitions.
func CountWritingDays(start, end time.Time, g goal.Goal) int {
	start = utils.CivilDate(start)
	end = utils.CivilDate(end)

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWritingDay(d, g) {
			count++
		}
	}
	return count
}
