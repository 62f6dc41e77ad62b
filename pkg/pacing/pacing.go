package pacing

import (
	"time"

	"github.com/inkpace/inkpace/internal/utils"
	"github.com/inkpace/inkpace/pkg/goal"
)

// DailyInfo is the pacing snapshot for a single day. All counts are
// non-negative integers.
type DailyInfo struct {
	// Target is the number of words to write today; 0 when the deadline
	// has passed or no writing days remain.
	Target int
	// TodayWords is the number of words attributed to today so far.
	TodayWords int
	// Remaining is the number of writing days left, today included.
	Remaining int
	// WordsRemaining is the gap between the goal target and the current
	// cumulative word count.
	WordsRemaining int
	IsAhead        bool
	IsBehind       bool
}

// DailyGoalInfo computes the pacing snapshot for the given goal, the live
// cumulative word count and the given calendar date (normally
// utils.TodayCanonical).
//
// It never fails: a goal without a target or deadline, or with an unknown
// pacing mode, yields nil ("no pacing") so that a broken goal configuration
// cannot block the rest of a progress snapshot.
func DailyGoalInfo(g goal.Goal, totalWords int, today time.Time) *DailyInfo {
	if g.Target <= 0 || g.Deadline.IsZero() {
		return nil
	}

	today = utils.CivilDate(today)
	todayWords := totalWords - NonTodayLedgerTotal(g.Ledger, today.Format(utils.DateLayout))
	if todayWords < 0 {
		// stale or corrected ledger data must not surface as negative progress
		todayWords = 0
	}

	wordsRemaining := g.Target - totalWords
	if wordsRemaining < 0 {
		wordsRemaining = 0
	}

	remaining := CountWritingDays(today, g.Deadline, g)
	if remaining <= 0 {
		// deadline passed or no writing days left: terminal state, no daily target
		return &DailyInfo{
			TodayWords:     todayWords,
			WordsRemaining: wordsRemaining,
		}
	}

	var target int
	switch g.Mode {
	case goal.ModeElastic:
		// rebalances on every call: rises when behind, falls when ahead
		target = ceilDiv(wordsRemaining, remaining)
	case goal.ModeStrict:
		anchor := g.StartDate
		if anchor.IsZero() {
			anchor = g.LastCalculatedDate
		}
		if anchor.IsZero() {
			anchor = today
		}
		totalWritingDays := CountWritingDays(anchor, g.Deadline, g)
		if totalWritingDays > 0 {
			target = ceilDiv(g.Target, totalWritingDays)
		}
	default:
		return nil
	}

	return &DailyInfo{
		Target:         target,
		TodayWords:     todayWords,
		Remaining:      remaining,
		WordsRemaining: wordsRemaining,
		IsAhead:        todayWords > target,
		IsBehind:       todayWords < target,
	}
}

// ceilDiv rounds up so that following the displayed target never undershoots
// the true requirement.
func ceilDiv(words, days int) int {
	return (words + days - 1) / days
}
