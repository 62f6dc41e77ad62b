package goal

import (
	"fmt"
	"time"
)

// Mode selects how the daily word target reacts to actual progress.
type Mode string

const (
	// ModeElastic recalculates the daily target on every read from the
	// remaining words and remaining writing days.
	ModeElastic Mode = "elastic"
	// ModeStrict fixes the daily target once, anchored at the goal start
	// (or the last explicit recalculation), and never rebalances.
	ModeStrict Mode = "strict"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeElastic, ModeStrict:
		return true
	}
	return false
}

// Goal is the persisted word-count goal of a writing project.
type Goal struct {
	ProjectId int
	// Target is the total number of words the author wants to have written
	// by Deadline.
	Target   int
	Deadline time.Time
	// StartDate is the date the goal was activated; strict mode anchors its
	// fixed daily target here.
	StartDate time.Time
	// WritingDays flags which weekdays count towards pacing, Monday first.
	WritingDays [7]bool
	// DaysOff are specific dates (ISO YYYY-MM-DD) excluded from pacing even
	// when their weekday is a writing day.
	DaysOff []string
	Mode    Mode
	// Ledger maps an ISO date to the words recorded as written that day.
	// Append-only: past entries are never rewritten, only today's entry is
	// upserted as the day progresses.
	Ledger map[string]int
	// LastCalculatedDate is the date the strict-mode baseline was last
	// re-anchored. Unused by elastic mode.
	LastCalculatedDate time.Time
}

// IsDayOff reports whether the given ISO date is an explicit exception.
func (g Goal) IsDayOff(isoDate string) bool {
	for _, d := range g.DaysOff {
		if d == isoDate {
			return true
		}
	}
	return false
}

// HasWritingDays reports whether at least one weekday is enabled.
func (g Goal) HasWritingDays() bool {
	for _, enabled := range g.WritingDays {
		if enabled {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of a goal before it is stored.
func (g Goal) Validate() error {
	if g.Target < 0 {
		return fmt.Errorf("%w: target must not be negative", ErrInvalidGoal)
	}
	if !g.Mode.IsValid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidGoal, g.Mode)
	}
	for _, d := range g.DaysOff {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("%w: day off %q is not an ISO date", ErrInvalidGoal, d)
		}
	}
	for d := range g.Ledger {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("%w: ledger key %q is not an ISO date", ErrInvalidGoal, d)
		}
	}
	return nil
}
