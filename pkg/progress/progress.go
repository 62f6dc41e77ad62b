package progress

import (
	"github.com/inkpace/inkpace/pkg/goal"
	"github.com/inkpace/inkpace/pkg/pacing"
)

// ProgressSnapshot is the derived view of a project's writing progress. It
// is recomputed from scratch on every read and never persisted; the short
// redis cache in front of the service is a transparency-preserving
// optimization only.
type ProgressSnapshot struct {
	WordGoal   int
	TotalWords int
	// Percentage is clamped to 100 for display; TotalWords keeps the raw
	// excess when the author overshoots the goal.
	Percentage int
	Goal       *goal.Goal
	DailyInfo  *pacing.DailyInfo
}
