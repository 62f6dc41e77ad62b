package history

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/inkpace/inkpace/internal/utils"
	"github.com/inkpace/inkpace/pkg/goal"
	"github.com/inkpace/inkpace/pkg/pacing"
	"github.com/inkpace/inkpace/pkg/project"
)

// ProjectReader is the slice of the project service this package needs.
type ProjectReader interface {
	Get(ctx context.Context, projectId int) (project.Project, error)
}

// GoalReader returns a project's goal, or nil when none is configured.
type GoalReader interface {
	GetGoal(ctx context.Context, projectId int) (*goal.Goal, error)
}

type Service interface {
	// GetHistory reconstructs the day-by-day writing history of a project
	// from its goal ledger, oldest entry first.
	GetHistory(ctx context.Context, projectId int) (HistorySummary, error)
}

type ServiceImpl struct {
	projects ProjectReader
	goals    GoalReader
}

func NewService(projects ProjectReader, goals GoalReader) *ServiceImpl {
	return &ServiceImpl{projects: projects, goals: goals}
}

func (s *ServiceImpl) GetHistory(ctx context.Context, projectId int) (HistorySummary, error) {
	p, err := s.projects.Get(ctx, projectId)
	if err != nil {
		return HistorySummary{}, err
	}

	summary := HistorySummary{ProjectName: p.Name}

	g, err := s.goals.GetGoal(ctx, projectId)
	if err != nil {
		return HistorySummary{}, fmt.Errorf("failed to load goal for project %d: %w", projectId, err)
	}
	if g == nil || len(g.Ledger) == 0 {
		return summary, nil
	}
	summary.Target = g.Target

	dates := make([]string, 0, len(g.Ledger))
	for date := range g.Ledger {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	cumulative := 0
	for _, date := range dates {
		words := g.Ledger[date]
		cumulative += words
		day, err := time.Parse(utils.DateLayout, date)
		if err != nil {
			return HistorySummary{}, fmt.Errorf("malformed ledger date %q: %w", date, err)
		}
		summary.Entries = append(summary.Entries, DailyHistory{
			Date:       date,
			Words:      words,
			Cumulative: cumulative,
			WritingDay: pacing.IsWritingDay(day, *g),
		})
	}
	summary.TotalWords = cumulative
	return summary, nil
}
