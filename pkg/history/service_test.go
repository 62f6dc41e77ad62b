package history

import (
	"context"
	"testing"
	"time"

	"github.com/inkpace/inkpace/pkg/goal"
	"github.com/inkpace/inkpace/pkg/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectReaderStub struct {
	projects map[int]project.Project
}

func (s *projectReaderStub) Get(_ context.Context, projectId int) (project.Project, error) {
	p, ok := s.projects[projectId]
	if !ok {
		return project.Project{}, project.ErrProjectNotFound
	}
	return p, nil
}

type goalReaderStub struct {
	goals map[int]*goal.Goal
}

func (s *goalReaderStub) GetGoal(_ context.Context, projectId int) (*goal.Goal, error) {
	return s.goals[projectId], nil
}

var ctx = context.Background()

func newTestService(g *goal.Goal) Service {
	projects := &projectReaderStub{projects: map[int]project.Project{
		1: {Id: 1, Name: "Novel", WordGoal: 10000},
	}}
	goals := &goalReaderStub{goals: map[int]*goal.Goal{}}
	if g != nil {
		goals.goals[1] = g
	}
	return NewService(projects, goals)
}

func TestServiceImpl_GetHistory(t *testing.T) {
	t.Run("builds a chronological history with running totals", func(t *testing.T) {
		service := newTestService(&goal.Goal{
			ProjectId:   1,
			Target:      10000,
			Deadline:    time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			WritingDays: [7]bool{true, true, true, true, true, false, false},
			Mode:        goal.ModeElastic,
			Ledger: map[string]int{
				"2026-03-02": 500, // Monday
				"2026-03-04": 700, // Wednesday
				"2026-03-07": 300, // Saturday, outside the schedule
			},
		})

		// when
		summary, err := service.GetHistory(ctx, 1)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Novel", summary.ProjectName)
		assert.Equal(t, 10000, summary.Target)
		assert.Equal(t, 1500, summary.TotalWords)
		require.Len(t, summary.Entries, 3)
		assert.Equal(t, DailyHistory{Date: "2026-03-02", Words: 500, Cumulative: 500, WritingDay: true}, summary.Entries[0])
		assert.Equal(t, DailyHistory{Date: "2026-03-04", Words: 700, Cumulative: 1200, WritingDay: true}, summary.Entries[1])
		assert.Equal(t, DailyHistory{Date: "2026-03-07", Words: 300, Cumulative: 1500, WritingDay: false}, summary.Entries[2])
	})

	t.Run("project without a goal yields an empty history", func(t *testing.T) {
		service := newTestService(nil)

		summary, err := service.GetHistory(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "Novel", summary.ProjectName)
		assert.Empty(t, summary.Entries)
		assert.Zero(t, summary.TotalWords)
	})

	t.Run("unknown project propagates not found", func(t *testing.T) {
		service := newTestService(nil)

		_, err := service.GetHistory(ctx, 999)

		assert.ErrorIs(t, err, project.ErrProjectNotFound)
	})
}
