package goal

import (
	"context"
	"fmt"

	"github.com/inkpace/inkpace/internal/event_bus"
	"github.com/inkpace/inkpace/internal/utils"
	"github.com/inkpace/inkpace/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// GetGoal returns the goal configured for the project, or nil when the
	// project has none.
	GetGoal(ctx context.Context, projectId int) (*Goal, error)
	// SetGoal creates or replaces the goal of a project, keeping its ledger.
	SetGoal(ctx context.Context, g Goal) (Goal, error)
	DeleteGoal(ctx context.Context, projectId int) (bool, error)
	// RecordLedgerEntry upserts the ledger entry for the given date. Only
	// today's entry may be written; past days are frozen history.
	RecordLedgerEntry(ctx context.Context, projectId int, date string, words int) error
	// Reanchor re-anchors the strict-mode baseline at today, so the fixed
	// daily target is recalculated from the remaining schedule.
	Reanchor(ctx context.Context, projectId int) (*Goal, error)
}

type ServiceImpl struct {
	repo     Repository
	clock    utils.Clock
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, clock utils.Clock, eventBus *event_bus.EventBus) *ServiceImpl {
	service := &ServiceImpl{repo: repo, clock: clock, eventBus: eventBus}

	// Ledger rollover: the pacing engine never writes the ledger itself.
	// Whenever a progress snapshot is computed, record today's words so the
	// non-today total stays consistent across day boundaries.
	event_bus.SubscribeTyped[event_bus.ProgressSnapshotComputed](
		eventBus,
		"progress.snapshot.computed",
		func(e event_bus.EventT[event_bus.ProgressSnapshotComputed]) error {
			err := service.RecordLedgerEntry(e.Context(), e.Data.ProjectId, e.Data.Date, e.Data.TodayWords)
			if err != nil {
				log.Errorf("failed to roll over ledger for project %d: %v", e.Data.ProjectId, err)
				return err
			}
			return nil
		},
	)
	return service
}

func (s *ServiceImpl) GetGoal(ctx context.Context, projectId int) (*Goal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, projectId)
}

func (s *ServiceImpl) SetGoal(ctx context.Context, g Goal) (Goal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Goal{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := g.Validate(); err != nil {
		return Goal{}, err
	}
	if g.StartDate.IsZero() {
		g.StartDate = utils.TodayCanonical(s.clock)
	}

	if err := s.repo.Store(ctx, userId, g); err != nil {
		return Goal{}, err
	}
	s.publishGoalChanged(ctx, userId, g.ProjectId)

	stored, err := s.repo.Get(ctx, userId, g.ProjectId)
	if err != nil {
		return Goal{}, err
	}
	return *stored, nil
}

func (s *ServiceImpl) DeleteGoal(ctx context.Context, projectId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, userId, projectId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("goal not deleted, probably because project %d has none or the user (%d) is not the owner", projectId, userId)
		return false, nil
	}
	s.publishGoalChanged(ctx, userId, projectId)
	return true, nil
}

func (s *ServiceImpl) RecordLedgerEntry(ctx context.Context, projectId int, date string, words int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	today := utils.TodayCanonical(s.clock).Format(utils.DateLayout)
	if date != today {
		log.Warnf("refusing to write ledger entry for %s (today is %s) on project %d", date, today, projectId)
		return ErrLedgerEntryFrozen
	}
	if words < 0 {
		words = 0
	}
	return s.repo.UpsertLedgerEntry(ctx, userId, projectId, date, words)
}

func (s *ServiceImpl) Reanchor(ctx context.Context, projectId int) (*Goal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	today := utils.TodayCanonical(s.clock).Format(utils.DateLayout)
	updated, err := s.repo.Reanchor(ctx, userId, projectId, today)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrGoalNotFound
	}
	s.publishGoalChanged(ctx, userId, projectId)
	return s.repo.Get(ctx, userId, projectId)
}

func (s *ServiceImpl) publishGoalChanged(ctx context.Context, userId int, projectId int) {
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, "goal.changed", event_bus.GoalChanged{
		UserId:    userId,
		ProjectId: projectId,
	}))
	if err != nil {
		log.Warnf("failed to publish goal.changed for project %d: %v", projectId, err)
	}
}
