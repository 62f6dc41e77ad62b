package progress

import (
	"context"
	"fmt"
	"math"

	"github.com/inkpace/inkpace/internal/event_bus"
	"github.com/inkpace/inkpace/internal/utils"
	"github.com/inkpace/inkpace/pkg/goal"
	"github.com/inkpace/inkpace/pkg/pacing"
	"github.com/inkpace/inkpace/pkg/project"
	"github.com/inkpace/inkpace/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetProjectProgress(ctx context.Context, projectId int) (ProgressSnapshot, error)
}

// ProjectReader is the slice of the project service this package needs.
type ProjectReader interface {
	Get(ctx context.Context, projectId int) (project.Project, error)
}

// GoalReader returns a project's goal, or nil when none is configured.
type GoalReader interface {
	GetGoal(ctx context.Context, projectId int) (*goal.Goal, error)
}

// WordCountProvider supplies the live cumulative word count of a project.
type WordCountProvider interface {
	TotalWords(ctx context.Context, projectId int) (int, error)
}

type ServiceImpl struct {
	projects  ProjectReader
	goals     GoalReader
	wordCount WordCountProvider
	clock     utils.Clock
	eventBus  *event_bus.EventBus
}

func NewService(
	projects ProjectReader,
	goals GoalReader,
	wordCount WordCountProvider,
	clock utils.Clock,
	eventBus *event_bus.EventBus,
) *ServiceImpl {
	return &ServiceImpl{
		projects:  projects,
		goals:     goals,
		wordCount: wordCount,
		clock:     clock,
		eventBus:  eventBus,
	}
}

func (s *ServiceImpl) GetProjectProgress(ctx context.Context, projectId int) (ProgressSnapshot, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return ProgressSnapshot{}, fmt.Errorf("failed to get current user: %w", err)
	}

	p, err := s.projects.Get(ctx, projectId)
	if err != nil {
		return ProgressSnapshot{}, err
	}
	totalWords, err := s.wordCount.TotalWords(ctx, projectId)
	if err != nil {
		return ProgressSnapshot{}, err
	}

	// Pacing is advisory: a broken goal must never block word count and
	// percentage from rendering.
	g, err := s.goals.GetGoal(ctx, projectId)
	if err != nil {
		log.Warnf("failed to load goal for project %d, rendering progress without pacing: %v", projectId, err)
		g = nil
	}

	snapshot := ProgressSnapshot{
		WordGoal:   p.WordGoal,
		TotalWords: totalWords,
		Percentage: percentage(totalWords, p.WordGoal),
		Goal:       g,
	}
	if g == nil {
		return snapshot, nil
	}

	today := utils.TodayCanonical(s.clock)
	snapshot.DailyInfo = pacing.DailyGoalInfo(*g, totalWords, today)

	if snapshot.DailyInfo != nil {
		// The engine never writes the ledger; the rollover happens here, as
		// a side effect of reading progress, via the goal package.
		err := s.eventBus.Publish(event_bus.NewEvent(ctx, "progress.snapshot.computed", event_bus.ProgressSnapshotComputed{
			UserId:     userId,
			ProjectId:  projectId,
			Date:       today.Format(utils.DateLayout),
			TodayWords: snapshot.DailyInfo.TodayWords,
			TotalWords: totalWords,
		}))
		if err != nil {
			log.Warnf("failed to publish progress snapshot for project %d: %v", projectId, err)
		}
	}

	return snapshot, nil
}

func percentage(totalWords, wordGoal int) int {
	if wordGoal <= 0 {
		return 0
	}
	pct := int(math.Round(float64(totalWords) / float64(wordGoal) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}
