package goal

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inkpace/inkpace/internal/event_bus"
	"github.com/inkpace/inkpace/internal/utils"
	"github.com/inkpace/inkpace/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.WithValue(context.Background(), user.UserKey, user.User{
	Id:          10,
	Uid:         uuid.NewString(),
	Username:    "test-user-1",
	DisplayName: "Test User 1",
	Settings: user.Settings{
		Timezone: "America/Los_Angeles",
	},
})

var repoStub = NewRepositoryStub()

// noon UTC resolves to 2026-03-02 in the canonical timezone as well
var clock = &utils.MockClock{FixedNow: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)}

var service Service

func setup(t *testing.T) func() {
	eventBus := event_bus.NewEventBus()
	service = NewService(repoStub, clock, eventBus)
	return func() {
		t.Log("Teardown after test")
		repoStub.Reset()
	}
}

func validGoal(projectId int) Goal {
	return Goal{
		ProjectId:   projectId,
		Target:      10000,
		Deadline:    time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		WritingDays: [7]bool{true, true, true, true, true, false, false},
		Mode:        ModeElastic,
	}
}

func TestServiceImpl_SetGoal(t *testing.T) {
	t.Run("stores a valid goal and returns it", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		stored, err := service.SetGoal(ctx, validGoal(1))

		// then
		require.NoError(t, err)
		assert.Equal(t, 10000, stored.Target)
		assert.Equal(t, ModeElastic, stored.Mode)
	})

	t.Run("defaults the start date to today", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		stored, err := service.SetGoal(ctx, validGoal(1))

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), stored.StartDate)
	})

	t.Run("keeps an explicit start date", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		g := validGoal(1)
		g.StartDate = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

		stored, err := service.SetGoal(ctx, g)

		require.NoError(t, err)
		assert.Equal(t, g.StartDate, stored.StartDate)
	})

	t.Run("rejects a goal with an unknown mode", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		g := validGoal(1)
		g.Mode = Mode("freestyle")

		_, err := service.SetGoal(ctx, g)

		assert.ErrorIs(t, err, ErrInvalidGoal)
	})

	t.Run("rejects a negative target", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		g := validGoal(1)
		g.Target = -100

		_, err := service.SetGoal(ctx, g)

		assert.ErrorIs(t, err, ErrInvalidGoal)
	})

	t.Run("rejects malformed day off dates", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		g := validGoal(1)
		g.DaysOff = []string{"March 5th"}

		_, err := service.SetGoal(ctx, g)

		assert.ErrorIs(t, err, ErrInvalidGoal)
	})

	t.Run("replacing a goal keeps the existing ledger", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.SetGoal(ctx, validGoal(1))
		require.NoError(t, err)
		require.NoError(t, service.RecordLedgerEntry(ctx, 1, "2026-03-02", 500))

		// when the goal is reconfigured
		g := validGoal(1)
		g.Target = 20000
		stored, err := service.SetGoal(ctx, g)

		// then the ledger survives
		require.NoError(t, err)
		assert.Equal(t, 20000, stored.Target)
		assert.Equal(t, map[string]int{"2026-03-02": 500}, stored.Ledger)
	})
}

func TestServiceImpl_GetGoal(t *testing.T) {
	t.Run("returns nil when the project has no goal", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		g, err := service.GetGoal(ctx, 42)

		require.NoError(t, err)
		assert.Nil(t, g)
	})
}

func TestServiceImpl_DeleteGoal(t *testing.T) {
	t.Run("deletes an existing goal", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.SetGoal(ctx, validGoal(1))
		require.NoError(t, err)

		deleted, err := service.DeleteGoal(ctx, 1)

		require.NoError(t, err)
		assert.True(t, deleted)

		g, err := service.GetGoal(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, g)
	})

	t.Run("reports false when there is nothing to delete", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		deleted, err := service.DeleteGoal(ctx, 1)

		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestServiceImpl_RecordLedgerEntry(t *testing.T) {
	t.Run("upserts today's entry", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.SetGoal(ctx, validGoal(1))
		require.NoError(t, err)

		require.NoError(t, service.RecordLedgerEntry(ctx, 1, "2026-03-02", 300))
		require.NoError(t, service.RecordLedgerEntry(ctx, 1, "2026-03-02", 450))

		g, err := service.GetGoal(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 450, g.Ledger["2026-03-02"])
	})

	t.Run("refuses to rewrite a past day", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		err := service.RecordLedgerEntry(ctx, 1, "2026-03-01", 300)

		assert.ErrorIs(t, err, ErrLedgerEntryFrozen)
	})

	t.Run("refuses a future day", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		err := service.RecordLedgerEntry(ctx, 1, "2026-03-03", 300)

		assert.ErrorIs(t, err, ErrLedgerEntryFrozen)
	})

	t.Run("clamps negative word counts to zero", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.SetGoal(ctx, validGoal(1))
		require.NoError(t, err)

		require.NoError(t, service.RecordLedgerEntry(ctx, 1, "2026-03-02", -50))

		g, err := service.GetGoal(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, g.Ledger["2026-03-02"])
	})
}

func TestServiceImpl_Reanchor(t *testing.T) {
	t.Run("moves the strict baseline to today and clears the start date", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		g := validGoal(1)
		g.Mode = ModeStrict
		g.StartDate = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		_, err := service.SetGoal(ctx, g)
		require.NoError(t, err)

		// when
		updated, err := service.Reanchor(ctx, 1)

		// then
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), updated.LastCalculatedDate)
		assert.True(t, updated.StartDate.IsZero())
	})

	t.Run("fails when the project has no goal", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Reanchor(ctx, 1)

		assert.ErrorIs(t, err, ErrGoalNotFound)
	})
}

func TestServiceImpl_LedgerRollover(t *testing.T) {
	t.Run("progress snapshot events write today's ledger entry", func(t *testing.T) {
		eventBus := event_bus.NewEventBus()
		service = NewService(repoStub, clock, eventBus)
		defer repoStub.Reset()

		_, err := service.SetGoal(ctx, validGoal(1))
		require.NoError(t, err)

		// when a progress snapshot is computed elsewhere
		err = eventBus.Publish(event_bus.NewEvent(ctx, "progress.snapshot.computed", event_bus.ProgressSnapshotComputed{
			UserId:     10,
			ProjectId:  1,
			Date:       "2026-03-02",
			TodayWords: 220,
			TotalWords: 2020,
		}))

		// then the entry lands in the ledger
		require.NoError(t, err)
		g, err := service.GetGoal(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 220, g.Ledger["2026-03-02"])
	})
}
