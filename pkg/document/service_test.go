package document

import (
	"context"
	"fmt"
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

// wordCountSourceStub serves canned word counts per Drive file id and can
// simulate per-file failures.
type wordCountSourceStub struct {
	counts  map[string]int
	failing map[string]bool
}

func newWordCountSourceStub() *wordCountSourceStub {
	return &wordCountSourceStub{
		counts:  make(map[string]int),
		failing: make(map[string]bool),
	}
}

func (s *wordCountSourceStub) DocumentWordCount(_ context.Context, fileId string) (int, error) {
	if s.failing[fileId] {
		return 0, fmt.Errorf("drive is unreachable for %s", fileId)
	}
	return s.counts[fileId], nil
}

func (s *wordCountSourceStub) Reset() {
	s.counts = make(map[string]int)
	s.failing = make(map[string]bool)
}

var repoStub = NewRepositoryStub()
var sourceStub = newWordCountSourceStub()
var clock = &utils.MockClock{FixedNow: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)}

var service Service
var eventBus *event_bus.EventBus

func setup(t *testing.T) func() {
	eventBus = event_bus.NewEventBus()
	service = NewService(repoStub, sourceStub, clock, eventBus)
	return func() {
		t.Log("Teardown after test")
		repoStub.Reset()
		sourceStub.Reset()
	}
}

func TestServiceImpl_Add(t *testing.T) {
	t.Run("fetches the initial word count from Drive", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		sourceStub.counts["file-1"] = 1200

		// when
		added, err := service.Add(ctx, Document{ProjectId: 1, DriveFileId: "file-1", Title: "Chapter 1"})

		// then
		require.NoError(t, err)
		assert.NotZero(t, added.Id)
		assert.Equal(t, 1200, added.WordCount)
		assert.Equal(t, clock.FixedNow, added.LastSyncedAt)
	})

	t.Run("keeps a zero count when Drive is unreachable", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		sourceStub.failing["file-1"] = true

		added, err := service.Add(ctx, Document{ProjectId: 1, DriveFileId: "file-1", Title: "Chapter 1"})

		require.NoError(t, err)
		assert.Equal(t, 0, added.WordCount)
		assert.True(t, added.LastSyncedAt.IsZero())
	})

	t.Run("rejects a document without a Drive file", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Add(ctx, Document{ProjectId: 1, Title: "Chapter 1"})

		assert.Error(t, err)
	})
}

func TestServiceImpl_Sync(t *testing.T) {
	t.Run("refreshes every document's cached count", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		sourceStub.counts["file-1"] = 1000
		sourceStub.counts["file-2"] = 500
		_, err := service.Add(ctx, Document{ProjectId: 1, DriveFileId: "file-1", Title: "Chapter 1", Position: 1})
		require.NoError(t, err)
		_, err = service.Add(ctx, Document{ProjectId: 1, DriveFileId: "file-2", Title: "Chapter 2", Position: 2})
		require.NoError(t, err)

		// the author keeps writing
		sourceStub.counts["file-1"] = 1300
		sourceStub.counts["file-2"] = 650

		// when
		docs, err := service.Sync(ctx, 1)

		// then
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, 1300, docs[0].WordCount)
		assert.Equal(t, 650, docs[1].WordCount)

		total, err := service.TotalWords(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1950, total)
	})

	t.Run("a failing document keeps its cached count", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		sourceStub.counts["file-1"] = 1000
		_, err := service.Add(ctx, Document{ProjectId: 1, DriveFileId: "file-1", Title: "Chapter 1"})
		require.NoError(t, err)

		sourceStub.failing["file-1"] = true

		docs, err := service.Sync(ctx, 1)

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, 1000, docs[0].WordCount)
	})

	t.Run("publishes the synced total", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		sourceStub.counts["file-1"] = 700
		_, err := service.Add(ctx, Document{ProjectId: 1, DriveFileId: "file-1", Title: "Chapter 1"})
		require.NoError(t, err)

		var published []event_bus.DocumentsSynced
		event_bus.SubscribeTyped[event_bus.DocumentsSynced](eventBus, "documents.synced",
			func(e event_bus.EventT[event_bus.DocumentsSynced]) error {
				published = append(published, e.Data)
				return nil
			})

		_, err = service.Sync(ctx, 1)

		require.NoError(t, err)
		require.Len(t, published, 1)
		assert.Equal(t, 1, published[0].ProjectId)
		assert.Equal(t, 700, published[0].TotalWords)
	})
}

func TestServiceImpl_Remove(t *testing.T) {
	t.Run("removes an existing document", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		added, err := service.Add(ctx, Document{ProjectId: 1, DriveFileId: "file-1", Title: "Chapter 1"})
		require.NoError(t, err)

		removed, err := service.Remove(ctx, added.Id)
		require.NoError(t, err)
		assert.True(t, removed)

		docs, err := service.GetAllForProject(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("reports false for an unknown document", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		removed, err := service.Remove(ctx, 999)

		require.NoError(t, err)
		assert.False(t, removed)
	})
}
