package document

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/inkpace/inkpace/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepositoryTest(t *testing.T) (*RepositoryImpl, context.Context, int) {
	db := test_utils.SetupTestDB(t)
	seedProject(t, db)
	return NewRepository(db), context.Background(), 1
}

// seedProject satisfies the foreign keys of document
func seedProject(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO users (id, uid, username, display_name) VALUES (1, 'uid-1', 'writer', 'Writer')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO project (id, user_id, name) VALUES (1, 1, 'Novel')`)
	require.NoError(t, err)
}

func TestRepositoryImpl_StoreAndGetAllForProject(t *testing.T) {
	repository, ctx, userId := setupRepositoryTest(t)

	// Given
	syncedAt := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	doc := Document{
		ProjectId:    1,
		DriveFileId:  "file-1",
		Title:        "Chapter 1",
		WordCount:    1200,
		LastSyncedAt: syncedAt,
		Position:     1,
	}

	// When
	id, err := repository.Store(ctx, userId, doc)

	// Then
	require.NoError(t, err)
	require.NotZero(t, id)

	docs, err := repository.GetAllForProject(ctx, userId, 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	got := docs[0]
	assert.True(t, syncedAt.Equal(got.LastSyncedAt), "expected %v, got %v", syncedAt, got.LastSyncedAt)
	doc.Id = id
	doc.LastSyncedAt = got.LastSyncedAt
	assert.Equal(t, doc, got)
}

func TestRepositoryImpl_Store_NeverSynced(t *testing.T) {
	repository, ctx, userId := setupRepositoryTest(t)

	_, err := repository.Store(ctx, userId, Document{
		ProjectId:   1,
		DriveFileId: "file-1",
		Title:       "Chapter 1",
	})
	require.NoError(t, err)

	docs, err := repository.GetAllForProject(ctx, userId, 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.True(t, docs[0].LastSyncedAt.IsZero())
}

func TestRepositoryImpl_UpdateWordCount(t *testing.T) {
	repository, ctx, userId := setupRepositoryTest(t)

	id, err := repository.Store(ctx, userId, Document{ProjectId: 1, DriveFileId: "file-1", Title: "Chapter 1", WordCount: 1000})
	require.NoError(t, err)

	syncedAt := time.Date(2026, 3, 3, 9, 30, 0, 0, time.UTC)
	updated, err := repository.UpdateWordCount(ctx, userId, id, 1350, syncedAt)
	require.NoError(t, err)
	assert.True(t, updated)

	docs, err := repository.GetAllForProject(ctx, userId, 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 1350, docs[0].WordCount)
	assert.True(t, syncedAt.Equal(docs[0].LastSyncedAt), "expected %v, got %v", syncedAt, docs[0].LastSyncedAt)
}

func TestRepositoryImpl_TotalWords(t *testing.T) {
	repository, ctx, userId := setupRepositoryTest(t)

	t.Run("zero for a project without documents", func(t *testing.T) {
		total, err := repository.TotalWords(ctx, userId, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})

	t.Run("sums all documents of the project", func(t *testing.T) {
		_, err := repository.Store(ctx, userId, Document{ProjectId: 1, DriveFileId: "file-1", Title: "Chapter 1", WordCount: 1000, Position: 1})
		require.NoError(t, err)
		_, err = repository.Store(ctx, userId, Document{ProjectId: 1, DriveFileId: "file-2", Title: "Chapter 2", WordCount: 500, Position: 2})
		require.NoError(t, err)

		total, err := repository.TotalWords(ctx, userId, 1)
		require.NoError(t, err)
		assert.Equal(t, 1500, total)
	})
}

func TestRepositoryImpl_Delete(t *testing.T) {
	repository, ctx, userId := setupRepositoryTest(t)

	id, err := repository.Store(ctx, userId, Document{ProjectId: 1, DriveFileId: "file-1", Title: "Chapter 1"})
	require.NoError(t, err)

	deleted, err := repository.Delete(ctx, userId, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	docs, err := repository.GetAllForProject(ctx, userId, 1)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
