package project

import (
	"context"
	"database/sql"
	"testing"

	"github.com/inkpace/inkpace/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepositoryTest(t *testing.T) (*RepositoryImpl, context.Context, int) {
	db := test_utils.SetupTestDB(t)
	seedUser(t, db)
	return NewRepository(db), context.Background(), 1
}

func seedUser(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO users (id, uid, username, display_name) VALUES (1, 'uid-1', 'writer', 'Writer')`)
	require.NoError(t, err)
}

func TestRepositoryImpl_StoreAndGet(t *testing.T) {
	repository, ctx, userId := setupRepositoryTest(t)

	// Given
	p := Project{
		Name:          "Novel",
		Description:   "A long one",
		WordGoal:      80000,
		DriveFolderId: "drive-folder-1",
		Status:        StatusActive,
		Position:      100,
	}

	// When
	id, err := repository.Store(ctx, userId, p)

	// Then
	require.NoError(t, err)
	require.NotZero(t, id)

	fetched, err := repository.Get(ctx, userId, id)
	require.NoError(t, err)
	p.Id = id
	assert.Equal(t, p, fetched)
}

func TestRepositoryImpl_Get_NotFound(t *testing.T) {
	repository, ctx, userId := setupRepositoryTest(t)

	_, err := repository.Get(ctx, userId, 999)

	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestRepositoryImpl_Get_OtherUsersProject(t *testing.T) {
	repository, ctx, userId := setupRepositoryTest(t)

	id, err := repository.Store(ctx, userId, Project{Name: "Novel", Status: StatusActive})
	require.NoError(t, err)

	_, err = repository.Get(ctx, userId+1, id)

	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestRepositoryImpl_GetAll(t *testing.T) {
	repository, ctx, userId := setupRepositoryTest(t)

	_, err := repository.Store(ctx, userId, Project{Name: "B", Status: StatusActive, Position: 200})
	require.NoError(t, err)
	_, err = repository.Store(ctx, userId, Project{Name: "A", Status: StatusActive, Position: 100})
	require.NoError(t, err)
	_, err = repository.Store(ctx, userId, Project{Name: "Old", Status: StatusArchived, Position: 300})
	require.NoError(t, err)

	t.Run("active only, ordered by position", func(t *testing.T) {
		projects, err := repository.GetAll(ctx, userId, false)
		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, "A", projects[0].Name)
		assert.Equal(t, "B", projects[1].Name)
	})

	t.Run("including archived", func(t *testing.T) {
		projects, err := repository.GetAll(ctx, userId, true)
		require.NoError(t, err)
		assert.Len(t, projects, 3)
	})
}

func TestRepositoryImpl_Update(t *testing.T) {
	repository, ctx, userId := setupRepositoryTest(t)

	id, err := repository.Store(ctx, userId, Project{Name: "Novel", Status: StatusActive, Position: 100})
	require.NoError(t, err)

	updated, err := repository.Update(ctx, userId, Project{
		Id:       id,
		Name:     "The Novel",
		WordGoal: 90000,
		Status:   StatusArchived,
	})
	require.NoError(t, err)
	assert.True(t, updated)

	fetched, err := repository.Get(ctx, userId, id)
	require.NoError(t, err)
	assert.Equal(t, "The Novel", fetched.Name)
	assert.Equal(t, 90000, fetched.WordGoal)
	assert.Equal(t, StatusArchived, fetched.Status)
	// position is owned by UpdatePosition, not Update
	assert.Equal(t, 100, fetched.Position)
}

func TestRepositoryImpl_UpdatePosition(t *testing.T) {
	repository, ctx, userId := setupRepositoryTest(t)

	id, err := repository.Store(ctx, userId, Project{Name: "Novel", Status: StatusActive, Position: 100})
	require.NoError(t, err)

	moved, err := repository.UpdatePosition(ctx, userId, Project{Id: id, Position: 250})
	require.NoError(t, err)
	assert.True(t, moved)

	fetched, err := repository.Get(ctx, userId, id)
	require.NoError(t, err)
	assert.Equal(t, 250, fetched.Position)
}

func TestRepositoryImpl_FindMaxPosition(t *testing.T) {
	repository, ctx, userId := setupRepositoryTest(t)

	t.Run("zero when the user has no projects", func(t *testing.T) {
		max, err := repository.FindMaxPosition(ctx, userId)
		require.NoError(t, err)
		assert.Equal(t, 0, max)
	})

	t.Run("highest position wins", func(t *testing.T) {
		_, err := repository.Store(ctx, userId, Project{Name: "A", Status: StatusActive, Position: 100})
		require.NoError(t, err)
		_, err = repository.Store(ctx, userId, Project{Name: "B", Status: StatusActive, Position: 300})
		require.NoError(t, err)

		max, err := repository.FindMaxPosition(ctx, userId)
		require.NoError(t, err)
		assert.Equal(t, 300, max)
	})
}

func TestRepositoryImpl_Delete(t *testing.T) {
	repository, ctx, userId := setupRepositoryTest(t)

	id, err := repository.Store(ctx, userId, Project{Name: "Novel", Status: StatusActive})
	require.NoError(t, err)

	deleted, err := repository.Delete(ctx, userId, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repository.Get(ctx, userId, id)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
