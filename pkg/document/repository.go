package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrDocumentNotFound = errors.New("document not found")

type Repository interface {
	Store(ctx context.Context, userId int, doc Document) (int, error)
	GetAllForProject(ctx context.Context, userId int, projectId int) ([]Document, error)
	UpdateWordCount(ctx context.Context, userId int, documentId int, wordCount int, syncedAt time.Time) (bool, error)
	Delete(ctx context.Context, userId int, documentId int) (bool, error)
	// TotalWords sums the cached word counts of a project's documents.
	TotalWords(ctx context.Context, userId int, projectId int) (int, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, doc Document) (int, error) {
	query := `INSERT INTO document (
                    project_id,
                    drive_file_id,
                    title,
                    word_count,
                    last_synced_at,
                    position,
                    user_id
				) VALUES (?, ?, ?, ?, ?, ?, ?)`

	var syncedAtParam interface{}
	if !doc.LastSyncedAt.IsZero() {
		syncedAtParam = doc.LastSyncedAt.UnixMilli()
	}
	result, err := r.db.ExecContext(ctx, query,
		doc.ProjectId,
		doc.DriveFileId,
		doc.Title,
		doc.WordCount,
		syncedAtParam,
		doc.Position,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not store document: %w", err)
		log.Error(err)
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *RepositoryImpl) GetAllForProject(ctx context.Context, userId int, projectId int) ([]Document, error) {
	query := `SELECT id, project_id, drive_file_id, title, word_count, last_synced_at, position
				FROM document WHERE project_id = ? AND user_id = ? ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, projectId, userId)
	if err != nil {
		log.Errorf("failed to get documents for project %d: %v", projectId, err)
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		var syncedAt sql.NullInt64
		if err := rows.Scan(&d.Id, &d.ProjectId, &d.DriveFileId, &d.Title, &d.WordCount, &syncedAt, &d.Position); err != nil {
			return nil, err
		}
		if syncedAt.Valid {
			d.LastSyncedAt = time.UnixMilli(syncedAt.Int64)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *RepositoryImpl) UpdateWordCount(ctx context.Context, userId int, documentId int, wordCount int, syncedAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE document SET word_count = ?, last_synced_at = ? WHERE id = ? AND user_id = ?`,
		wordCount, syncedAt.UnixMilli(), documentId, userId)
	if err != nil {
		log.Errorf("failed to update word count of document %d: %v", documentId, err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, documentId int) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM document WHERE id = ? AND user_id = ?`, documentId, userId)
	if err != nil {
		log.Errorf("failed to delete document %d: %v", documentId, err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *RepositoryImpl) TotalWords(ctx context.Context, userId int, projectId int) (int, error) {
	var total sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT SUM(word_count) FROM document WHERE project_id = ? AND user_id = ?`,
		projectId, userId).Scan(&total)
	if err != nil {
		log.Errorf("failed to sum word counts for project %d: %v", projectId, err)
		return 0, err
	}
	if !total.Valid {
		return 0, nil
	}
	return int(total.Int64), nil
}
