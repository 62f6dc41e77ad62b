package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrProjectNotFound = errors.New("project not found")

type Repository interface {
	Store(ctx context.Context, userId int, project Project) (int, error)
	Get(ctx context.Context, userId int, projectId int) (Project, error)
	GetAll(ctx context.Context, userId int, includeArchived bool) ([]Project, error)
	Update(ctx context.Context, userId int, project Project) (bool, error)
	UpdatePosition(ctx context.Context, userId int, project Project) (bool, error)
	FindMaxPosition(ctx context.Context, userId int) (int, error)
	Delete(ctx context.Context, userId int, projectId int) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, project Project) (int, error) {
	query := `INSERT INTO project (
                    name,
                    description,
                    word_goal,
                    drive_folder_id,
                    status,
                    position,
                    user_id
				) VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		project.Name,
		project.Description,
		project.WordGoal,
		project.DriveFolderId,
		string(project.Status),
		project.Position,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not store project: %w", err)
		log.Error(err)
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, projectId int) (Project, error) {
	query := `SELECT id, name, description, word_goal, drive_folder_id, status, position
				FROM project WHERE id = ? AND user_id = ?`

	var p Project
	var status string
	err := r.db.QueryRowContext(ctx, query, projectId, userId).Scan(
		&p.Id, &p.Name, &p.Description, &p.WordGoal, &p.DriveFolderId, &status, &p.Position,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrProjectNotFound
	} else if err != nil {
		log.Errorf("failed to get project %d: %v", projectId, err)
		return Project{}, err
	}
	p.Status = Status(status)
	return p, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, userId int, includeArchived bool) ([]Project, error) {
	query := `SELECT id, name, description, word_goal, drive_folder_id, status, position
				FROM project WHERE user_id = ?`
	if !includeArchived {
		query += ` AND status = 'active'`
	}
	query += ` ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		log.Errorf("failed to get projects: %v", err)
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		var status string
		if err := rows.Scan(&p.Id, &p.Name, &p.Description, &p.WordGoal, &p.DriveFolderId, &status, &p.Position); err != nil {
			return nil, err
		}
		p.Status = Status(status)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, project Project) (bool, error) {
	query := `UPDATE project SET name = ?, description = ?, word_goal = ?, drive_folder_id = ?, status = ?
				WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query,
		project.Name,
		project.Description,
		project.WordGoal,
		project.DriveFolderId,
		string(project.Status),
		project.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update project: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *RepositoryImpl) UpdatePosition(ctx context.Context, userId int, project Project) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE project SET position = ? WHERE id = ? AND user_id = ?`,
		project.Position, project.Id, userId)
	if err != nil {
		log.Errorf("failed to update position of project %d: %v", project.Id, err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *RepositoryImpl) FindMaxPosition(ctx context.Context, userId int) (int, error) {
	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(position) FROM project WHERE user_id = ?`, userId).Scan(&max)
	if err != nil {
		log.Errorf("failed to find max project position: %v", err)
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64), nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, projectId int) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM project WHERE id = ? AND user_id = ?`, projectId, userId)
	if err != nil {
		log.Errorf("failed to delete project %d: %v", projectId, err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
