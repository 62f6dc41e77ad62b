package goal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrInvalidGoal = errors.New("invalid goal")
var ErrGoalNotFound = errors.New("goal not found")
var ErrLedgerEntryFrozen = errors.New("ledger entry for a past day cannot be changed")

type Repository interface {
	// Store creates or replaces the goal of a project. The ledger is kept
	// untouched so that replacing goal parameters preserves history.
	Store(ctx context.Context, userId int, g Goal) error
	Get(ctx context.Context, userId int, projectId int) (*Goal, error)
	Delete(ctx context.Context, userId int, projectId int) (bool, error)
	// UpsertLedgerEntry inserts or updates the ledger row for a single date.
	UpsertLedgerEntry(ctx context.Context, userId int, projectId int, date string, words int) error
	GetLedgerEntry(ctx context.Context, userId int, projectId int, date string) (int, bool, error)
	// Reanchor moves the strict-mode baseline to the given date. The start
	// date is cleared so the new anchor actually takes effect.
	Reanchor(ctx context.Context, userId int, projectId int, date string) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const dateLayout = "2006-01-02"

func (r *RepositoryImpl) Store(ctx context.Context, userId int, g Goal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM writing_goal WHERE project_id = ? AND user_id = ?`, g.ProjectId, userId)
	if err != nil {
		return fmt.Errorf("could not delete previous goal: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`DELETE FROM writing_goal_day_off WHERE project_id = ? AND user_id = ?`, g.ProjectId, userId)
	if err != nil {
		return fmt.Errorf("could not delete previous days off: %w", err)
	}

	query := `INSERT INTO writing_goal (
                    project_id,
                    user_id,
                    target,
                    deadline,
                    start_date,
                    writing_days,
                    mode,
                    last_calculated_date
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, query,
		g.ProjectId,
		userId,
		g.Target,
		dateParam(g.Deadline),
		dateParam(g.StartDate),
		writingDaysToString(g.WritingDays),
		string(g.Mode),
		dateParam(g.LastCalculatedDate),
	)
	if err != nil {
		err := fmt.Errorf("could not store goal: %w", err)
		log.Error(err)
		return err
	}

	for _, day := range g.DaysOff {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO writing_goal_day_off (project_id, user_id, day) VALUES (?, ?, ?)`,
			g.ProjectId, userId, day)
		if err != nil {
			return fmt.Errorf("could not store day off %s: %w", day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, projectId int) (*Goal, error) {
	query := `SELECT target, deadline, start_date, writing_days, mode, last_calculated_date
				FROM writing_goal WHERE project_id = ? AND user_id = ?`

	var g Goal
	var deadline, startDate, lastCalculated sql.NullString
	var writingDays string
	var mode string
	err := r.db.QueryRowContext(ctx, query, projectId, userId).Scan(
		&g.Target,
		&deadline,
		&startDate,
		&writingDays,
		&mode,
		&lastCalculated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		log.Errorf("failed to get goal for project %d: %v", projectId, err)
		return nil, err
	}
	g.ProjectId = projectId
	g.Mode = Mode(mode)
	g.Deadline = parseStoredDate(deadline)
	g.StartDate = parseStoredDate(startDate)
	g.LastCalculatedDate = parseStoredDate(lastCalculated)
	g.WritingDays = writingDaysFromString(writingDays)

	g.DaysOff, err = r.getDaysOff(ctx, userId, projectId)
	if err != nil {
		return nil, err
	}
	g.Ledger, err = r.getLedger(ctx, userId, projectId)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *RepositoryImpl) getDaysOff(ctx context.Context, userId int, projectId int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT day FROM writing_goal_day_off WHERE project_id = ? AND user_id = ? ORDER BY day`,
		projectId, userId)
	if err != nil {
		log.Errorf("failed to get days off for project %d: %v", projectId, err)
		return nil, err
	}
	defer rows.Close()

	var daysOff []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		daysOff = append(daysOff, day)
	}
	return daysOff, rows.Err()
}

func (r *RepositoryImpl) getLedger(ctx context.Context, userId int, projectId int) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT entry_date, words FROM writing_goal_ledger WHERE project_id = ? AND user_id = ?`,
		projectId, userId)
	if err != nil {
		log.Errorf("failed to get ledger for project %d: %v", projectId, err)
		return nil, err
	}
	defer rows.Close()

	ledger := make(map[string]int)
	for rows.Next() {
		var date string
		var words int
		if err := rows.Scan(&date, &words); err != nil {
			return nil, err
		}
		ledger[date] = words
	}
	return ledger, rows.Err()
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, projectId int) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM writing_goal WHERE project_id = ? AND user_id = ?`, projectId, userId)
	if err != nil {
		log.Errorf("failed to delete goal for project %d: %v", projectId, err)
		return false, err
	}
	// ledger and days off go with the goal
	_, err = r.db.ExecContext(ctx,
		`DELETE FROM writing_goal_day_off WHERE project_id = ? AND user_id = ?`, projectId, userId)
	if err != nil {
		return false, err
	}
	_, err = r.db.ExecContext(ctx,
		`DELETE FROM writing_goal_ledger WHERE project_id = ? AND user_id = ?`, projectId, userId)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *RepositoryImpl) UpsertLedgerEntry(ctx context.Context, userId int, projectId int, date string, words int) error {
	query := `INSERT INTO writing_goal_ledger (project_id, user_id, entry_date, words) VALUES (?, ?, ?, ?)
				ON CONFLICT (project_id, user_id, entry_date) DO UPDATE SET words = excluded.words`
	_, err := r.db.ExecContext(ctx, query, projectId, userId, date, words)
	if err != nil {
		err := fmt.Errorf("could not upsert ledger entry: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) GetLedgerEntry(ctx context.Context, userId int, projectId int, date string) (int, bool, error) {
	var words int
	err := r.db.QueryRowContext(ctx,
		`SELECT words FROM writing_goal_ledger WHERE project_id = ? AND user_id = ? AND entry_date = ?`,
		projectId, userId, date).Scan(&words)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	return words, true, nil
}

func (r *RepositoryImpl) Reanchor(ctx context.Context, userId int, projectId int, date string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE writing_goal SET last_calculated_date = ?, start_date = NULL WHERE project_id = ? AND user_id = ?`,
		date, projectId, userId)
	if err != nil {
		log.Errorf("failed to re-anchor goal for project %d: %v", projectId, err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func dateParam(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}

func parseStoredDate(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		log.Warnf("invalid date %q in storage: %v", s.String, err)
		return time.Time{}
	}
	return t
}

func writingDaysToString(days [7]bool) string {
	out := make([]byte, 7)
	for i, enabled := range days {
		if enabled {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}

func writingDaysFromString(s string) [7]bool {
	var days [7]bool
	for i := 0; i < len(s) && i < 7; i++ {
		days[i] = s[i] == '1'
	}
	return days
}
