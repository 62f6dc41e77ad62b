package user

import (
	"context"
	"database/sql"
	"errors"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, userId int, user User) (User, error)
	DeleteUser(ctx context.Context, id int) error
	GetAllUsers(ctx context.Context) ([]User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type UserRepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, username, display_name, timezone, drive_root_folder_id)
				VALUES (?, ?, ?, ?, ?)`
	result, err := u.db.ExecContext(ctx, query,
		user.Uid,
		user.Username,
		user.DisplayName,
		user.Settings.Timezone,
		user.Settings.DriveRootFolderId,
	)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, username, display_name, timezone, drive_root_folder_id
				FROM users WHERE id = ?`
	return u.scanUser(u.db.QueryRowContext(ctx, query, id))
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, display_name, timezone, drive_root_folder_id
				FROM users WHERE uid = ?`
	return u.scanUser(u.db.QueryRowContext(ctx, query, uid))
}

func (u *UserRepoImpl) scanUser(row *sql.Row) (User, error) {
	var user User
	var driveRootFolderId sql.NullString
	err := row.Scan(
		&user.Id,
		&user.Uid,
		&user.Username,
		&user.DisplayName,
		&user.Settings.Timezone,
		&driveRootFolderId,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	if driveRootFolderId.Valid {
		user.Settings.DriveRootFolderId = driveRootFolderId.String
	}
	return user, nil
}

func (u *UserRepoImpl) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	query := `UPDATE users SET display_name = ?, timezone = ?, drive_root_folder_id = ? WHERE id = ?`
	result, err := u.db.ExecContext(ctx, query,
		user.DisplayName,
		user.Settings.Timezone,
		user.Settings.DriveRootFolderId,
		userId,
	)
	if err != nil {
		return User{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if rowsAffected == 0 {
		log.Infof("no rows affected when updating user %d", userId)
		return User{}, ErrUserNotFound
	}
	user.Id = userId
	return user, nil
}

func (u *UserRepoImpl) DeleteUser(ctx context.Context, id int) error {
	result, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Infof("no rows affected when deleting user %d", id)
		return ErrUserNotFound
	}
	return nil
}

func (u *UserRepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, uid, username, display_name, timezone, drive_root_folder_id FROM users`
	rows, err := u.db.QueryContext(ctx, query)
	if err != nil {
		log.Errorf("failed to get users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0, 10)
	for rows.Next() {
		var user User
		var driveRootFolderId sql.NullString
		err := rows.Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName,
			&user.Settings.Timezone, &driveRootFolderId)
		if err != nil {
			log.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		if driveRootFolderId.Valid {
			user.Settings.DriveRootFolderId = driveRootFolderId.String
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return users, nil
}

func (u *UserRepoImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	var count int
	err := u.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&count)
	if err != nil {
		log.Errorf("failed to check username availability: %v", err)
		return false, err
	}
	return count == 0, nil
}
