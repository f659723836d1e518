package repo

import (
	"context"

	dom "HabitTracker/internal/domain"
)

// SQLiteUserRepo implements UserRepo with SQLite.
type SQLiteUserRepo struct {
	db  sqlQuerier
	now func() string
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id = ?`, id)
	return scanSQLiteUser(row)
}

func (r *SQLiteUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`, username)
	return scanSQLiteUser(row)
}

func (r *SQLiteUserRepo) Create(ctx context.Context, username, passwordHash string) (dom.User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
		RETURNING id, username, password_hash, created_at`, username, passwordHash, r.now())
	return scanSQLiteUser(row)
}

func scanSQLiteUser(row rowScanner) (dom.User, error) {
	var u dom.User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created); err != nil {
		return dom.User{}, mapSQLiteErr(err)
	}
	var err error
	if u.CreatedAt, err = parseTimestamp(created); err != nil {
		return dom.User{}, err
	}
	return u, nil
}
