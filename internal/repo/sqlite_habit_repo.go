package repo

import (
	"context"
	"database/sql"

	"HabitTracker/internal/clock"
	dom "HabitTracker/internal/domain"
)

type SQLiteHabitRepo struct {
	db  sqlQuerier
	now func() string
}

func (r *SQLiteHabitRepo) Create(ctx context.Context, h dom.Habit) (dom.Habit, error) {
	ts := r.now()
	query := `
		INSERT INTO habits (user_id, name, description, frequency, target, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + habitColumns
	return scanSQLiteHabit(r.db.QueryRowContext(ctx, query,
		h.UserID, h.Name, h.Description, string(h.Frequency), h.Target, ts, ts))
}

func (r *SQLiteHabitRepo) GetByID(ctx context.Context, id int64) (dom.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = ?`
	return scanSQLiteHabit(r.db.QueryRowContext(ctx, query, id))
}

// GetForUpdate needs no row lock: the store's single connection already
// serializes transactions.
func (r *SQLiteHabitRepo) GetForUpdate(ctx context.Context, id int64) (dom.Habit, error) {
	return r.GetByID(ctx, id)
}

func (r *SQLiteHabitRepo) List(ctx context.Context, userID int64) ([]dom.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Habit
	for rows.Next() {
		h, err := scanSQLiteHabit(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func (r *SQLiteHabitRepo) Update(ctx context.Context, h dom.Habit) (dom.Habit, error) {
	query := `
		UPDATE habits SET name = ?, description = ?, frequency = ?, target = ?, updated_at = ?
		WHERE id = ?
		RETURNING ` + habitColumns
	return scanSQLiteHabit(r.db.QueryRowContext(ctx, query,
		h.Name, h.Description, string(h.Frequency), h.Target, r.now(), h.ID))
}

func (r *SQLiteHabitRepo) SaveStreak(ctx context.Context, h dom.Habit) (dom.Habit, error) {
	var last sql.NullString
	if h.LastCompletedDate != nil {
		last = sql.NullString{String: clock.Format(*h.LastCompletedDate), Valid: true}
	}
	query := `
		UPDATE habits SET current_streak = ?, longest_streak = ?, last_completed_date = ?, updated_at = ?
		WHERE id = ?
		RETURNING ` + habitColumns
	return scanSQLiteHabit(r.db.QueryRowContext(ctx, query,
		h.CurrentStreak, h.LongestStreak, last, r.now(), h.ID))
}

func (r *SQLiteHabitRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return mapSQLiteErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSQLiteHabit(row rowScanner) (dom.Habit, error) {
	var (
		h                dom.Habit
		freq             string
		last             sql.NullString
		created, updated string
	)
	err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &freq, &h.Target,
		&h.CurrentStreak, &h.LongestStreak, &last, &created, &updated)
	if err != nil {
		return dom.Habit{}, mapSQLiteErr(err)
	}
	h.Frequency = dom.Frequency(freq)
	if last.Valid {
		d, err := clock.Parse(last.String)
		if err != nil {
			return dom.Habit{}, err
		}
		h.LastCompletedDate = &d
	}
	if h.CreatedAt, err = parseTimestamp(created); err != nil {
		return dom.Habit{}, err
	}
	if h.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return dom.Habit{}, err
	}
	return h, nil
}
