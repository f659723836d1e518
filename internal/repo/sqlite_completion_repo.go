package repo

import (
	"context"
	"errors"
	"time"

	"HabitTracker/internal/clock"
	dom "HabitTracker/internal/domain"
)

type SQLiteCompletionRepo struct {
	db  sqlQuerier
	now func() string
}

func (r *SQLiteCompletionRepo) Upsert(ctx context.Context, c dom.Completion) (dom.Completion, error) {
	ts := r.now()
	query := `
		INSERT INTO completions (user_id, habit_id, day, completed, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, habit_id, day)
		DO UPDATE SET completed = excluded.completed, notes = excluded.notes, updated_at = excluded.updated_at
		RETURNING ` + completionColumns
	return scanSQLiteCompletion(r.db.QueryRowContext(ctx, query,
		c.UserID, c.HabitID, clock.Format(c.Day), c.Completed, c.Notes, ts, ts))
}

func (r *SQLiteCompletionRepo) MarkCompleted(ctx context.Context, userID, habitID int64, day time.Time) (dom.Completion, error) {
	ts := r.now()
	query := `
		INSERT INTO completions (user_id, habit_id, day, completed, notes, created_at, updated_at)
		VALUES (?, ?, ?, 1, '', ?, ?)
		ON CONFLICT (user_id, habit_id, day)
		DO UPDATE SET completed = 1, updated_at = excluded.updated_at
		WHERE completions.completed = 0
		RETURNING ` + completionColumns
	c, err := scanSQLiteCompletion(r.db.QueryRowContext(ctx, query, userID, habitID, clock.Format(day), ts, ts))
	if errors.Is(err, ErrNotFound) {
		return dom.Completion{}, ErrConflict
	}
	return c, err
}

func (r *SQLiteCompletionRepo) List(ctx context.Context, userID, habitID int64, limit int) ([]dom.Completion, error) {
	query := `SELECT ` + completionColumns + ` FROM completions
		WHERE user_id = ? AND habit_id = ? ORDER BY day DESC`
	args := []any{userID, habitID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.queryCompletions(ctx, query, args...)
}

func (r *SQLiteCompletionRepo) Counts(ctx context.Context, userID, habitID int64) (int, int, error) {
	var total, completed int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(completed), 0)
		FROM completions WHERE user_id = ? AND habit_id = ?`, userID, habitID,
	).Scan(&total, &completed)
	return total, completed, mapSQLiteErr(err)
}

func (r *SQLiteCompletionRepo) ListSince(ctx context.Context, userID int64, since time.Time) ([]dom.Completion, error) {
	query := `SELECT ` + completionColumns + ` FROM completions
		WHERE user_id = ? AND day >= ? ORDER BY day DESC`
	return r.queryCompletions(ctx, query, userID, clock.Format(since))
}

func (r *SQLiteCompletionRepo) CompletedDays(ctx context.Context, userID, habitID int64, onOrBefore time.Time, limit int) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT day FROM completions
		WHERE user_id = ? AND habit_id = ? AND completed = 1 AND day <= ?
		ORDER BY day DESC LIMIT ?`, userID, habitID, clock.Format(onOrBefore), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var days []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		d, err := clock.Parse(raw)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (r *SQLiteCompletionRepo) IsCompleted(ctx context.Context, userID, habitID int64, day time.Time) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM completions
			WHERE user_id = ? AND habit_id = ? AND day = ? AND completed = 1)`,
		userID, habitID, clock.Format(day),
	).Scan(&ok)
	return ok, mapSQLiteErr(err)
}

func (r *SQLiteCompletionRepo) DeleteByHabit(ctx context.Context, habitID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM completions WHERE habit_id = ?`, habitID)
	return mapSQLiteErr(err)
}

func (r *SQLiteCompletionRepo) queryCompletions(ctx context.Context, query string, args ...any) ([]dom.Completion, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Completion
	for rows.Next() {
		c, err := scanSQLiteCompletion(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanSQLiteCompletion(row rowScanner) (dom.Completion, error) {
	var (
		c                     dom.Completion
		day, created, updated string
	)
	err := row.Scan(&c.ID, &c.UserID, &c.HabitID, &day, &c.Completed, &c.Notes, &created, &updated)
	if err != nil {
		return dom.Completion{}, mapSQLiteErr(err)
	}
	if c.Day, err = clock.Parse(day); err != nil {
		return dom.Completion{}, err
	}
	if c.CreatedAt, err = parseTimestamp(created); err != nil {
		return dom.Completion{}, err
	}
	if c.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return dom.Completion{}, err
	}
	return c, nil
}
