package repo

import (
	"context"
	"errors"
	"time"

	dom "HabitTracker/internal/domain"
)

type CompletionRepo interface {
	// Upsert creates the record for (user, habit, day) or overwrites its
	// completed flag and notes.
	Upsert(ctx context.Context, c dom.Completion) (dom.Completion, error)
	// MarkCompleted records the day as completed. It returns ErrConflict when a
	// completed record for the day already exists; an existing not-completed
	// record is flipped in place.
	MarkCompleted(ctx context.Context, userID, habitID int64, day time.Time) (dom.Completion, error)
	// List returns records newest day first; limit <= 0 means all.
	List(ctx context.Context, userID, habitID int64, limit int) ([]dom.Completion, error)
	Counts(ctx context.Context, userID, habitID int64) (total, completed int, err error)
	// ListSince returns every record of the user with day >= since.
	ListSince(ctx context.Context, userID int64, since time.Time) ([]dom.Completion, error)
	CompletedDays(ctx context.Context, userID, habitID int64, onOrBefore time.Time, limit int) ([]time.Time, error)
	IsCompleted(ctx context.Context, userID, habitID int64, day time.Time) (bool, error)
	DeleteByHabit(ctx context.Context, habitID int64) error
}

type PGCompletionRepo struct {
	db pgQuerier
}

const completionColumns = `id, user_id, habit_id, day, completed, notes, created_at, updated_at`

func (r *PGCompletionRepo) Upsert(ctx context.Context, c dom.Completion) (dom.Completion, error) {
	query := `
		INSERT INTO completions (user_id, habit_id, day, completed, notes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, habit_id, day)
		DO UPDATE SET completed = EXCLUDED.completed, notes = EXCLUDED.notes, updated_at = NOW()
		RETURNING ` + completionColumns
	return scanPGCompletion(r.db.QueryRow(ctx, query, c.UserID, c.HabitID, c.Day, c.Completed, c.Notes))
}

func (r *PGCompletionRepo) MarkCompleted(ctx context.Context, userID, habitID int64, day time.Time) (dom.Completion, error) {
	query := `
		INSERT INTO completions (user_id, habit_id, day, completed)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (user_id, habit_id, day)
		DO UPDATE SET completed = TRUE, updated_at = NOW()
		WHERE completions.completed = FALSE
		RETURNING ` + completionColumns
	c, err := scanPGCompletion(r.db.QueryRow(ctx, query, userID, habitID, day))
	if errors.Is(err, ErrNotFound) {
		return dom.Completion{}, ErrConflict
	}
	return c, err
}

func (r *PGCompletionRepo) List(ctx context.Context, userID, habitID int64, limit int) ([]dom.Completion, error) {
	query := `SELECT ` + completionColumns + ` FROM completions
		WHERE user_id = $1 AND habit_id = $2 ORDER BY day DESC`
	args := []any{userID, habitID}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}
	return r.queryCompletions(ctx, query, args...)
}

func (r *PGCompletionRepo) Counts(ctx context.Context, userID, habitID int64) (int, int, error) {
	var total, completed int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
		FROM completions WHERE user_id = $1 AND habit_id = $2`, userID, habitID,
	).Scan(&total, &completed)
	return total, completed, mapPGErr(err)
}

func (r *PGCompletionRepo) ListSince(ctx context.Context, userID int64, since time.Time) ([]dom.Completion, error) {
	query := `SELECT ` + completionColumns + ` FROM completions
		WHERE user_id = $1 AND day >= $2 ORDER BY day DESC`
	return r.queryCompletions(ctx, query, userID, since)
}

func (r *PGCompletionRepo) CompletedDays(ctx context.Context, userID, habitID int64, onOrBefore time.Time, limit int) ([]time.Time, error) {
	rows, err := r.db.Query(ctx, `
		SELECT day FROM completions
		WHERE user_id = $1 AND habit_id = $2 AND completed AND day <= $3
		ORDER BY day DESC LIMIT $4`, userID, habitID, onOrBefore, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var days []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (r *PGCompletionRepo) IsCompleted(ctx context.Context, userID, habitID int64, day time.Time) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM completions
			WHERE user_id = $1 AND habit_id = $2 AND day = $3 AND completed)`,
		userID, habitID, day,
	).Scan(&ok)
	return ok, mapPGErr(err)
}

func (r *PGCompletionRepo) DeleteByHabit(ctx context.Context, habitID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM completions WHERE habit_id = $1`, habitID)
	return mapPGErr(err)
}

func (r *PGCompletionRepo) queryCompletions(ctx context.Context, query string, args ...any) ([]dom.Completion, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Completion
	for rows.Next() {
		c, err := scanPGCompletion(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanPGCompletion(row rowScanner) (dom.Completion, error) {
	var c dom.Completion
	err := row.Scan(&c.ID, &c.UserID, &c.HabitID, &c.Day, &c.Completed, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return dom.Completion{}, mapPGErr(err)
	}
	return c, nil
}
