package repo

import (
	"context"

	dom "HabitTracker/internal/domain"
)

type HabitRepo interface {
	Create(ctx context.Context, h dom.Habit) (dom.Habit, error)
	GetByID(ctx context.Context, id int64) (dom.Habit, error)
	// GetForUpdate reads a habit and locks it until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (dom.Habit, error)
	// List returns the user's habits, newest first.
	List(ctx context.Context, userID int64) ([]dom.Habit, error)
	Update(ctx context.Context, h dom.Habit) (dom.Habit, error)
	SaveStreak(ctx context.Context, h dom.Habit) (dom.Habit, error)
	Delete(ctx context.Context, id int64) error
}

type PGHabitRepo struct {
	db pgQuerier
}

const habitColumns = `id, user_id, name, description, frequency, target,
	current_streak, longest_streak, last_completed_date, created_at, updated_at`

func (r *PGHabitRepo) Create(ctx context.Context, h dom.Habit) (dom.Habit, error) {
	query := `
		INSERT INTO habits (user_id, name, description, frequency, target)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + habitColumns
	return scanPGHabit(r.db.QueryRow(ctx, query, h.UserID, h.Name, h.Description, string(h.Frequency), h.Target))
}

func (r *PGHabitRepo) GetByID(ctx context.Context, id int64) (dom.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`
	return scanPGHabit(r.db.QueryRow(ctx, query, id))
}

func (r *PGHabitRepo) GetForUpdate(ctx context.Context, id int64) (dom.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1 FOR UPDATE`
	return scanPGHabit(r.db.QueryRow(ctx, query, id))
}

func (r *PGHabitRepo) List(ctx context.Context, userID int64) ([]dom.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Habit
	for rows.Next() {
		h, err := scanPGHabit(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func (r *PGHabitRepo) Update(ctx context.Context, h dom.Habit) (dom.Habit, error) {
	query := `
		UPDATE habits SET name = $2, description = $3, frequency = $4, target = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + habitColumns
	return scanPGHabit(r.db.QueryRow(ctx, query, h.ID, h.Name, h.Description, string(h.Frequency), h.Target))
}

func (r *PGHabitRepo) SaveStreak(ctx context.Context, h dom.Habit) (dom.Habit, error) {
	query := `
		UPDATE habits SET current_streak = $2, longest_streak = $3, last_completed_date = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + habitColumns
	return scanPGHabit(r.db.QueryRow(ctx, query, h.ID, h.CurrentStreak, h.LongestStreak, h.LastCompletedDate))
}

func (r *PGHabitRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return mapPGErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPGHabit(row rowScanner) (dom.Habit, error) {
	var h dom.Habit
	var freq string
	err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &freq, &h.Target,
		&h.CurrentStreak, &h.LongestStreak, &h.LastCompletedDate, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return dom.Habit{}, mapPGErr(err)
	}
	h.Frequency = dom.Frequency(freq)
	return h, nil
}
