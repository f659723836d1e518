package service

import (
	"context"
	"errors"
	"fmt"

	dom "HabitTracker/internal/domain"
	"HabitTracker/internal/repo"
)

// internal wraps storage and invariant failures as dom.ErrInternal while
// keeping the cause for logs. Domain errors pass through untouched.
func internal(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{dom.ErrNotFound, dom.ErrForbidden, dom.ErrDuplicateCompletion, dom.ErrValidation, dom.ErrInternal} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %w", dom.ErrInternal, op, err)
}

// loadOwned fetches a habit and checks it belongs to userID. With lock set
// the row stays locked until the surrounding transaction ends.
func loadOwned(ctx context.Context, habits repo.HabitRepo, userID, habitID int64, lock bool) (dom.Habit, error) {
	get := habits.GetByID
	if lock {
		get = habits.GetForUpdate
	}
	h, err := get(ctx, habitID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.Habit{}, dom.ErrNotFound
		}
		return dom.Habit{}, internal("load habit", err)
	}
	if h.UserID != userID {
		return dom.Habit{}, dom.ErrForbidden
	}
	return h, nil
}
