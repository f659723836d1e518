package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"HabitTracker/internal/cache"
	"HabitTracker/internal/clock"
	dom "HabitTracker/internal/domain"
	"HabitTracker/internal/logger"
	"HabitTracker/internal/metrics"
	"HabitTracker/internal/repo"
	"HabitTracker/internal/streak"
)

const (
	maxNameLen        = 120
	maxDescriptionLen = 1000
	maxNotesLen       = 1000
)

// HabitInput carries the editable fields of a new habit. Zero Frequency
// means daily and zero Target means 1.
type HabitInput struct {
	Name        string
	Description string
	Frequency   dom.Frequency
	Target      float64
}

// HabitPatch is a partial update; nil fields are left unchanged.
type HabitPatch struct {
	Name        *string
	Description *string
	Frequency   *dom.Frequency
	Target      *float64
}

// HabitService owns habit lifecycle and the completion recorder.
type HabitService struct {
	store repo.Store
	clock clock.Clock
	calc  *streak.Calculator
	cache *cache.ProgressCache
}

// NewHabitService creates a HabitService. If c is nil, caching is disabled.
func NewHabitService(store repo.Store, clk clock.Clock, calc *streak.Calculator, c *cache.ProgressCache) *HabitService {
	return &HabitService{store: store, clock: clk, calc: calc, cache: c}
}

func (s *HabitService) Create(ctx context.Context, userID int64, in HabitInput) (dom.Habit, error) {
	h := dom.Habit{
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Frequency:   in.Frequency,
		Target:      in.Target,
	}
	if h.Frequency == "" {
		h.Frequency = dom.FrequencyDaily
	}
	if h.Target == 0 {
		h.Target = 1
	}
	if err := validateHabit(h); err != nil {
		return dom.Habit{}, err
	}
	out, err := s.store.Habits().Create(ctx, h)
	if err != nil {
		return dom.Habit{}, internal("create habit", err)
	}
	s.invalidateCache(ctx, userID)
	return out, nil
}

func (s *HabitService) Get(ctx context.Context, userID, id int64) (dom.Habit, error) {
	return loadOwned(ctx, s.store.Habits(), userID, id, false)
}

// List returns the user's habits, newest first.
func (s *HabitService) List(ctx context.Context, userID int64) ([]dom.Habit, error) {
	list, err := s.store.Habits().List(ctx, userID)
	if err != nil {
		return nil, internal("list habits", err)
	}
	return list, nil
}

func (s *HabitService) Update(ctx context.Context, userID, id int64, patch HabitPatch) (dom.Habit, error) {
	var out dom.Habit
	err := s.store.WithinTx(ctx, func(tx repo.Store) error {
		h, err := loadOwned(ctx, tx.Habits(), userID, id, true)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			h.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Description != nil {
			h.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.Frequency != nil {
			h.Frequency = *patch.Frequency
		}
		if patch.Target != nil {
			h.Target = *patch.Target
		}
		if err := validateHabit(h); err != nil {
			return err
		}
		out, err = tx.Habits().Update(ctx, h)
		return err
	})
	if err != nil {
		return dom.Habit{}, internal("update habit", err)
	}
	s.invalidateCache(ctx, userID)
	return out, nil
}

// Delete removes the habit's completions and then the habit in one transaction.
func (s *HabitService) Delete(ctx context.Context, userID, id int64) error {
	err := s.store.WithinTx(ctx, func(tx repo.Store) error {
		if _, err := loadOwned(ctx, tx.Habits(), userID, id, true); err != nil {
			return err
		}
		if err := tx.Completions().DeleteByHabit(ctx, id); err != nil {
			return err
		}
		return tx.Habits().Delete(ctx, id)
	})
	if err != nil {
		return internal("delete habit", err)
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// Location is the reference zone that decides calendar days.
func (s *HabitService) Location() *time.Location {
	return s.clock.Location()
}

// MarkDay records whether the habit was done on day (today when nil),
// taken as the calendar day the instant falls on in the reference zone,
// overwriting an earlier mark for the same day. The habit's cached streak
// fields are rebuilt from history in the same transaction.
func (s *HabitService) MarkDay(ctx context.Context, userID, habitID int64, day *time.Time, completed bool, notes string) (dom.Completion, error) {
	today := s.clock.Today()
	d := today
	if day != nil {
		d = clock.DayIn(*day, s.clock.Location())
	}
	if d.After(today) {
		return dom.Completion{}, dom.NewValidationError("date", "cannot be in the future")
	}
	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > maxNotesLen {
		return dom.Completion{}, dom.NewValidationError("notes", "too long")
	}

	var rec dom.Completion
	err := s.store.WithinTx(ctx, func(tx repo.Store) error {
		h, err := loadOwned(ctx, tx.Habits(), userID, habitID, true)
		if err != nil {
			return err
		}
		rec, err = tx.Completions().Upsert(ctx, dom.Completion{
			UserID:    userID,
			HabitID:   habitID,
			Day:       d,
			Completed: completed,
			Notes:     notes,
		})
		if err != nil {
			return err
		}
		fresh, err := s.calc.Reconcile(ctx, tx.Completions(), h, today)
		if err != nil {
			return err
		}
		if streakChanged(h, fresh) {
			_, err = tx.Habits().SaveStreak(ctx, fresh)
		}
		return err
	})
	if err != nil {
		return dom.Completion{}, internal("mark day", err)
	}
	metrics.CompletionsRecorded.WithLabelValues("mark_day").Inc()
	s.invalidateCache(ctx, userID)
	return rec, nil
}

// CompleteToday marks today completed and advances the streak. Completing
// the same habit twice in a day fails with dom.ErrDuplicateCompletion.
func (s *HabitService) CompleteToday(ctx context.Context, userID, habitID int64) (dom.Completion, dom.Habit, error) {
	today := s.clock.Today()
	var (
		rec dom.Completion
		out dom.Habit
	)
	err := s.store.WithinTx(ctx, func(tx repo.Store) error {
		h, err := loadOwned(ctx, tx.Habits(), userID, habitID, true)
		if err != nil {
			return err
		}
		rec, err = tx.Completions().MarkCompleted(ctx, userID, habitID, today)
		if err != nil {
			if errors.Is(err, repo.ErrConflict) {
				return dom.ErrDuplicateCompletion
			}
			return err
		}
		next, err := streak.Advance(h, today)
		if err != nil {
			return err
		}
		out, err = tx.Habits().SaveStreak(ctx, next)
		return err
	})
	if err != nil {
		if errors.Is(err, dom.ErrDuplicateCompletion) {
			metrics.DuplicateCompletions.Inc()
		}
		return dom.Completion{}, dom.Habit{}, internal("complete today", err)
	}
	metrics.CompletionsRecorded.WithLabelValues("complete_today").Inc()
	s.invalidateCache(ctx, userID)
	return rec, out, nil
}

// invalidateCache runs after the write has committed, so a failure is
// logged rather than returned.
func (s *HabitService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		logger.Warn("cache invalidation failed", "user_id", userID, "err", err)
	}
}

func validateHabit(h dom.Habit) error {
	switch n := utf8.RuneCountInString(h.Name); {
	case n == 0:
		return dom.NewValidationError("name", "is required")
	case n > maxNameLen:
		return dom.NewValidationError("name", "too long")
	}
	if utf8.RuneCountInString(h.Description) > maxDescriptionLen {
		return dom.NewValidationError("description", "too long")
	}
	if !h.Frequency.Valid() {
		return dom.NewValidationError("frequency", "must be daily, weekly or monthly")
	}
	if h.Target <= 0 {
		return dom.NewValidationError("target", "must be positive")
	}
	return nil
}

func streakChanged(a, b dom.Habit) bool {
	if a.CurrentStreak != b.CurrentStreak || a.LongestStreak != b.LongestStreak {
		return true
	}
	switch {
	case a.LastCompletedDate == nil && b.LastCompletedDate == nil:
		return false
	case a.LastCompletedDate == nil || b.LastCompletedDate == nil:
		return true
	}
	return !a.LastCompletedDate.Equal(*b.LastCompletedDate)
}
