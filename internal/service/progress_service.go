package service

import (
	"context"
	"math"
	"time"

	"HabitTracker/internal/cache"
	"HabitTracker/internal/clock"
	dom "HabitTracker/internal/domain"
	"HabitTracker/internal/repo"
	"HabitTracker/internal/streak"

	"golang.org/x/sync/singleflight"
)

// RecentWindow is how many records HabitProgress.RecentProgress holds.
const RecentWindow = 7

// ProgressService aggregates completion history. Streaks come from the
// backward scan, never from the habit's cached fields.
type ProgressService struct {
	store repo.Store
	clock clock.Clock
	calc  *streak.Calculator
	cache *cache.ProgressCache
	sf    singleflight.Group
}

// NewProgressService creates a ProgressService. If c is nil, caching is disabled.
func NewProgressService(store repo.Store, clk clock.Clock, calc *streak.Calculator, c *cache.ProgressCache) *ProgressService {
	return &ProgressService{store: store, clock: clk, calc: calc, cache: c}
}

// HabitProgress reports totals, the rounded completion rate, the current
// streak and the most recent records of one habit.
func (s *ProgressService) HabitProgress(ctx context.Context, userID, habitID int64) (dom.HabitProgress, error) {
	h, err := loadOwned(ctx, s.store.Habits(), userID, habitID, false)
	if err != nil {
		return dom.HabitProgress{}, err
	}
	return s.progressFor(ctx, h, s.clock.Today())
}

// AllProgress returns HabitProgress for every habit of the user in listing order.
func (s *ProgressService) AllProgress(ctx context.Context, userID int64) ([]dom.HabitProgress, error) {
	today := s.clock.Today()
	return readThrough(ctx, s.cache, &s.sf, cache.FamilyProgress, userID, today, func() ([]dom.HabitProgress, error) {
		return s.allProgress(ctx, userID, today)
	})
}

// IncompleteToday lists habits without a completed record for today. Each
// summary carries the run a completion today would extend, scanned back from
// yesterday, so it reads 0 once a day has been missed.
func (s *ProgressService) IncompleteToday(ctx context.Context, userID int64) ([]dom.HabitSummary, error) {
	today := s.clock.Today()
	habits, err := s.store.Habits().List(ctx, userID)
	if err != nil {
		return nil, internal("list habits", err)
	}
	out := make([]dom.HabitSummary, 0, len(habits))
	for _, h := range habits {
		done, err := s.store.Completions().IsCompleted(ctx, userID, h.ID, today)
		if err != nil {
			return nil, internal("check today", err)
		}
		if done {
			continue
		}
		run, err := s.calc.Current(ctx, s.store.Completions(), userID, h.ID, clock.AddDays(today, -1))
		if err != nil {
			return nil, internal("current streak", err)
		}
		out = append(out, dom.HabitSummary{
			ID:                h.ID,
			Name:              h.Name,
			Description:       h.Description,
			Frequency:         h.Frequency,
			Target:            h.Target,
			CurrentStreak:     run,
			LastCompletedDate: h.LastCompletedDate,
		})
	}
	return out, nil
}

// Stats is HabitProgress without recent records and with an unrounded rate.
func (s *ProgressService) Stats(ctx context.Context, userID, habitID int64) (dom.HabitStats, error) {
	h, err := loadOwned(ctx, s.store.Habits(), userID, habitID, false)
	if err != nil {
		return dom.HabitStats{}, err
	}
	total, completed, err := s.store.Completions().Counts(ctx, userID, h.ID)
	if err != nil {
		return dom.HabitStats{}, internal("count completions", err)
	}
	current, err := s.calc.Current(ctx, s.store.Completions(), userID, h.ID, s.clock.Today())
	if err != nil {
		return dom.HabitStats{}, internal("scan streak", err)
	}
	return dom.HabitStats{
		TotalDays:      total,
		CompletedDays:  completed,
		CompletionRate: completionRate(completed, total),
		CurrentStreak:  current,
	}, nil
}

// History returns every record of the habit, newest day first.
func (s *ProgressService) History(ctx context.Context, userID, habitID int64) ([]dom.Completion, error) {
	if _, err := loadOwned(ctx, s.store.Habits(), userID, habitID, false); err != nil {
		return nil, err
	}
	list, err := s.store.Completions().List(ctx, userID, habitID, 0)
	if err != nil {
		return nil, internal("list completions", err)
	}
	return list, nil
}

func (s *ProgressService) allProgress(ctx context.Context, userID int64, today time.Time) ([]dom.HabitProgress, error) {
	habits, err := s.store.Habits().List(ctx, userID)
	if err != nil {
		return nil, internal("list habits", err)
	}
	out := make([]dom.HabitProgress, 0, len(habits))
	for _, h := range habits {
		p, err := s.progressFor(ctx, h, today)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *ProgressService) progressFor(ctx context.Context, h dom.Habit, today time.Time) (dom.HabitProgress, error) {
	total, completed, err := s.store.Completions().Counts(ctx, h.UserID, h.ID)
	if err != nil {
		return dom.HabitProgress{}, internal("count completions", err)
	}
	current, err := s.calc.Current(ctx, s.store.Completions(), h.UserID, h.ID, today)
	if err != nil {
		return dom.HabitProgress{}, internal("scan streak", err)
	}
	recent, err := s.store.Completions().List(ctx, h.UserID, h.ID, RecentWindow)
	if err != nil {
		return dom.HabitProgress{}, internal("recent completions", err)
	}
	if recent == nil {
		recent = []dom.Completion{}
	}
	return dom.HabitProgress{
		HabitID:        h.ID,
		HabitName:      h.Name,
		Frequency:      h.Frequency,
		Target:         h.Target,
		TotalDays:      total,
		CompletedDays:  completed,
		CompletionRate: int(math.Round(completionRate(completed, total))),
		CurrentStreak:  current,
		RecentProgress: recent,
	}, nil
}

// completionRate is completed/total as a percentage, 0 when total is 0.
func completionRate(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
