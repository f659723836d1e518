// Package streak derives consecutive-day streaks from completion history.
//
// Two paths compute the same quantity. Advance is the incremental update
// applied when a habit is completed today; Calculator.Current walks the
// history backward from today and is the authoritative value. Reconcile
// rebuilds the cached fields on a Habit from history after edits.
package streak

import (
	"context"
	"fmt"
	"time"

	"HabitTracker/internal/clock"
	dom "HabitTracker/internal/domain"
)

const (
	DefaultMaxScanDays = 3650
	pageSize           = 64
)

// ErrAlreadyAdvanced means Advance was asked to count today twice.
var ErrAlreadyAdvanced = fmt.Errorf("%w: streak already advanced today", dom.ErrInternal)

// History lists the days a habit was completed, newest first, starting at
// onOrBefore and returning at most limit days.
type History interface {
	CompletedDays(ctx context.Context, userID, habitID int64, onOrBefore time.Time, limit int) ([]time.Time, error)
}

// Advance applies today's completion to the cached streak fields of h.
func Advance(h dom.Habit, today time.Time) (dom.Habit, error) {
	yesterday := clock.AddDays(today, -1)
	next := 1
	if h.LastCompletedDate != nil {
		last := clock.Day(*h.LastCompletedDate)
		switch {
		case last.Equal(today):
			return h, ErrAlreadyAdvanced
		case last.Equal(yesterday):
			next = h.CurrentStreak + 1
		}
	}
	h.CurrentStreak = next
	if next > h.LongestStreak {
		h.LongestStreak = next
	}
	day := today
	h.LastCompletedDate = &day
	return h, nil
}

// Calculator runs the backward scan. MaxDays bounds the walk.
type Calculator struct {
	MaxDays int
}

func NewCalculator(maxDays int) *Calculator {
	if maxDays <= 0 {
		maxDays = DefaultMaxScanDays
	}
	return &Calculator{MaxDays: maxDays}
}

// Current counts consecutive completed days ending today. A habit not yet
// completed today has a current streak of 0.
func (c *Calculator) Current(ctx context.Context, h History, userID, habitID int64, today time.Time) (int, error) {
	return c.runEnding(ctx, h, userID, habitID, today)
}

// Reconcile recomputes h's cached streak fields from history as of today.
// CurrentStreak becomes the run ending at the latest completed day, which is
// what Advance maintains incrementally.
func (c *Calculator) Reconcile(ctx context.Context, hist History, h dom.Habit, today time.Time) (dom.Habit, error) {
	latest, err := hist.CompletedDays(ctx, h.UserID, h.ID, today, 1)
	if err != nil {
		return h, fmt.Errorf("latest completion: %w", err)
	}
	if len(latest) == 0 {
		h.CurrentStreak = 0
		h.LastCompletedDate = nil
		return h, nil
	}
	last := latest[0]
	run, err := c.runEnding(ctx, hist, h.UserID, h.ID, last)
	if err != nil {
		return h, err
	}
	h.CurrentStreak = run
	h.LastCompletedDate = &last
	if run > h.LongestStreak {
		h.LongestStreak = run
	}
	return h, nil
}

func (c *Calculator) runEnding(ctx context.Context, hist History, userID, habitID int64, end time.Time) (int, error) {
	count := 0
	expect := end
	for count < c.MaxDays {
		days, err := hist.CompletedDays(ctx, userID, habitID, expect, pageSize)
		if err != nil {
			return 0, fmt.Errorf("scan completions: %w", err)
		}
		for _, d := range days {
			if !clock.Day(d).Equal(expect) {
				return count, nil
			}
			count++
			if count >= c.MaxDays {
				return count, nil
			}
			expect = clock.AddDays(expect, -1)
		}
		if len(days) < pageSize {
			return count, nil
		}
	}
	return count, nil
}
