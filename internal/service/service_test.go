package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"HabitTracker/internal/clock"
	dom "HabitTracker/internal/domain"
	"HabitTracker/internal/repo"
	"HabitTracker/internal/streak"

	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store    *repo.SQLiteStore
	clock    *clock.Fixed
	habits   *HabitService
	progress *ProgressService
	recs     *RecommendationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := repo.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "habits.db"))
	require.NoError(t, err)
	require.NoError(t, repo.MigrateSQLite(context.Background(), store.DB()))
	t.Cleanup(func() { _ = store.Close() })

	clk := clock.NewFixed(day0)
	calc := streak.NewCalculator(0)
	return &fixture{
		store:    store,
		clock:    clk,
		habits:   NewHabitService(store, clk, calc, nil),
		progress: NewProgressService(store, clk, calc, nil),
		recs:     NewRecommendationService(store, clk, nil),
	}
}

func (f *fixture) user(t *testing.T, name string) int64 {
	t.Helper()
	u, err := f.store.Users().Create(context.Background(), name, "hash")
	require.NoError(t, err)
	return u.ID
}

func (f *fixture) habit(t *testing.T, userID int64, name string) dom.Habit {
	t.Helper()
	h, err := f.habits.Create(context.Background(), userID, HabitInput{Name: name})
	require.NoError(t, err)
	return h
}

// mark records a day relative to the fixture's current day.
func (f *fixture) mark(t *testing.T, userID, habitID int64, offset int, completed bool) dom.Completion {
	t.Helper()
	d := clock.AddDays(f.clock.Today(), offset)
	c, err := f.habits.MarkDay(context.Background(), userID, habitID, &d, completed, "")
	require.NoError(t, err)
	return c
}
