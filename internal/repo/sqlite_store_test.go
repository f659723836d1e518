package repo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HabitTracker/internal/clock"
	dom "HabitTracker/internal/domain"
)

var day0 = time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "habits.db"))
	require.NoError(t, err)
	require.NoError(t, MigrateSQLite(context.Background(), s.DB()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedHabit(t *testing.T, s Store, name string) (dom.User, dom.Habit) {
	t.Helper()
	ctx := context.Background()
	u, err := s.Users().Create(ctx, "user-"+name, "hash")
	require.NoError(t, err)
	h, err := s.Habits().Create(ctx, dom.Habit{UserID: u.ID, Name: name, Frequency: dom.FrequencyDaily, Target: 1})
	require.NoError(t, err)
	return u, h
}

func TestOpenSQLite_MigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, MigrateSQLite(context.Background(), s.DB()))
}

func TestSQLiteHabits_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u, h := seedHabit(t, s, "Reading")

	assert.NotZero(t, h.ID)
	assert.Equal(t, u.ID, h.UserID)
	assert.Equal(t, dom.FrequencyDaily, h.Frequency)
	assert.Equal(t, 0, h.CurrentStreak)
	assert.Nil(t, h.LastCompletedDate)
	assert.False(t, h.CreatedAt.IsZero())

	h.Name = "Reading fiction"
	h.Target = 2.5
	h.Frequency = dom.FrequencyWeekly
	updated, err := s.Habits().Update(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, "Reading fiction", updated.Name)
	assert.Equal(t, 2.5, updated.Target)
	assert.Equal(t, dom.FrequencyWeekly, updated.Frequency)

	last := day0
	updated.CurrentStreak, updated.LongestStreak, updated.LastCompletedDate = 3, 5, &last
	saved, err := s.Habits().SaveStreak(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, 3, saved.CurrentStreak)
	assert.Equal(t, 5, saved.LongestStreak)
	require.NotNil(t, saved.LastCompletedDate)
	assert.True(t, saved.LastCompletedDate.Equal(day0))

	require.NoError(t, s.Habits().Delete(ctx, h.ID))
	_, err = s.Habits().GetByID(ctx, h.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Habits().Delete(ctx, h.ID), ErrNotFound)
}

func TestSQLiteHabits_ListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u, first := seedHabit(t, s, "first")
	second, err := s.Habits().Create(ctx, dom.Habit{UserID: u.ID, Name: "second", Frequency: dom.FrequencyDaily, Target: 1})
	require.NoError(t, err)
	_, _ = seedHabit(t, s, "someone-else")

	list, err := s.Habits().List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestSQLiteCompletions_UpsertKeepsOneRowPerDay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u, h := seedHabit(t, s, "Exercise")

	c1, err := s.Completions().Upsert(ctx, dom.Completion{UserID: u.ID, HabitID: h.ID, Day: day0, Completed: false, Notes: "rain"})
	require.NoError(t, err)
	c2, err := s.Completions().Upsert(ctx, dom.Completion{UserID: u.ID, HabitID: h.ID, Day: day0, Completed: true, Notes: "gym"})
	require.NoError(t, err)

	assert.Equal(t, c1.ID, c2.ID)
	assert.True(t, c2.Completed)
	assert.Equal(t, "gym", c2.Notes)
	assert.True(t, c2.Day.Equal(day0))

	total, completed, err := s.Completions().Counts(ctx, u.ID, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, completed)
}

func TestSQLiteCompletions_MarkCompleted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u, h := seedHabit(t, s, "Meditation")

	_, err := s.Completions().Upsert(ctx, dom.Completion{UserID: u.ID, HabitID: h.ID, Day: day0, Completed: false})
	require.NoError(t, err)

	c, err := s.Completions().MarkCompleted(ctx, u.ID, h.ID, day0)
	require.NoError(t, err, "a not-done mark is flipped in place")
	assert.True(t, c.Completed)

	_, err = s.Completions().MarkCompleted(ctx, u.ID, h.ID, day0)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSQLiteCompletions_Queries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u, h := seedHabit(t, s, "Walk")

	for i, done := range []bool{true, true, false, true, true} {
		_, err := s.Completions().Upsert(ctx, dom.Completion{UserID: u.ID, HabitID: h.ID, Day: clock.AddDays(day0, -i), Completed: done})
		require.NoError(t, err)
	}

	list, err := s.Completions().List(ctx, u.ID, h.ID, 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].Day.Equal(day0))
	assert.True(t, list[2].Day.Equal(clock.AddDays(day0, -2)))

	days, err := s.Completions().CompletedDays(ctx, u.ID, h.ID, clock.AddDays(day0, -1), 10)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.True(t, days[0].Equal(clock.AddDays(day0, -1)))
	assert.True(t, days[1].Equal(clock.AddDays(day0, -3)))

	since, err := s.Completions().ListSince(ctx, u.ID, clock.AddDays(day0, -1))
	require.NoError(t, err)
	assert.Len(t, since, 2)

	ok, err := s.Completions().IsCompleted(ctx, u.ID, h.ID, clock.AddDays(day0, -2))
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.Completions().IsCompleted(ctx, u.ID, h.ID, day0)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Completions().DeleteByHabit(ctx, h.ID))
	total, _, err := s.Completions().Counts(ctx, u.ID, h.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestSQLiteStore_WithinTxRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u, h := seedHabit(t, s, "Rollback")

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(tx Store) error {
		if _, err := tx.Completions().MarkCompleted(ctx, u.ID, h.ID, day0); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	ok, err := s.Completions().IsCompleted(ctx, u.ID, h.ID, day0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteUsers_DuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.Users().Create(ctx, "ana", "h1")
	require.NoError(t, err)
	_, err = s.Users().Create(ctx, "ana", "h2")
	assert.ErrorIs(t, err, ErrConflict)

	u, err := s.Users().GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "h1", u.PasswordHash)

	_, err = s.Users().GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)

	byID, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", byID.Username)
	_, err = s.Users().GetByID(ctx, u.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetSQLite_DropsTables(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, ResetSQLite(context.Background(), s.DB()))
	_, err := s.Users().Create(context.Background(), "ana", "h")
	assert.Error(t, err)
}

func TestMigrateSQLite_CanceledContext(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "habits.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = MigrateSQLite(ctx, s.DB())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.Users().Create(context.Background(), "ana", "h")
	assert.Error(t, err, "nothing was applied")
}
