package cache

import (
	"context"
	"testing"
	"time"

	dom "HabitTracker/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func newTestCache(t *testing.T) (*ProgressCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewProgressCache(rdb, time.Minute), mr
}

func TestProgressCache_MissThenHit(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	var got []dom.HabitProgress
	ok, err := c.Get(ctx, FamilyProgress, 7, 0, day, &got)
	require.NoError(t, err)
	assert.False(t, ok)

	last := day
	want := []dom.HabitProgress{{
		HabitID:        3,
		HabitName:      "Reading",
		Frequency:      dom.FrequencyDaily,
		Target:         1.5,
		TotalDays:      3,
		CompletedDays:  2,
		CompletionRate: 67,
		CurrentStreak:  2,
		RecentProgress: []dom.Completion{
			{ID: 9, UserID: 7, HabitID: 3, Day: last, Completed: true, Notes: "done", CreatedAt: last, UpdatedAt: last},
		},
	}}
	require.NoError(t, c.Set(ctx, FamilyProgress, 7, 0, day, want))
	assert.True(t, mr.Exists("habits:progress:7:0:2026-03-02"))
	assert.Equal(t, time.Minute, mr.TTL("habits:progress:7:0:2026-03-02"))

	ok, err = c.Get(ctx, FamilyProgress, 7, 0, day, &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, want[0].HabitName, got[0].HabitName)
	assert.Equal(t, want[0].CompletionRate, got[0].CompletionRate)
	require.Len(t, got[0].RecentProgress, 1)
	assert.True(t, got[0].RecentProgress[0].Day.Equal(last))

	// Another day or family is a different entry.
	ok, err = c.Get(ctx, FamilyProgress, 7, 0, day.AddDate(0, 0, 1), &got)
	require.NoError(t, err)
	assert.False(t, ok)
	var recs []dom.Recommendation
	ok, err = c.Get(ctx, FamilyRecommendations, 7, 0, day, &recs)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProgressCache_InvalidateUser(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	recs := []dom.Recommendation{{Type: "general", Title: "Start Small", Priority: dom.PriorityHigh}}
	for _, uid := range []int64{1, 11, 21} {
		require.NoError(t, c.Set(ctx, FamilyProgress, uid, 1, day, []dom.HabitProgress{}))
		require.NoError(t, c.Set(ctx, FamilyRecommendations, uid, 1, day, recs))
	}

	gen, err := c.Generation(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	require.NoError(t, c.InvalidateUser(ctx, 1))

	gen, err = c.Generation(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	assert.False(t, mr.Exists("habits:progress:1:1:2026-03-02"))
	assert.False(t, mr.Exists("habits:recs:1:1:2026-03-02"))
	for _, uid := range []string{"11", "21"} {
		assert.True(t, mr.Exists("habits:progress:"+uid+":1:2026-03-02"), uid)
		assert.True(t, mr.Exists("habits:recs:"+uid+":1:2026-03-02"), uid)
	}

	other, err := c.Generation(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(0), other)
}

func TestProgressCache_StaleFillIsNeverRead(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	before, err := c.Generation(ctx, 5)
	require.NoError(t, err)

	// A write lands while a fill is computing its snapshot.
	require.NoError(t, c.InvalidateUser(ctx, 5))
	require.NoError(t, c.Set(ctx, FamilyProgress, 5, before, day, []dom.HabitProgress{{HabitID: 1, CurrentStreak: 0}}))

	now, err := c.Generation(ctx, 5)
	require.NoError(t, err)
	require.NotEqual(t, before, now)

	var got []dom.HabitProgress
	ok, err := c.Get(ctx, FamilyProgress, 5, now, day, &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProgressCache_RedisDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = rdb.Close() })
	c := NewProgressCache(rdb, time.Minute)
	ctx := context.Background()

	_, err := c.Generation(ctx, 1)
	assert.Error(t, err)
	assert.Error(t, c.Set(ctx, FamilyProgress, 1, 0, day, []dom.HabitProgress{}))
	assert.Error(t, c.InvalidateUser(ctx, 1))
}
