package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"HabitTracker/internal/clock"

	"github.com/redis/go-redis/v9"
)

// Family names a group of cached per-user views.
type Family string

const (
	FamilyProgress        Family = "progress"
	FamilyRecommendations Family = "recs"
)

var families = []Family{FamilyProgress, FamilyRecommendations}

const (
	keyPrefix     = "habits:"
	keyGeneration = keyPrefix + "gen:"
)

// ProgressCache caches per-user progress and recommendations in Redis.
//
// Keys are habits:<family>:<user>:<generation>:<day>. Every write of a user
// bumps the generation, so a fill computed before the write lands under a
// key no reader asks for again. The day keeps a new day from reading
// yesterday's values.
type ProgressCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewProgressCache returns a new ProgressCache.
func NewProgressCache(rdb *redis.Client, ttl time.Duration) *ProgressCache {
	return &ProgressCache{rdb: rdb, ttl: ttl}
}

// Generation returns the user's current cache generation, 0 before the first write.
func (c *ProgressCache) Generation(ctx context.Context, userID int64) (int64, error) {
	n, err := c.rdb.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// Get decodes the cached value into dst. ok is false on a miss.
func (c *ProgressCache) Get(ctx context.Context, f Family, userID, gen int64, day time.Time, dst any) (bool, error) {
	b, err := c.rdb.Get(ctx, entryKey(f, userID, gen, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores v for the user, generation and day.
func (c *ProgressCache) Set(ctx context.Context, f Family, userID, gen int64, day time.Time, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, entryKey(f, userID, gen, day), b, c.ttl).Err()
}

// InvalidateUser bumps the user's generation and deletes the entries it had.
func (c *ProgressCache) InvalidateUser(ctx context.Context, userID int64) error {
	if err := c.rdb.Incr(ctx, generationKey(userID)).Err(); err != nil {
		return err
	}
	for _, f := range families {
		iter := c.rdb.Scan(ctx, 0, userPattern(f, userID), 100).Iterator()
		for iter.Next(ctx) {
			if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
				return err
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}
	return nil
}

func generationKey(userID int64) string {
	return keyGeneration + strconv.FormatInt(userID, 10)
}

func entryKey(f Family, userID, gen int64, day time.Time) string {
	return keyPrefix + string(f) + ":" + strconv.FormatInt(userID, 10) + ":" +
		strconv.FormatInt(gen, 10) + ":" + clock.Format(day)
}

func userPattern(f Family, userID int64) string {
	return keyPrefix + string(f) + ":" + strconv.FormatInt(userID, 10) + ":*"
}
