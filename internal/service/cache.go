package service

import (
	"context"
	"fmt"
	"time"

	"HabitTracker/internal/cache"
	"HabitTracker/internal/clock"
	"HabitTracker/internal/logger"

	"golang.org/x/sync/singleflight"
)

// readThrough serves a per-user view from c, building and storing it on a
// miss. Concurrent misses for the same key share one build. Cache failures
// are logged and fall back to build; they never fail the request.
func readThrough[T any](ctx context.Context, c *cache.ProgressCache, sf *singleflight.Group, f cache.Family, userID int64, day time.Time, build func() (T, error)) (T, error) {
	if c == nil {
		return build()
	}
	gen, err := c.Generation(ctx, userID)
	if err != nil {
		logger.Warn("cache generation read failed", "family", f, "user_id", userID, "err", err)
		return build()
	}
	key := fmt.Sprintf("%s:%d:%d:%s", f, userID, gen, clock.Format(day))
	v, err, _ := sf.Do(key, func() (interface{}, error) {
		var cached T
		hit, err := c.Get(ctx, f, userID, gen, day, &cached)
		if err != nil {
			logger.Warn("cache read failed", "family", f, "user_id", userID, "err", err)
		}
		if hit {
			return cached, nil
		}
		fresh, err := build()
		if err != nil {
			return nil, err
		}
		if err := c.Set(ctx, f, userID, gen, day, fresh); err != nil {
			logger.Warn("cache write failed", "family", f, "user_id", userID, "err", err)
		}
		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
