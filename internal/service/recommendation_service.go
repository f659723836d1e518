package service

import (
	"context"
	"time"

	"HabitTracker/internal/cache"
	"HabitTracker/internal/clock"
	dom "HabitTracker/internal/domain"
	"HabitTracker/internal/recommend"
	"HabitTracker/internal/repo"

	"golang.org/x/sync/singleflight"
)

// RecommendationWindowDays is the trailing window, today included, whose
// records feed the completion rate.
const RecommendationWindowDays = 7

type RecommendationService struct {
	store repo.Store
	clock clock.Clock
	cache *cache.ProgressCache
	sf    singleflight.Group
}

// NewRecommendationService creates a RecommendationService. If c is nil, caching is disabled.
func NewRecommendationService(store repo.Store, clk clock.Clock, c *cache.ProgressCache) *RecommendationService {
	return &RecommendationService{store: store, clock: clk, cache: c}
}

func (s *RecommendationService) Recommendations(ctx context.Context, userID int64) ([]dom.Recommendation, error) {
	today := s.clock.Today()
	return readThrough(ctx, s.cache, &s.sf, cache.FamilyRecommendations, userID, today, func() ([]dom.Recommendation, error) {
		return s.build(ctx, userID, today)
	})
}

func (s *RecommendationService) build(ctx context.Context, userID int64, today time.Time) ([]dom.Recommendation, error) {
	habits, err := s.store.Habits().List(ctx, userID)
	if err != nil {
		return nil, internal("list habits", err)
	}
	since := clock.AddDays(today, -(RecommendationWindowDays - 1))
	recent, err := s.store.Completions().ListSince(ctx, userID, since)
	if err != nil {
		return nil, internal("recent completions", err)
	}

	type tally struct{ total, completed int }
	byHabit := make(map[int64]*tally, len(habits))
	for _, c := range recent {
		if c.Day.After(today) {
			continue
		}
		t := byHabit[c.HabitID]
		if t == nil {
			t = &tally{}
			byHabit[c.HabitID] = t
		}
		t.total++
		if c.Completed {
			t.completed++
		}
	}

	rates := make([]recommend.HabitRate, 0, len(habits))
	for _, h := range habits {
		var rate float64
		if t := byHabit[h.ID]; t != nil {
			rate = completionRate(t.completed, t.total)
		}
		rates = append(rates, recommend.HabitRate{Name: h.Name, CompletionRate: rate})
	}
	return recommend.Build(rates), nil
}
