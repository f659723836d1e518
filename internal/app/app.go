package app

import (
	"context"
	"fmt"
	"time"

	"HabitTracker/internal/clock"
	"HabitTracker/internal/config"
	"HabitTracker/internal/handlers"
	"HabitTracker/internal/metrics"
	"HabitTracker/internal/repo"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg    config.Config
	store  repo.Store
	redis  *redis.Client
	router *gin.Engine
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{cfg: cfg}

	loc, err := cfg.App.Location()
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.store = store

	if err := Migrate(ctx, cfg, store); err != nil {
		_ = a.store.Close()
		return nil, err
	}

	rdb, err := newRedis(cfg.Redis)
	if err != nil {
		_ = a.store.Close()
		return nil, err
	}
	a.redis = rdb

	a.router = newRouter(cfg, a.store, a.redis, clock.System{Loc: loc})
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close() error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func newRouter(cfg config.Config, store repo.Store, rdb *redis.Client, clk clock.Clock) *gin.Engine {
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger())
	if cfg.Metrics.Enabled {
		r.Use(metrics.Middleware())
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "Cookie", handlers.RequestIDKey},
		ExposeHeaders: []string{"Content-Length", "Content-Type", handlers.RequestIDKey},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, store, rdb, clk)
	return r
}
