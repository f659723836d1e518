package app

import (
	"context"
	"fmt"

	"HabitTracker/internal/config"
	"HabitTracker/internal/logger"
	"HabitTracker/internal/repo"
)

// OpenStore connects to the backend selected by STORE_DRIVER.
func OpenStore(ctx context.Context, cfg config.Config) (repo.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		s, err := repo.OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("store opened", "driver", cfg.Store.Driver, "path", cfg.SQLite.Path)
		return s, nil
	case config.DriverPostgres:
		pool, err := repo.OpenPostgres(ctx, cfg.PG.DSN)
		if err != nil {
			return nil, err
		}
		logger.Info("store opened", "driver", cfg.Store.Driver)
		return repo.NewPGStore(pool), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// Migrate applies pending migrations to store.
func Migrate(ctx context.Context, cfg config.Config, store repo.Store) error {
	switch s := store.(type) {
	case *repo.SQLiteStore:
		if err := repo.MigrateSQLite(ctx, s.DB()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	case *repo.PGStore:
		if err := repo.MigratePostgres(ctx, cfg.PG.DSN); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	default:
		return fmt.Errorf("migrate: unsupported store %T", store)
	}
	logger.Info("migrations applied", "driver", cfg.Store.Driver)
	return nil
}

// DropAll rolls back every migration, removing all tables and data.
func DropAll(ctx context.Context, cfg config.Config, store repo.Store) error {
	switch s := store.(type) {
	case *repo.SQLiteStore:
		if err := repo.ResetSQLite(ctx, s.DB()); err != nil {
			return fmt.Errorf("drop: %w", err)
		}
	case *repo.PGStore:
		if err := repo.ResetPostgres(ctx, cfg.PG.DSN); err != nil {
			return fmt.Errorf("drop: %w", err)
		}
	default:
		return fmt.Errorf("drop: unsupported store %T", store)
	}
	logger.Warn("all tables dropped", "driver", cfg.Store.Driver)
	return nil
}
