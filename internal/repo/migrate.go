package repo

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"HabitTracker/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// goose keeps its dialect and base FS in package state.
var gooseMu sync.Mutex

// MigrateSQLite applies the embedded sqlite migrations to db.
func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	return runGoose(ctx, db, "sqlite3", "sqlite", goose.UpContext)
}

// ResetSQLite rolls every sqlite migration back, dropping all tables.
func ResetSQLite(ctx context.Context, db *sql.DB) error {
	return runGoose(ctx, db, "sqlite3", "sqlite", goose.ResetContext)
}

// MigratePostgres applies the embedded postgres migrations to dsn.
func MigratePostgres(ctx context.Context, dsn string) error {
	return withPostgres(ctx, dsn, goose.UpContext)
}

// ResetPostgres rolls every postgres migration back, dropping all tables.
func ResetPostgres(ctx context.Context, dsn string) error {
	return withPostgres(ctx, dsn, goose.ResetContext)
}

type gooseOp func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error

func withPostgres(ctx context.Context, dsn string, op gooseOp) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()
	return runGoose(ctx, db, "postgres", "postgres", op)
}

func runGoose(ctx context.Context, db *sql.DB, dialect, dir string, op gooseOp) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := op(ctx, db, dir); err != nil {
		return fmt.Errorf("goose %s: %w", dir, err)
	}
	return nil
}
