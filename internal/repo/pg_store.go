package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"HabitTracker/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// rowScanner is a single row from either driver.
type rowScanner interface {
	Scan(dest ...any) error
}

// PGStore implements Store on a pgx pool.
type PGStore struct {
	pool *pgxpool.Pool
	q    pgQuerier
	inTx bool
}

// NewPGStore wraps an open pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool, q: pool}
}

// OpenPostgres connects and pings a pool for dsn.
func OpenPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}
	return pool, nil
}

func (s *PGStore) Habits() HabitRepo           { return &PGHabitRepo{db: s.q} }
func (s *PGStore) Completions() CompletionRepo { return &PGCompletionRepo{db: s.q} }
func (s *PGStore) Users() UserRepo             { return &PGUserRepo{db: s.q} }

// WithinTx runs fn in a transaction; nested calls join the outer one.
func (s *PGStore) WithinTx(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&PGStore{pool: s.pool, q: tx, inTx: true})
	})
}

func (s *PGStore) Close() error {
	if s.pool != nil && !s.inTx {
		s.pool.Close()
	}
	return nil
}

func mapPGErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case utils.IsPGUniqueViolation(err):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
