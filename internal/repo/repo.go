package repo

import (
	"context"
	"errors"
)

// Storage-agnostic errors. Implementations translate driver errors into these.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with existing row")
)

// Store groups the repositories and the transactional boundary.
// Repositories obtained from the Store passed to fn share fn's transaction.
type Store interface {
	Habits() HabitRepo
	Completions() CompletionRepo
	Users() UserRepo
	WithinTx(ctx context.Context, fn func(tx Store) error) error
	Close() error
}
