// Package store persists ledgers in SQLite or in memory.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/theirongolddev/cbudget/internal/model"
	"github.com/theirongolddev/cbudget/internal/pipeline"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("not found")

// NotFound wraps ErrNotFound with the record kind and id.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// Store is a ledger with record CRUD and balance write-back.
type Store interface {
	pipeline.ReadWriter

	SaveCategory(ctx context.Context, c *model.Category) error
	DeleteCategory(ctx context.Context, id string) error
	SaveAccount(ctx context.Context, a *model.Account) error
	DeleteAccount(ctx context.Context, id string) error
	SaveTransaction(ctx context.Context, t *model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	SaveBudgetItem(ctx context.Context, b *model.BudgetItem) error
	DeleteBudgetItem(ctx context.Context, id string) error
	SaveSubAccount(ctx context.Context, s *model.SubAccount) error
	DeleteSubAccount(ctx context.Context, id string) error
	SaveSubAccountTransaction(ctx context.Context, t *model.SubAccountTransaction) error
	DeleteSubAccountTransaction(ctx context.Context, id string) error

	ImportDataset(ctx context.Context, ds model.Dataset) error
	Close() error
}

// ensureID assigns a fresh id to records saved without one.
func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*Memory)(nil)
)
