package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/cbudget/internal/model"
)

// Reader provides every record table of a ledger.
type Reader interface {
	Categories(ctx context.Context) ([]model.Category, error)
	Accounts(ctx context.Context) ([]model.Account, error)
	Transactions(ctx context.Context) ([]model.Transaction, error)
	BudgetItems(ctx context.Context) ([]model.BudgetItem, error)
	SubAccounts(ctx context.Context) ([]model.SubAccount, error)
	SubAccountTransactions(ctx context.Context) ([]model.SubAccountTransaction, error)
}

// BalanceWriter persists derived balances.
type BalanceWriter interface {
	UpdateTransactionBalance(ctx context.Context, id string, balance, cleared float64) error
	UpdateAccountBalance(ctx context.Context, id string, balance, cleared float64) error
	UpdateSubAccountBalance(ctx context.Context, id string, balance float64) error
}

// ReadWriter is a ledger whose derived balances can be written back.
type ReadWriter interface {
	Reader
	BalanceWriter
}

// LoadResult holds a loaded ledger snapshot and data quality counts.
type LoadResult struct {
	Dataset        model.Dataset
	BadDates       int
	UnresolvedRefs int
}

// Load reads all tables concurrently and returns them as one snapshot.
func Load(ctx context.Context, r Reader) (*LoadResult, error) {
	var ds model.Dataset
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		ds.Categories, err = r.Categories(ctx)
		return wrapLoad("categories", err)
	})
	g.Go(func() (err error) {
		ds.Accounts, err = r.Accounts(ctx)
		return wrapLoad("accounts", err)
	})
	g.Go(func() (err error) {
		ds.Transactions, err = r.Transactions(ctx)
		return wrapLoad("transactions", err)
	})
	g.Go(func() (err error) {
		ds.BudgetItems, err = r.BudgetItems(ctx)
		return wrapLoad("budget items", err)
	})
	g.Go(func() (err error) {
		ds.SubAccounts, err = r.SubAccounts(ctx)
		return wrapLoad("sub-accounts", err)
	})
	g.Go(func() (err error) {
		ds.SubAccountTransactions, err = r.SubAccountTransactions(ctx)
		return wrapLoad("sub-account transactions", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &LoadResult{
		Dataset:  ds,
		BadDates: CountBadDates(ds.Transactions),
	}

	names := IndexCategories(ds.Categories)
	for _, t := range ds.Transactions {
		if _, ok := names.Lookup(t.Category); !ok {
			result.UnresolvedRefs++
		}
	}
	for _, b := range ds.BudgetItems {
		if _, ok := names.Lookup(b.Category); !ok {
			result.UnresolvedRefs++
		}
	}

	return result, nil
}

func wrapLoad(table string, err error) error {
	if err != nil {
		return fmt.Errorf("loading %s: %w", table, err)
	}
	return nil
}
