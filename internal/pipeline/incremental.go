package pipeline

import (
	"context"
	"fmt"
)

// SyncResult extends LoadResult with the number of balances written back.
type SyncResult struct {
	LoadResult
	TransactionUpdates int
	AccountUpdates     int
	FundUpdates        int
}

// Writes returns the total number of balance writes.
func (r *SyncResult) Writes() int {
	return r.TransactionUpdates + r.AccountUpdates + r.FundUpdates
}

// SyncBalances loads the ledger, projects running balances, and writes back
// only the transaction, account and fund balances that changed.
func SyncBalances(ctx context.Context, rw ReadWriter) (*SyncResult, error) {
	loaded, err := Load(ctx, rw)
	if err != nil {
		return nil, err
	}
	result := &SyncResult{LoadResult: *loaded}
	ds := loaded.Dataset

	n, err := ProjectBalances(ds.Transactions, func(id string, balance, cleared float64) error {
		return rw.UpdateTransactionBalance(ctx, id, balance, cleared)
	})
	result.TransactionUpdates = n
	if err != nil {
		return result, err
	}

	totals := AccountTotals(ds.Transactions)
	for _, a := range ds.Accounts {
		bt := totals[a.ID]
		if a.Balance == bt.Balance && a.Cleared == bt.Cleared {
			continue
		}
		if err := rw.UpdateAccountBalance(ctx, a.ID, bt.Balance, bt.Cleared); err != nil {
			return result, fmt.Errorf("updating account %s: %w", a.ID, err)
		}
		result.AccountUpdates++
	}

	funds := SubAccountBalances(ds.SubAccountTransactions)
	for _, sa := range ds.SubAccounts {
		bal := funds[sa.ID]
		if sa.Balance == bal {
			continue
		}
		if err := rw.UpdateSubAccountBalance(ctx, sa.ID, bal); err != nil {
			return result, fmt.Errorf("updating fund %s: %w", sa.ID, err)
		}
		result.FundUpdates++
	}

	return result, nil
}
