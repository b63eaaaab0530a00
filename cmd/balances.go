package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cbudget/internal/cli"
	"github.com/theirongolddev/cbudget/internal/pipeline"
)

var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Show account balances",
	RunE:  runBalances,
}

var balancesSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Recompute and store running balances",
	RunE: func(_ *cobra.Command, _ []string) error {
		return withLedger(func(ctx context.Context, l *ledger) error {
			if err := l.writable(); err != nil {
				return err
			}
			res, err := pipeline.SyncBalances(ctx, l)
			if err != nil {
				return err
			}
			if err := l.flush(); err != nil {
				return err
			}
			if !flagQuiet {
				fmt.Printf("  Updated %d transaction, %d account and %d fund balances\n",
					res.TransactionUpdates, res.AccountUpdates, res.FundUpdates)
			}
			return nil
		})
	},
}

func init() {
	balancesCmd.AddCommand(balancesSyncCmd)
	rootCmd.AddCommand(balancesCmd)
}

// runBalances shows balances recomputed from the ledger, so it is accurate
// even when the stored totals are stale.
func runBalances(_ *cobra.Command, _ []string) error {
	return withLedger(func(ctx context.Context, l *ledger) error {
		result, err := loadData(ctx, l)
		if err != nil {
			return err
		}
		ds := result.Dataset
		if len(ds.Accounts) == 0 {
			fmt.Println("\n  No accounts. Add one with `cbudget account add`.")
			return nil
		}

		totals := pipeline.AccountTotals(ds.Transactions)
		accts := ds.Accounts
		for i := range accts {
			bt := totals[accts[i].ID]
			accts[i].Balance, accts[i].Cleared = bt.Balance, bt.Cleared
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Accounts",
			Headers: []string{"Account", "Type", "Balance", "Cleared", "ID"},
			Rows:    accountRows(accts),
		}))
		return nil
	})
}
