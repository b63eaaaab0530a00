package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cbudget/internal/cli"
	"github.com/theirongolddev/cbudget/internal/model"
	"github.com/theirongolddev/cbudget/internal/pipeline"
)

var fundFlags struct {
	target string
	date   string
	desc   string
	memo   string
}

var fundCmd = &cobra.Command{
	Use:   "fund",
	Short: "Manage savings funds carved out of accounts",
}

var fundAddCmd = &cobra.Command{
	Use:   "add <name> <account>",
	Short: "Add a fund inside an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		var target float64
		if fundFlags.target != "" {
			var err error
			if target, err = parseMoney(fundFlags.target); err != nil {
				return err
			}
		}
		return mutate(func(ctx context.Context, l *ledger) error {
			accts, err := l.Accounts(ctx)
			if err != nil {
				return err
			}
			acct, err := resolveAccount(accts, args[1])
			if err != nil {
				return err
			}
			f := model.SubAccount{Name: args[0], Account: acct, Target: target}
			if err := l.SaveSubAccount(ctx, &f); err != nil {
				return err
			}
			if !flagQuiet {
				fmt.Printf("  Added fund %s (%s)\n", f.Name, f.ID)
			}
			return nil
		})
	},
}

var fundListCmd = &cobra.Command{
	Use:   "list",
	Short: "List funds and their progress",
	RunE: func(_ *cobra.Command, _ []string) error {
		return withLedger(func(ctx context.Context, l *ledger) error {
			result, err := loadData(ctx, l)
			if err != nil {
				return err
			}
			ds := result.Dataset
			if len(ds.SubAccounts) == 0 {
				fmt.Println("\n  No funds. Add one with `cbudget fund add`.")
				return nil
			}
			acctNames := make(map[string]string, len(ds.Accounts))
			for _, a := range ds.Accounts {
				acctNames[a.ID] = a.Name
			}

			balances := pipeline.SubAccountBalances(ds.SubAccountTransactions)
			rows := make([][]string, 0, len(ds.SubAccounts))
			for _, f := range ds.SubAccounts {
				f.Balance = balances[f.ID]
				target, progress := "-", ""
				if f.Target > 0 {
					target = cli.FormatMoney(f.Target)
					progress = cli.RenderBudgetBar(f.Balance, f.Target, 12) + " " + cli.FormatBudgetUsed(f.Balance, f.Target)
				}
				rows = append(rows, []string{f.Name, acctNames[f.Account], cli.FormatMoney(f.Balance), target, progress, f.ID})
			}
			fmt.Print(cli.RenderTable(cli.Table{
				Headers: []string{"Fund", "Account", "Balance", "Target", "Progress", "ID"},
				Rows:    rows,
			}))
			return nil
		})
	},
}

var fundDepositCmd = &cobra.Command{
	Use:   "deposit <fund> <amount>",
	Short: "Move money into a fund",
	Args:  cobra.ExactArgs(2),
	RunE:  func(_ *cobra.Command, args []string) error { return fundMove(args, false) },
}

var fundWithdrawCmd = &cobra.Command{
	Use:   "withdraw <fund> <amount>",
	Short: "Move money out of a fund",
	Args:  cobra.ExactArgs(2),
	RunE:  func(_ *cobra.Command, args []string) error { return fundMove(args, true) },
}

var fundRmCmd = &cobra.Command{
	Use:   "rm <fund>",
	Short: "Delete a fund",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return mutate(func(ctx context.Context, l *ledger) error {
			funds, err := l.SubAccounts(ctx)
			if err != nil {
				return err
			}
			id, err := resolveFund(funds, args[0])
			if err != nil {
				return err
			}
			return l.DeleteSubAccount(ctx, id)
		})
	},
}

func init() {
	fundAddCmd.Flags().StringVar(&fundFlags.target, "target", "", "Savings goal")
	for _, c := range []*cobra.Command{fundDepositCmd, fundWithdrawCmd} {
		c.Flags().StringVarP(&fundFlags.date, "date", "d", "", "Date (YYYY-MM-DD, default today)")
		c.Flags().StringVar(&fundFlags.desc, "desc", "", "Description")
		c.Flags().StringVar(&fundFlags.memo, "memo", "", "Memo")
	}
	fundCmd.AddCommand(fundAddCmd, fundListCmd, fundDepositCmd, fundWithdrawCmd, fundRmCmd)
	rootCmd.AddCommand(fundCmd)
}

func fundMove(args []string, withdraw bool) error {
	amount, err := parseMoney(args[1])
	if err != nil {
		return err
	}
	date, err := parseDateArg(fundFlags.date)
	if err != nil {
		return err
	}

	return mutate(func(ctx context.Context, l *ledger) error {
		funds, err := l.SubAccounts(ctx)
		if err != nil {
			return err
		}
		id, err := resolveFund(funds, args[0])
		if err != nil {
			return err
		}
		t := model.SubAccountTransaction{SubAccount: id, Date: date, Description: fundFlags.desc, Memo: fundFlags.memo}
		if withdraw {
			t.Payment = amount
		} else {
			t.Deposit = amount
		}
		return l.SaveSubAccountTransaction(ctx, &t)
	})
}
