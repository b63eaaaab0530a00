package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cbudget/internal/cli"
	"github.com/theirongolddev/cbudget/internal/model"
	"github.com/theirongolddev/cbudget/internal/pipeline"
)

var txnFlags struct {
	account  string
	date     string
	desc     string
	category string
	payment  string
	deposit  string
	memo     string
	cleared  bool
	typ      string
	all      bool
}

var txnCmd = &cobra.Command{
	Use:     "txn",
	Aliases: []string{"transaction", "tx"},
	Short:   "Manage transactions",
}

var txnAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	Example: `  cbudget txn add --account Checking --category Rent --payment 1500 --desc "March rent"
  cbudget txn add --account Checking --category Salary --deposit 5000 --date 2025-03-01 --cleared`,
	RunE: runTxnAdd,
}

var txnListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions with running balances",
	RunE:  runTxnList,
}

var txnRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return mutate(func(ctx context.Context, l *ledger) error {
			return l.DeleteTransaction(ctx, args[0])
		})
	},
}

func init() {
	f := txnAddCmd.Flags()
	f.StringVarP(&txnFlags.account, "account", "a", "", "Account name or id")
	f.StringVarP(&txnFlags.date, "date", "d", "", "Date (YYYY-MM-DD, default today)")
	f.StringVar(&txnFlags.desc, "desc", "", "Description")
	f.StringVarP(&txnFlags.category, "category", "c", "", "Category name or id")
	f.StringVar(&txnFlags.payment, "payment", "", "Amount leaving the account")
	f.StringVar(&txnFlags.deposit, "deposit", "", "Amount entering the account")
	f.StringVar(&txnFlags.memo, "memo", "", "Memo")
	f.BoolVar(&txnFlags.cleared, "cleared", false, "Mark as cleared by the bank")
	f.StringVar(&txnFlags.typ, "type", "", "Free-form transaction type")
	_ = txnAddCmd.MarkFlagRequired("account")
	_ = txnAddCmd.MarkFlagRequired("category")

	txnListCmd.Flags().StringVarP(&txnFlags.account, "account", "a", "", "Only this account")
	txnListCmd.Flags().BoolVar(&txnFlags.all, "all", false, "Ignore --month/--year and list everything")

	txnCmd.AddCommand(txnAddCmd, txnListCmd, txnRmCmd)
	rootCmd.AddCommand(txnCmd)
}

func runTxnAdd(_ *cobra.Command, _ []string) error {
	if (txnFlags.payment == "") == (txnFlags.deposit == "") {
		return errors.New("give exactly one of --payment or --deposit")
	}
	t := model.Transaction{
		Description: txnFlags.desc,
		Memo:        txnFlags.memo,
		Cleared:     txnFlags.cleared,
		Type:        txnFlags.typ,
	}

	var err error
	if t.Date, err = parseDateArg(txnFlags.date); err != nil {
		return err
	}
	if txnFlags.payment != "" {
		t.Payment, err = parseMoney(txnFlags.payment)
	} else {
		t.Deposit, err = parseMoney(txnFlags.deposit)
	}
	if err != nil {
		return err
	}

	return mutate(func(ctx context.Context, l *ledger) error {
		accts, err := l.Accounts(ctx)
		if err != nil {
			return err
		}
		if t.Account, err = resolveAccount(accts, txnFlags.account); err != nil {
			return err
		}
		cats, err := l.Categories(ctx)
		if err != nil {
			return err
		}
		if t.Category, err = resolveCategory(cats, txnFlags.category); err != nil {
			return err
		}

		if err := l.SaveTransaction(ctx, &t); err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Printf("  Added transaction %s\n", t.ID)
		}
		return nil
	})
}

func runTxnList(cmd *cobra.Command, _ []string) error {
	month, year, _, err := period(cmd)
	if err != nil {
		return err
	}

	return withLedger(func(ctx context.Context, l *ledger) error {
		result, err := loadData(ctx, l)
		if err != nil {
			return err
		}
		ds := result.Dataset

		txns := pipeline.SortByDate(pipeline.ApplyBalances(ds.Transactions))
		if txnFlags.account != "" {
			id, err := resolveAccount(ds.Accounts, txnFlags.account)
			if err != nil {
				return err
			}
			txns = pipeline.FilterByAccount(txns, id)
		}
		if !txnFlags.all {
			txns = pipeline.FilterByMonth(txns, month, year)
		}
		if len(txns) == 0 {
			fmt.Println("\n  No transactions found.")
			return nil
		}

		cats := pipeline.IndexCategories(ds.Categories)
		acctNames := make(map[string]string, len(ds.Accounts))
		for _, a := range ds.Accounts {
			acctNames[a.ID] = a.Name
		}

		rows := make([][]string, 0, len(txns))
		for _, t := range txns {
			amount := cli.FormatSignedMoney(t.Deposit - t.Payment)
			mark := ""
			if t.Cleared {
				mark = "c"
			}
			acct := acctNames[t.Account]
			if acct == "" {
				acct = t.Account
			}
			rows = append(rows, []string{
				t.ID,
				t.Date,
				acct,
				cats.Name(t.Category),
				truncate(t.Description, 30),
				amount,
				mark,
				cli.FormatMoney(deref(t.Balance)),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"ID", "Date", "Account", "Category", "Description", "Amount", "C", "Balance"},
			Rows:    rows,
		}))
		return nil
	})
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
