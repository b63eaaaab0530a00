package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cbudget/internal/cli"
	"github.com/theirongolddev/cbudget/internal/model"
)

var flagAccountType string

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts",
}

var accountAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		typ, err := parseAccountType(flagAccountType)
		if err != nil {
			return err
		}
		return mutate(func(ctx context.Context, l *ledger) error {
			a := model.Account{Name: args[0], Type: typ}
			if err := l.SaveAccount(ctx, &a); err != nil {
				return err
			}
			if !flagQuiet {
				fmt.Printf("  Added account %s (%s)\n", a.Name, a.ID)
			}
			return nil
		})
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE:  runBalances,
}

var accountRmCmd = &cobra.Command{
	Use:   "rm <name|id>",
	Short: "Delete an account (its transactions are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return mutate(func(ctx context.Context, l *ledger) error {
			accts, err := l.Accounts(ctx)
			if err != nil {
				return err
			}
			id, err := resolveAccount(accts, args[0])
			if err != nil {
				return err
			}
			return l.DeleteAccount(ctx, id)
		})
	},
}

func init() {
	accountAddCmd.Flags().StringVarP(&flagAccountType, "type", "t", string(model.AccountChecking),
		"checking, savings, credit, cash or investment")
	accountCmd.AddCommand(accountAddCmd, accountListCmd, accountRmCmd)
	rootCmd.AddCommand(accountCmd)
}

func parseAccountType(s string) (model.AccountType, error) {
	t := model.AccountType(strings.ToLower(s))
	switch t {
	case model.AccountChecking, model.AccountSavings, model.AccountCredit, model.AccountCash, model.AccountInvestment:
		return t, nil
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

func accountRows(accts []model.Account) [][]string {
	rows := make([][]string, 0, len(accts)+2)
	var bal, cleared float64
	for _, a := range accts {
		rows = append(rows, []string{a.Name, string(a.Type), cli.FormatMoney(a.Balance), cli.FormatMoney(a.Cleared), a.ID})
		bal += a.Balance
		cleared += a.Cleared
	}
	rows = append(rows, []string{"---"}, []string{"Net worth", "", cli.FormatMoney(bal), cli.FormatMoney(cleared), ""})
	return rows
}
