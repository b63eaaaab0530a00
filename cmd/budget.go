package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cbudget/internal/cli"
	"github.com/theirongolddev/cbudget/internal/model"
	"github.com/theirongolddev/cbudget/internal/pipeline"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show the planned budget for a month",
	RunE:  runBudget,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <category> <income|expense> <month=amount>...",
	Short: "Create or update the budget for a category",
	Example: `  cbudget budget set Rent expense all=1500
  cbudget budget set Salary income jan=5000 feb=5000 mar=5200`,
	Args: cobra.MinimumNArgs(3),
	RunE: runBudgetSet,
}

var budgetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List budget items",
	RunE:  runBudgetList,
}

var budgetRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a budget item",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return mutate(func(ctx context.Context, l *ledger) error {
			return l.DeleteBudgetItem(ctx, args[0])
		})
	},
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd, budgetListCmd, budgetRmCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(cmd *cobra.Command, _ []string) error {
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

		sum := pipeline.CalculateMonthlyBudget(month, year, ds.BudgetItems)
		names := pipeline.IndexCategories(ds.Categories)
		key := model.MonthKey(month)

		fmt.Println()
		fmt.Println(cli.RenderTitle("BUDGET  " + cli.FormatPeriod(month, year, false)))
		fmt.Println()
		fmt.Println(cli.RenderSummaryLine("Planned income", sum.Income))
		fmt.Println(cli.RenderSummaryLine("Planned expenses", -sum.Expenses))
		fmt.Println(cli.RenderSummaryLine("Planned net", sum.Net))
		fmt.Println()

		var rows [][]string
		for _, b := range ds.BudgetItems {
			if b.Amounts[key] == 0 {
				continue
			}
			rows = append(rows, []string{names.Name(b.Category), string(b.Type), cli.FormatMoney(b.Amounts[key])})
		}
		if len(rows) > 0 {
			fmt.Print(cli.RenderTable(cli.Table{
				Headers: []string{"Category", "Type", "Amount"},
				Rows:    rows,
			}))
		}
		return nil
	})
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	typ := model.BudgetType(strings.ToLower(args[1]))
	if typ != model.BudgetIncome && typ != model.BudgetExpense {
		return fmt.Errorf("budget type must be income or expense, got %q", args[1])
	}
	amounts, err := parseAmounts(args[2:])
	if err != nil {
		return err
	}

	return mutate(func(ctx context.Context, l *ledger) error {
		cats, err := l.Categories(ctx)
		if err != nil {
			return err
		}
		catID, err := resolveCategory(cats, args[0])
		if err != nil {
			return err
		}

		items, err := l.BudgetItems(ctx)
		if err != nil {
			return err
		}

		item := model.BudgetItem{Category: catID, Type: typ, Amounts: map[string]float64{}}
		for _, b := range items {
			if b.Category == catID {
				item = b
				item.Type = typ
				break
			}
		}
		if item.Amounts == nil {
			item.Amounts = map[string]float64{}
		}
		for k, v := range amounts {
			item.Amounts[k] = v
		}

		if err := l.SaveBudgetItem(ctx, &item); err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Printf("  Saved budget %s for %s\n", item.ID, args[0])
		}
		return nil
	})
}

func runBudgetList(_ *cobra.Command, _ []string) error {
	return withLedger(func(ctx context.Context, l *ledger) error {
		result, err := loadData(ctx, l)
		if err != nil {
			return err
		}
		ds := result.Dataset
		names := pipeline.IndexCategories(ds.Categories)

		rows := make([][]string, 0, len(ds.BudgetItems))
		for _, b := range ds.BudgetItems {
			var total float64
			for _, k := range model.MonthKeys {
				total += b.Amounts[k]
			}
			rows = append(rows, []string{b.ID, names.Name(b.Category), string(b.Type), cli.FormatMoney(total), cli.FormatMoney(total / 12)})
		}
		if len(rows) == 0 {
			fmt.Println("\n  No budget items. Add one with `cbudget budget set`.")
			return nil
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"ID", "Category", "Type", "Year", "Avg / month"},
			Rows:    rows,
		}))
		return nil
	})
}
