package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cbudget/internal/cli"
	"github.com/theirongolddev/cbudget/internal/client"
	"github.com/theirongolddev/cbudget/internal/model"
	"github.com/theirongolddev/cbudget/internal/pipeline"
)

var flagReportRemote string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Budget vs actual for a month or year-to-date",
	Long: `Budget vs actual for a month or year-to-date.

With --remote the report is fetched from a running "cbudget serve" instead of
the local ledger.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagReportRemote, "remote", "", "Fetch the report from a server at this address")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	month, year, ytd, err := period(cmd)
	if err != nil {
		return err
	}

	if flagReportRemote != "" {
		c := client.New(flagReportRemote)
		r, err := c.Report(cmd.Context(), month, year, ytd)
		if err != nil {
			return err
		}
		logger.Debug("fetched remote report")
		printReport(r.Month, r.Year, r.YearToDate, r.ReportData)
		return nil
	}

	return withLedger(func(ctx context.Context, l *ledger) error {
		result, err := loadData(ctx, l)
		if err != nil {
			return err
		}
		ds := result.Dataset

		if len(ds.Transactions) == 0 && len(ds.BudgetItems) == 0 {
			fmt.Println("\n  The ledger is empty.")
			fmt.Println("  Add transactions with `cbudget txn add` or import a dataset with `cbudget import`.")
			return nil
		}

		r := pipeline.GenerateReportData(month, year, ytd, ds.BudgetItems, ds.Categories, ds.Transactions, classifier())
		printReport(month, year, ytd, r)
		return nil
	})
}

func printReport(month, year int, ytd bool, r model.ReportData) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET REPORT  " + cli.FormatPeriod(month, year, ytd)))
	fmt.Println()

	summary := cli.Table{
		Headers: []string{"", "Budget", "Actual", "Difference"},
		Rows: [][]string{
			{"Income", cli.FormatMoney(r.BudgetSummary.Income), cli.FormatMoney(r.ActualSummary.Income), cli.FormatSignedMoney(r.Difference.Income)},
			{"Expenses", cli.FormatMoney(r.BudgetSummary.Expenses), cli.FormatMoney(r.ActualSummary.Expenses), cli.FormatSignedMoney(r.Difference.Expenses)},
			{"---"},
			{"Net", cli.FormatMoney(r.BudgetSummary.Net), cli.FormatMoney(r.ActualSummary.Net), cli.FormatSignedMoney(r.Difference.Net)},
		},
	}
	fmt.Print(cli.RenderTable(summary))
	fmt.Println()

	rows := pipeline.RankCategories(r.Categories, classifier())
	if len(rows) == 0 {
		return
	}

	var (
		trows   [][]string
		lastKnd = rows[0].Kind
	)
	for _, row := range rows {
		if row.Kind != lastKnd {
			trows = append(trows, []string{"---"})
			lastKnd = row.Kind
		}
		used := "-"
		if row.Kind != pipeline.KindNonBudget {
			used = cli.FormatBudgetUsed(row.Actual, row.Budget)
		}
		trows = append(trows, []string{
			row.Name,
			row.Kind.String(),
			cli.FormatMoney(row.Budget),
			cli.FormatMoney(row.Actual),
			cli.FormatSignedMoney(row.Difference),
			used,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Categories",
		Headers: []string{"Category", "Kind", "Budget", "Actual", "Diff", "Used"},
		Rows:    trows,
	}))
}
