package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cbudget/internal/cli"
	"github.com/theirongolddev/cbudget/internal/pipeline"
)

var yearlyCmd = &cobra.Command{
	Use:   "yearly",
	Short: "Twelve-month income and expense trends",
	RunE:  runYearly,
}

func init() {
	rootCmd.AddCommand(yearlyCmd)
}

func runYearly(cmd *cobra.Command, _ []string) error {
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
		y := pipeline.GenerateYearlyReport(year, ds.Transactions, ds.Categories, ds.BudgetItems, classifier())

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("YEARLY TRENDS  %d", year)))
		fmt.Println()

		rows := make([][]string, 0, len(y.MonthlyData)+4)
		nets := make([]float64, 0, len(y.MonthlyData))
		for _, md := range y.MonthlyData {
			rows = append(rows, []string{
				md.MonthName,
				cli.FormatMoney(md.Income),
				cli.FormatMoney(md.Expenses),
				cli.FormatSignedMoney(md.Net),
			})
			nets = append(nets, md.Net)
		}

		ytdAvg := pipeline.YearToDateAverages(y, month)
		rows = append(rows,
			[]string{"---"},
			[]string{"Total", cli.FormatMoney(y.Totals.Income), cli.FormatMoney(y.Totals.Expenses), cli.FormatSignedMoney(y.Totals.Net)},
			[]string{"Avg / month", cli.FormatMoney(y.Averages.Income), cli.FormatMoney(y.Averages.Expenses), cli.FormatSignedMoney(y.Averages.Net)},
			[]string{"Avg YTD", cli.FormatMoney(ytdAvg.Income), cli.FormatMoney(ytdAvg.Expenses), cli.FormatSignedMoney(ytdAvg.Net)},
		)

		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Month", "Income", "Expenses", "Net"},
			Rows:    rows,
		}))
		fmt.Printf("\n  Net by month  %s\n\n", cli.RenderSparkline(nets))

		names := make([]string, 0, len(y.CategoryBreakdown))
		for name, ct := range y.CategoryBreakdown {
			if ct.Total != 0 {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return nil
		}
		sort.Slice(names, func(i, j int) bool {
			a, b := y.CategoryBreakdown[names[i]], y.CategoryBreakdown[names[j]]
			if a.Total != b.Total {
				return a.Total > b.Total
			}
			return names[i] < names[j]
		})

		cls := classifier()
		crows := make([][]string, 0, len(names))
		for _, name := range names {
			ct := y.CategoryBreakdown[name]
			crows = append(crows, []string{name, cls.Kind(name).String(), cli.FormatMoney(ct.Total), cli.FormatMoney(ct.Average)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Categories",
			Headers: []string{"Category", "Kind", "Total", "Avg / month"},
			Rows:    crows,
		}))
		return nil
	})
}
