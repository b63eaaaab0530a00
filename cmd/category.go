package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cbudget/internal/cli"
	"github.com/theirongolddev/cbudget/internal/model"
)

var flagCategoryType string

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Long: `Add a category. Whether it counts as income, expense or non-budget
is decided by its name and the [classification] lists in the config.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		typ, err := parseCategoryType(flagCategoryType)
		if err != nil {
			return err
		}
		return mutate(func(ctx context.Context, l *ledger) error {
			c := model.Category{Name: args[0], Type: typ}
			if err := l.SaveCategory(ctx, &c); err != nil {
				return err
			}
			if !flagQuiet {
				fmt.Printf("  Added category %s (%s, %s)\n", c.Name, c.ID, classifier().Kind(c.Name))
			}
			return nil
		})
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories and how they are classified",
	RunE: func(_ *cobra.Command, _ []string) error {
		return withLedger(func(ctx context.Context, l *ledger) error {
			cats, err := l.Categories(ctx)
			if err != nil {
				return err
			}
			if len(cats) == 0 {
				fmt.Println("\n  No categories. Add one with `cbudget category add`.")
				return nil
			}
			cls := classifier()
			rows := make([][]string, 0, len(cats))
			for _, c := range cats {
				rows = append(rows, []string{c.Name, string(c.Type), cls.Kind(c.Name).String(), c.ID})
			}
			fmt.Print(cli.RenderTable(cli.Table{
				Headers: []string{"Name", "Type", "Kind", "ID"},
				Rows:    rows,
			}))
			return nil
		})
	},
}

var categoryRmCmd = &cobra.Command{
	Use:   "rm <name|id>",
	Short: "Delete a category (references fall back to its id)",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return mutate(func(ctx context.Context, l *ledger) error {
			cats, err := l.Categories(ctx)
			if err != nil {
				return err
			}
			id, err := resolveCategory(cats, args[0])
			if err != nil {
				return err
			}
			return l.DeleteCategory(ctx, id)
		})
	},
}

func init() {
	categoryAddCmd.Flags().StringVarP(&flagCategoryType, "type", "t", string(model.CategoryVariable),
		"Fixed, Seasonal, Goal or Variable")
	categoryCmd.AddCommand(categoryAddCmd, categoryListCmd, categoryRmCmd)
	rootCmd.AddCommand(categoryCmd)
}

func parseCategoryType(s string) (model.CategoryType, error) {
	for _, t := range []model.CategoryType{model.CategoryFixed, model.CategorySeasonal, model.CategoryGoal, model.CategoryVariable} {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown category type %q", s)
}
