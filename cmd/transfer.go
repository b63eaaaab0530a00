package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/cbudget/internal/source"
)

var importCmd = &cobra.Command{
	Use:   "import <file|dir>",
	Short: "Import JSON or JSONL datasets into the ledger",
	Long: `Import one dataset file, or every .json/.jsonl file in a directory.
Records whose id already exists are replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the whole ledger as a JSON dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(importCmd, exportCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	paths := []string{args[0]}
	if fi, err := os.Stat(args[0]); err == nil && fi.IsDir() {
		if paths, err = source.ScanDir(args[0]); err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no .json or .jsonl files in %s", args[0])
		}
	}

	return mutate(func(ctx context.Context, l *ledger) error {
		for _, p := range paths {
			ds, pr, err := source.ReadDataset(p)
			if err != nil {
				return err
			}
			if err := l.ImportDataset(ctx, ds); err != nil {
				return fmt.Errorf("importing %s: %w", p, err)
			}

			logger.Info("dataset imported", zap.String("path", p), zap.Int("lines", pr.Lines))
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Imported %s: %d transactions, %d budget items\n",
					p, len(ds.Transactions), len(ds.BudgetItems))
				if pr.ParseErrors > 0 || pr.Skipped > 0 {
					fmt.Fprintf(os.Stderr, "  %d lines could not be parsed, %d skipped\n", pr.ParseErrors, pr.Skipped)
				}
			}
		}
		return nil
	})
}

func runExport(_ *cobra.Command, args []string) error {
	return withLedger(func(ctx context.Context, l *ledger) error {
		result, err := loadData(ctx, l)
		if err != nil {
			return err
		}
		if err := source.WriteDataset(args[0], result.Dataset); err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Wrote %s\n", args[0])
		}
		return nil
	})
}
