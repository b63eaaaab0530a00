// Package cmd implements the cbudget CLI commands.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cbudget/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Ledger:        %s\n", config.GetDBPath(cfg))
	fmt.Printf("    Default YTD:   %v\n", cfg.General.DefaultYTD)
	fmt.Printf("    Log level:     %s\n", cfg.General.LogLevel)
	fmt.Println()

	fmt.Println("  [Classification]")
	fmt.Printf("    Income:        %s\n", joinNames(cfg.Classification.Income))
	fmt.Printf("    Non-budget:    %s\n", joinNames(cfg.Classification.NonBudget))
	fmt.Println("    Everything else counts as an expense.")
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:       %s\n", cfg.Server.Addr)
	fmt.Printf("    Poll interval: %ds\n", cfg.Server.IntervalSec)
	fmt.Printf("    Events kept:   %d\n", cfg.Server.EventsBuffer)
	fmt.Println()

	fmt.Println("  Run `cbudget setup` to reconfigure.")
	return nil
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
