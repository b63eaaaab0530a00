package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/cbudget/internal/cli"
	"github.com/theirongolddev/cbudget/internal/config"
	"github.com/theirongolddev/cbudget/internal/logging"
	"github.com/theirongolddev/cbudget/internal/pipeline"
	"github.com/theirongolddev/cbudget/internal/source"
	"github.com/theirongolddev/cbudget/internal/store"
)

var (
	flagDB       string
	flagFile     string
	flagMonth    int
	flagYear     int
	flagYTD      bool
	flagQuiet    bool
	flagLogLevel string
)

// Set in PersistentPreRunE.
var (
	appCfg  config.Config
	logger  = zap.NewNop()
	nowFunc = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "cbudget",
	Short: "Personal budget reports",
	Long:  "Track accounts, transactions and monthly budgets, and compare what you planned with what you spent.",
	RunE:  runReport,

	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		config.LoadEnv()
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", config.ConfigPath(), err)
		}
		appCfg = cfg

		level := cfg.General.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = flagLogLevel
		}
		logger = logging.New(level)
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = logger.Sync()
	},
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	now := time.Now()

	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite ledger path (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagFile, "file", "", "Use a JSON dataset file instead of the database")
	rootCmd.PersistentFlags().IntVarP(&flagMonth, "month", "m", int(now.Month()), "Report month (1-12)")
	rootCmd.PersistentFlags().IntVarP(&flagYear, "year", "y", now.Year(), "Report year")
	rootCmd.PersistentFlags().BoolVar(&flagYTD, "ytd", false, "Report January through --month")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

// ledger is an open store plus whatever persisting it needs after writes.
type ledger struct {
	store.Store
	desc     string
	flush    func() error
	writable func() error
}

// openLedger opens --file when given, otherwise the SQLite database.
func openLedger() (*ledger, error) {
	if flagFile != "" {
		f, err := source.Open(flagFile)
		if err != nil {
			return nil, err
		}
		return &ledger{Store: f, desc: f.Path(), flush: f.Flush, writable: f.Writable}, nil
	}

	path := flagDB
	if path == "" {
		path = config.GetDBPath(appCfg)
	}
	db, err := store.Open(path, logger)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	noop := func() error { return nil }
	return &ledger{Store: db, desc: path, flush: noop, writable: noop}, nil
}

// commit recomputes running balances and persists the ledger.
func (l *ledger) commit(ctx context.Context) error {
	res, err := pipeline.SyncBalances(ctx, l)
	if err != nil {
		return err
	}
	logger.Debug("balances synced",
		zap.Int("transactions", res.TransactionUpdates),
		zap.Int("accounts", res.AccountUpdates),
		zap.Int("funds", res.FundUpdates))
	return l.flush()
}

// withLedger opens the ledger, runs fn, and closes it.
func withLedger(fn func(ctx context.Context, l *ledger) error) error {
	l, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()
	return fn(context.Background(), l)
}

// mutate runs fn and commits on success. Ledgers that cannot be saved are
// refused before fn runs.
func mutate(fn func(ctx context.Context, l *ledger) error) error {
	return withLedger(func(ctx context.Context, l *ledger) error {
		if err := l.writable(); err != nil {
			return err
		}
		if err := fn(ctx, l); err != nil {
			return err
		}
		return l.commit(ctx)
	})
}

// loadData is the shared read path used by the report commands.
func loadData(ctx context.Context, l *ledger) (*pipeline.LoadResult, error) {
	start := time.Now()
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Loading %s...\n", l.desc)
	}

	result, err := pipeline.Load(ctx, l)
	if err != nil {
		return nil, err
	}

	logger.Debug("ledger loaded",
		zap.String("source", l.desc),
		zap.Int("transactions", len(result.Dataset.Transactions)),
		zap.Duration("elapsed", time.Since(start)))

	if !flagQuiet {
		if result.BadDates > 0 {
			fmt.Fprintln(os.Stderr, cli.RenderWarning(fmt.Sprintf("%d transactions have unreadable dates and were skipped", result.BadDates)))
		}
		if result.UnresolvedRefs > 0 {
			fmt.Fprintln(os.Stderr, cli.RenderWarning(fmt.Sprintf("%d records reference missing categories", result.UnresolvedRefs)))
		}
	}
	return result, nil
}

// period resolves the report month, year and year-to-date flag.
func period(cmd *cobra.Command) (month, year int, ytd bool, err error) {
	if flagMonth < 1 || flagMonth > 12 {
		return 0, 0, false, fmt.Errorf("--month must be between 1 and 12, got %d", flagMonth)
	}
	if flagYear < 1 {
		return 0, 0, false, errors.New("--year must be positive")
	}
	ytd = appCfg.General.DefaultYTD
	if cmd.Flags().Changed("ytd") {
		ytd = flagYTD
	}
	return flagMonth, flagYear, ytd, nil
}

func classifier() *pipeline.Classifier {
	return appCfg.Classification.Classifier()
}
