package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/cbudget/internal/config"
	"github.com/theirongolddev/cbudget/internal/tui/theme"
)

// SetupValues holds the answers collected by the setup form.
type SetupValues struct {
	DBPath     string
	Income     string
	NonBudget  string
	DefaultYTD bool
	Theme      string
}

// NewSetupValues seeds the form from cfg.
func NewSetupValues(cfg config.Config) SetupValues {
	return SetupValues{
		DBPath:     config.GetDBPath(cfg),
		Income:     strings.Join(cfg.Classification.Income, ", "),
		NonBudget:  strings.Join(cfg.Classification.NonBudget, ", "),
		DefaultYTD: cfg.General.DefaultYTD,
		Theme:      cfg.Appearance.Theme,
	}
}

// NewSetupForm builds the first-run form writing into vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := huh.NewOptions(theme.Names()...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to cbudget").
				Description("A few settings and you're done.\nRun `cbudget setup` anytime to change them."),
			huh.NewInput().
				Title("Ledger database").
				Description("SQLite file holding accounts, transactions and budgets.").
				Value(&vals.DBPath),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Income categories").
				Description("Comma separated category names counted as income.").
				Value(&vals.Income).
				Validate(nonEmptyList),
			huh.NewInput().
				Title("Non-budget categories").
				Description("Transfers and opening balances left out of totals.").
				Value(&vals.NonBudget),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Show year-to-date reports by default?").
				Value(&vals.DefaultYTD),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithShowHelp(false)
}

// Apply writes the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	if p := strings.TrimSpace(v.DBPath); p != "" {
		cfg.General.DBPath = p
	}
	cfg.General.DefaultYTD = v.DefaultYTD
	cfg.Classification.Income = config.SplitNames(v.Income)
	cfg.Classification.NonBudget = config.SplitNames(v.NonBudget)
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
}

// SaveSetup applies vals to the stored config and saves it.
func SaveSetup(vals SetupValues) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	vals.Apply(&cfg)
	theme.SetActive(cfg.Appearance.Theme)
	return cfg, config.Save(cfg)
}

var errEmptyIncome = errors.New("list at least one income category")

func nonEmptyList(s string) error {
	if len(config.SplitNames(s)) == 0 {
		return errEmptyIncome
	}
	return nil
}
