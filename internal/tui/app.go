// Package tui provides the interactive Bubble Tea dashboard for cbudget.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/cbudget/internal/cli"
	"github.com/theirongolddev/cbudget/internal/config"
	"github.com/theirongolddev/cbudget/internal/model"
	"github.com/theirongolddev/cbudget/internal/pipeline"
	"github.com/theirongolddev/cbudget/internal/tui/components"
	"github.com/theirongolddev/cbudget/internal/tui/theme"
)

// Tab indexes.
const (
	tabMonthly = iota
	tabYearly
	tabAccounts
	tabFunds
)

// DataLoadedMsg is sent when the ledger finishes loading.
type DataLoadedMsg struct {
	Data     model.Dataset
	BadDates int
	LoadTime time.Duration
	Err      error
}

// Options configures a dashboard.
type Options struct {
	Ledger     pipeline.Reader
	Source     string
	Classifier *pipeline.Classifier
	Month      int
	Year       int
	YearToDate bool

	// SkipSetup suppresses the first-run form.
	SkipSetup bool
}

// App is the root Bubble Tea model.
type App struct {
	opts Options

	// Data
	data     model.Dataset
	badDates int
	loaded   bool
	loading  bool
	loadErr  error
	loadTime time.Duration

	// Period
	month int
	year  int
	ytd   bool

	// Pre-computed for the current period
	report   model.ReportData
	rows     []pipeline.CategoryRow
	yearly   model.YearlyReportData
	accounts []model.Account
	funds    []model.SubAccount
	acctTxns map[string][]model.Transaction

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	catScroll  int
	acctCursor int

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	if opts.Classifier == nil {
		opts.Classifier = pipeline.DefaultClassifier()
	}
	now := time.Now()
	if opts.Month < 1 || opts.Month > 12 {
		opts.Month = int(now.Month())
	}
	if opts.Year == 0 {
		opts.Year = now.Year()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		opts:      opts,
		month:     opts.Month,
		year:      opts.Year,
		ytd:       opts.YearToDate,
		needSetup: !opts.SkipSetup && !config.Exists(),
		loading:   true,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.opts.Ledger),
		a.spinner.Tick,
	)
}

// recompute rebuilds every derived view for the current period.
func (a *App) recompute() {
	ds := a.data
	cls := a.opts.Classifier

	a.report = pipeline.GenerateReportData(a.month, a.year, a.ytd, ds.BudgetItems, ds.Categories, ds.Transactions, cls)
	a.rows = pipeline.RankCategories(a.report.Categories, cls)
	a.yearly = pipeline.GenerateYearlyReport(a.year, ds.Transactions, ds.Categories, ds.BudgetItems, cls)

	withBalances := pipeline.SortByDate(pipeline.ApplyBalances(ds.Transactions))
	totals := pipeline.AccountTotals(ds.Transactions)
	a.accounts = make([]model.Account, len(ds.Accounts))
	a.acctTxns = make(map[string][]model.Transaction, len(ds.Accounts))
	for i, acct := range ds.Accounts {
		bt := totals[acct.ID]
		acct.Balance, acct.Cleared = bt.Balance, bt.Cleared
		a.accounts[i] = acct
	}
	for _, t := range withBalances {
		a.acctTxns[t.Account] = append(a.acctTxns[t.Account], t)
	}

	fundBalances := pipeline.SubAccountBalances(ds.SubAccountTransactions)
	a.funds = make([]model.SubAccount, len(ds.SubAccounts))
	for i, f := range ds.SubAccounts {
		f.Balance = fundBalances[f.ID]
		a.funds[i] = f
	}

	a.acctCursor = max(min(a.acctCursor, len(a.accounts)-1), 0)
	a.catScroll = 0
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scroll(-1)
		case tea.MouseButtonWheelDown:
			a.scroll(1)
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup form intercepts all keys
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		return a.handleKey(key)

	case DataLoadedMsg:
		a.loading = false
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.data = msg.Data
			a.badDates = msg.BadDates
		}
		a.recompute()

		if a.needSetup {
			a.needSetup = false
			cfg, err := config.Load()
			if err != nil {
				cfg = config.DefaultConfig()
			}
			vals := NewSetupValues(cfg)
			a.setupVals = &vals
			a.setupForm = NewSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		if !a.loading {
			a.loading = true
			return a, tea.Batch(loadDataCmd(a.opts.Ledger), a.spinner.Tick)
		}
		return a, nil

	case "left", "h":
		a.shiftMonth(-1)
	case "right", "l":
		a.shiftMonth(1)
	case "[":
		a.year--
		a.recompute()
	case "]":
		a.year++
		a.recompute()
	case "t":
		a.ytd = !a.ytd
		a.recompute()

	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)

	case "j", "down":
		a.scroll(1)
	case "k", "up":
		a.scroll(-1)

	default:
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

// shiftMonth moves the report month by delta, carrying into the year.
func (a *App) shiftMonth(delta int) {
	m := a.month - 1 + delta
	a.year += floorDiv(m, 12)
	a.month = m - floorDiv(m, 12)*12 + 1
	a.recompute()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func (a *App) scroll(delta int) {
	switch a.activeTab {
	case tabMonthly:
		a.catScroll = max(min(a.catScroll+delta, len(a.rows)-1), 0)
	case tabAccounts:
		a.acctCursor = max(min(a.acctCursor+delta, len(a.accounts)-1), 0)
	}
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if cfg, err := SaveSetup(*a.setupVals); err == nil {
			a.opts.Classifier = cfg.Classification.Classifier()
		}
		a.setupForm = nil
		a.recompute()
		return a, nil
	case huh.StateAborted:
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int { return min(a.width, maxContentWidth) }

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  cbudget needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return fitHeight(msg, max(a.height, 5))
}

func (a App) viewLoading() string {
	t := theme.Active
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := logoStyle.Render("◈ cbudget") + mutedStyle.Render(" · Budget Reports") + "\n\n" +
		a.spinner.View() + mutedStyle.Render(" Loading "+a.opts.Source)
	return a.overlay(body, 2, 4)
}

type keyHelp struct{ keys, desc string }

var helpSections = []struct {
	name     string
	bindings []keyHelp
}{
	{"Period", []keyHelp{
		{"← →", "Previous / next month"},
		{"[ ]", "Previous / next year"},
		{"t", "Toggle year-to-date"},
	}},
	{"Navigation", []keyHelp{
		{"m y a f", "Jump to tab"},
		{"Tab", "Next tab"},
		{"j k", "Scroll / select"},
	}},
	{"Actions", []keyHelp{
		{"r", "Reload ledger"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}},
}

func (a App) viewHelp() string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	lines := []string{titleStyle.Render("◈ Keyboard Shortcuts")}
	for _, sec := range helpSections {
		lines = append(lines, "", sectionStyle.Render(sec.name))
		for _, kb := range sec.bindings {
			lines = append(lines, "  "+keyStyle.Render(fmt.Sprintf("%-10s", kb.keys))+"  "+descStyle.Render(kb.desc))
		}
	}
	lines = append(lines, "", dimStyle.Render("Press any key to close"))

	return a.overlay(strings.Join(lines, "\n"), 1, 3)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + period pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	periodStr := pillStyle.Render(" ") + accentStyle.Render(cli.FormatPeriod(a.month, a.year, a.ytd))
	if a.ytd {
		periodStr += pillStyle.Render(" │ ") + accentStyle.Render("YTD")
	}
	periodStr += pillStyle.Render("  ←/→ month  [/] year  t ytd")

	rowStyle := lipgloss.NewStyle().Background(t.Surface).Width(w)
	header := components.RenderTabBar(a.activeTab, w) + "\n" + rowStyle.Render(periodStr)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, components.StatusInfo{
		Source:   a.opts.Source,
		DataAge:  fmt.Sprintf("%.1fs", a.loadTime.Seconds()),
		BadDates: a.badDates,
		Loading:  a.loading,
	})

	// 3. Content height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	contentH = max(contentH, minContentHeight)

	// 4. Tab content
	var content string
	switch {
	case a.loadErr != nil:
		content = components.ContentCard("Error",
			lipgloss.NewStyle().Foreground(t.Negative).Background(t.Surface).Render(a.loadErr.Error()), cw)
	case a.activeTab == tabMonthly:
		content = a.renderMonthlyTab(cw, contentH)
	case a.activeTab == tabYearly:
		content = a.renderYearlyTab(cw)
	case a.activeTab == tabAccounts:
		content = a.renderAccountsTab(cw, contentH)
	case a.activeTab == tabFunds:
		content = a.renderFundsTab(cw)
	}

	content = fillWidth(fitHeight(content, contentH), cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// loadDataCmd loads the ledger in the background.
func loadDataCmd(r pipeline.Reader) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		if r == nil {
			return DataLoadedMsg{LoadTime: time.Since(start)}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := pipeline.Load(ctx, r)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		return DataLoadedMsg{
			Data:     result.Dataset,
			BadDates: result.BadDates,
			LoadTime: time.Since(start),
		}
	}
}

// tabAtX maps a click column on the tab bar to a tab, or -1.
// Hitboxes use the same widths as RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// One-column separator between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
