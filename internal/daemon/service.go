// Package daemon serves budget reports over HTTP and streams ledger changes.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/cbudget/internal/model"
	"github.com/theirongolddev/cbudget/internal/pipeline"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Source       string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	Classifier   *pipeline.Classifier
	Now          func() time.Time
}

// Snapshot is the current month's budget position.
type Snapshot struct {
	At             time.Time `json:"at"`
	Month          int       `json:"month"`
	Year           int       `json:"year"`
	BudgetIncome   float64   `json:"budget_income"`
	BudgetExpenses float64   `json:"budget_expenses"`
	ActualIncome   float64   `json:"actual_income"`
	ActualExpenses float64   `json:"actual_expenses"`
	ActualNet      float64   `json:"actual_net"`
	NetWorth       float64   `json:"net_worth"`
	Transactions   int       `json:"transactions"`
	BadDates       int       `json:"bad_dates"`
}

// Delta captures snapshot changes between polls.
type Delta struct {
	Transactions   int     `json:"transactions"`
	ActualIncome   float64 `json:"actual_income"`
	ActualExpenses float64 `json:"actual_expenses"`
	ActualNet      float64 `json:"actual_net"`
	NetWorth       float64 `json:"net_worth"`
	BudgetChanged  bool    `json:"budget_changed"`
}

func (d Delta) isZero() bool {
	return d.Transactions == 0 &&
		d.ActualIncome == 0 &&
		d.ActualExpenses == 0 &&
		d.ActualNet == 0 &&
		d.NetWorth == 0 &&
		!d.BudgetChanged
}

// Event is emitted whenever the snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Source          string    `json:"source"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg     Config
	ledger  pipeline.Reader
	log     *zap.Logger
	metrics *Metrics

	events *hub

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
}

// New returns a daemon serving reports from ledger.
func New(cfg Config, ledger pipeline.Reader, log *zap.Logger) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 10 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.Classifier == nil {
		cfg.Classifier = pipeline.DefaultClassifier()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		cfg:       cfg,
		ledger:    ledger,
		log:       log,
		metrics:   NewMetrics(),
		events:    newHub(cfg.EventsBuffer),
		startedAt: cfg.Now(),
	}
}

// Run serves HTTP and polls the ledger until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("daemon listening", zap.String("addr", s.cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("daemon http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		// Seed initial snapshot so status is useful immediately.
		s.pollOnce(ctx)

		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				s.pollOnce(ctx)
			}
		}
	})

	return g.Wait()
}

// pollOnce reloads the ledger and emits an event when this month's
// position moved. The first successful poll always emits a snapshot.
func (s *Service) pollOnce(ctx context.Context) {
	now := s.cfg.Now()
	s.metrics.polls.Inc()

	loaded, err := pipeline.Load(ctx, s.ledger)
	var snap Snapshot
	if err == nil {
		snap = s.buildSnapshot(loaded, now)
	}

	s.mu.Lock()
	s.lastPollAt = now
	s.pollCount++
	if err != nil {
		s.lastError = err.Error()
		s.mu.Unlock()
		s.metrics.pollErrors.Inc()
		s.log.Warn("poll failed", zap.Error(err))
		return
	}
	prev, seen := s.snapshot, s.hasSnapshot
	s.snapshot, s.hasSnapshot = snap, true
	s.lastError = ""
	s.mu.Unlock()

	s.metrics.observe(snap)

	typ, delta := "snapshot", Delta{}
	if seen {
		typ, delta = "report_delta", diffSnapshots(prev, snap)
		if delta.isZero() {
			return
		}
	}
	ev := s.events.emit(typ, now, snap, delta)
	s.log.Debug("snapshot changed", zap.String("type", ev.Type), zap.Int64("id", ev.ID))
}

func (s *Service) buildSnapshot(loaded *pipeline.LoadResult, now time.Time) Snapshot {
	ds := loaded.Dataset
	month, year := int(now.Month()), now.Year()

	r := pipeline.GenerateReportData(month, year, false, ds.BudgetItems, ds.Categories, ds.Transactions, s.cfg.Classifier)

	var netWorth float64
	for _, bt := range pipeline.AccountTotals(ds.Transactions) {
		netWorth += bt.Balance
	}

	return Snapshot{
		At:             now,
		Month:          month,
		Year:           year,
		BudgetIncome:   r.BudgetSummary.Income,
		BudgetExpenses: r.BudgetSummary.Expenses,
		ActualIncome:   r.ActualSummary.Income,
		ActualExpenses: r.ActualSummary.Expenses,
		ActualNet:      r.ActualSummary.Net,
		NetWorth:       netWorth,
		Transactions:   len(ds.Transactions),
		BadDates:       loaded.BadDates,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Transactions:   curr.Transactions - prev.Transactions,
		ActualIncome:   curr.ActualIncome - prev.ActualIncome,
		ActualExpenses: curr.ActualExpenses - prev.ActualExpenses,
		ActualNet:      curr.ActualNet - prev.ActualNet,
		NetWorth:       curr.NetWorth - prev.NetWorth,
		BudgetChanged: curr.BudgetIncome != prev.BudgetIncome ||
			curr.BudgetExpenses != prev.BudgetExpenses ||
			curr.Month != prev.Month,
	}
}

func (s *Service) snapshotStatus() Status {
	events, subs := s.events.counts()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		Source:          s.cfg.Source,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      events,
		SubscriberCount: subs,
	}
}

func (s *Service) load(ctx context.Context) (model.Dataset, error) {
	loaded, err := pipeline.Load(ctx, s.ledger)
	if err != nil {
		return model.Dataset{}, err
	}
	return loaded.Dataset, nil
}
