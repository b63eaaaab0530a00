package daemon

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/theirongolddev/cbudget/internal/logging"
	"github.com/theirongolddev/cbudget/internal/model"
	"github.com/theirongolddev/cbudget/internal/pipeline"
)

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/events", s.handleEvents)
		r.Get("/stream", s.handleStream)
		r.Get("/report", s.handleReport)
		r.Get("/yearly", s.handleYearly)
		r.Get("/accounts", s.handleAccounts)
	})

	return r
}

// ReportResponse is served at /v1/report.
type ReportResponse struct {
	Month      int  `json:"month"`
	Year       int  `json:"year"`
	YearToDate bool `json:"yearToDate"`
	model.ReportData
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.events.history())
}

// handleReport serves GET /v1/report?month=M&year=Y&ytd=bool.
func (s *Service) handleReport(w http.ResponseWriter, r *http.Request) {
	now := s.cfg.Now()
	month, err := intParam(r, "month", int(now.Month()), 1, 12)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	year, err := intParam(r, "year", now.Year(), 1, 9999)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ytd := false
	if v := r.URL.Query().Get("ytd"); v != "" {
		ytd, err = strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "ytd: must be a boolean")
			return
		}
	}

	ds, err := s.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	report := pipeline.GenerateReportData(month, year, ytd, ds.BudgetItems, ds.Categories, ds.Transactions, s.cfg.Classifier)
	writeJSON(w, http.StatusOK, ReportResponse{Month: month, Year: year, YearToDate: ytd, ReportData: report})
}

// handleYearly serves GET /v1/yearly?year=Y.
func (s *Service) handleYearly(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year", s.cfg.Now().Year(), 1, 9999)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ds, err := s.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, pipeline.GenerateYearlyReport(year, ds.Transactions, ds.Categories, ds.BudgetItems, s.cfg.Classifier))
}

// handleAccounts serves GET /v1/accounts with balances recomputed from the ledger.
func (s *Service) handleAccounts(w http.ResponseWriter, r *http.Request) {
	ds, err := s.load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	totals := pipeline.AccountTotals(ds.Transactions)
	accounts := make([]model.Account, len(ds.Accounts))
	for i, a := range ds.Accounts {
		bt := totals[a.ID]
		a.Balance, a.Cleared = bt.Balance, bt.Cleared
		accounts[i] = a
	}
	sort.SliceStable(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })

	writeJSON(w, http.StatusOK, accounts)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, leave := s.events.subscribe(16)
	defer leave()

	writeSSE(w, Event{Type: "snapshot", Timestamp: s.cfg.Now(), Snapshot: s.snapshotStatus().Summary})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func intParam(r *http.Request, name string, def, lo, hi int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%s: must be an integer between %d and %d", name, lo, hi)
	}
	return n, nil
}
