package daemon

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the daemon's Prometheus collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	budget       *prometheus.GaugeVec
	actual       *prometheus.GaugeVec
	netWorth     prometheus.Gauge
	transactions prometheus.Gauge
	polls        prometheus.Counter
	pollErrors   prometheus.Counter
}

// NewMetrics registers all daemon metrics in a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		budget: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cbudget_month_budget",
				Help: "Budgeted amount for the current month.",
			},
			[]string{"kind"},
		),
		actual: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cbudget_month_actual",
				Help: "Actual amount for the current month.",
			},
			[]string{"kind"},
		),
		netWorth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cbudget_net_worth",
			Help: "Sum of all account balances.",
		}),
		transactions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cbudget_transactions",
			Help: "Number of transactions in the ledger.",
		}),
		polls: factory.NewCounter(prometheus.CounterOpts{
			Name: "cbudget_polls_total",
			Help: "Ledger polls performed.",
		}),
		pollErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "cbudget_poll_errors_total",
			Help: "Ledger polls that failed.",
		}),
	}
}

func (m *Metrics) observe(s Snapshot) {
	m.budget.WithLabelValues("income").Set(s.BudgetIncome)
	m.budget.WithLabelValues("expenses").Set(s.BudgetExpenses)
	m.budget.WithLabelValues("net").Set(s.BudgetIncome - s.BudgetExpenses)
	m.actual.WithLabelValues("income").Set(s.ActualIncome)
	m.actual.WithLabelValues("expenses").Set(s.ActualExpenses)
	m.actual.WithLabelValues("net").Set(s.ActualNet)
	m.netWorth.Set(s.NetWorth)
	m.transactions.Set(float64(s.Transactions))
}
