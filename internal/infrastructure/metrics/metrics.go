package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kaditech/saccoledger/internal/domain"
)

// Metrics holds all Prometheus metrics for the engine.
type Metrics struct {
	// Transaction metrics
	TransactionsProcessed *prometheus.CounterVec
	TransactionsReversed  prometheus.Counter
	TransactionErrors     *prometheus.CounterVec
	TransactionAmount     prometheus.Histogram
	ProcessDuration       prometheus.Histogram

	// Ledger metrics
	LedgerEntriesPosted prometheus.Counter
	LedgerImbalances    prometheus.Counter

	// Concurrency metrics
	LockTimeouts prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saccoledger_transactions_processed_total",
				Help: "Total number of completed transactions by type",
			},
			[]string{"type"},
		),
		TransactionsReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "saccoledger_transactions_reversed_total",
			Help: "Total number of reversal transactions",
		}),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "saccoledger_transaction_errors_total",
				Help: "Total number of transaction errors by type and cause",
			},
			[]string{"type", "error_type"},
		),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "saccoledger_transaction_amount",
			Help:    "Transaction amounts",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		}),
		ProcessDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "saccoledger_process_duration_seconds",
			Help:    "Duration of transaction processing",
			Buckets: prometheus.DefBuckets,
		}),
		LedgerEntriesPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "saccoledger_ledger_entries_posted_total",
			Help: "Total number of posted ledger entries",
		}),
		LedgerImbalances: promauto.NewCounter(prometheus.CounterOpts{
			Name: "saccoledger_ledger_imbalances_total",
			Help: "Total number of detected ledger imbalances",
		}),
		LockTimeouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "saccoledger_lock_timeouts_total",
			Help: "Total number of account lock wait timeouts",
		}),
	}
}

// ErrorLabel maps an error to a stable metric label.
func ErrorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrMinimumBalanceBreach):
		return "minimum_balance_breach"
	case errors.Is(err, domain.ErrDailyLimitExceeded):
		return "daily_limit_exceeded"
	case errors.Is(err, domain.ErrLedgerImbalance):
		return "ledger_imbalance"
	case errors.Is(err, domain.ErrConcurrencyTimeout):
		return "lock_timeout"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrAccountNotActive):
		return "account_not_active"
	case errors.Is(err, domain.ErrAlreadyReversed):
		return "already_reversed"
	case errors.Is(err, domain.ErrNotReversible):
		return "not_reversible"
	default:
		if _, ok := domain.AsValidationError(err); ok {
			return "validation"
		}
		return "internal"
	}
}
