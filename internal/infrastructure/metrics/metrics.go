package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments recorded by the usecase
// layer. HTTP-level metrics live in the router middleware.
type Metrics struct {
	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountsDeleted   *prometheus.CounterVec
	AccountOperations *prometheus.CounterVec

	// Transfer metrics
	TransfersCompleted prometheus.Counter
	TransferDuration   prometheus.Histogram
	TransferAmount     prometheus.Histogram

	// ATM cash metrics
	CashMovements *prometheus.CounterVec
	CashMoved     *prometheus.CounterVec

	// Ledger metrics
	ConsistencyChecks     *prometheus.CounterVec
	ConsistencyViolations prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "atmledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atmledger_accounts_deleted_total",
				Help: "Total number of accounts deleted by mode",
			},
			[]string{"mode"},
		),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atmledger_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),

		TransfersCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "atmledger_transfers_completed_total",
			Help: "Total number of transfers completed",
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "atmledger_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "atmledger_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1000, 10000, 100000, 500000, 1000000, 10000000},
		}),

		CashMovements: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atmledger_cash_movements_total",
				Help: "Total cash movements between bank repositories and ATMs",
			},
			[]string{"direction"},
		),
		CashMoved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atmledger_cash_moved_amount_total",
				Help: "Total cash amount moved by direction",
			},
			[]string{"direction"},
		),

		ConsistencyChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atmledger_consistency_checks_total",
				Help: "Total ledger consistency checks by result",
			},
			[]string{"result"},
		),
		ConsistencyViolations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "atmledger_consistency_violations_total",
			Help: "Total account balance violations detected",
		}),
	}
}
