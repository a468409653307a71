package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application-level Prometheus metrics. HTTP metrics live
// in the transport middleware.
type Metrics struct {
	// Movement metrics
	ExpensesRegistered  prometheus.Counter
	IncomesRegistered   prometheus.Counter
	TransfersRegistered prometheus.Counter
	MovementAmount      *prometheus.HistogramVec
	MovementErrors      *prometheus.CounterVec

	// Account metrics
	AccountsCreated prometheus.Counter

	// Cache metrics
	CacheHits          *prometheus.CounterVec
	CacheMisses        *prometheus.CounterVec
	CacheInvalidations *prometheus.CounterVec

	// Scheduler metrics
	ScheduledJobRuns *prometheus.CounterVec
}

// New creates and registers all application metrics.
func New() *Metrics {
	return &Metrics{
		ExpensesRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hucha_expenses_registered_total",
			Help: "Total number of expenses registered",
		}),
		IncomesRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hucha_incomes_registered_total",
			Help: "Total number of incomes registered",
		}),
		TransfersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hucha_transfers_registered_total",
			Help: "Total number of transfers registered",
		}),
		MovementAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hucha_movement_amount",
				Help:    "Movement amounts by type",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
			},
			[]string{"type"},
		),
		MovementErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hucha_movement_errors_total",
				Help: "Total number of movement errors by type",
			},
			[]string{"type", "error_kind"},
		),

		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hucha_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hucha_cache_hits_total",
				Help: "Total cache hits by entity",
			},
			[]string{"entity"},
		),
		CacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hucha_cache_misses_total",
				Help: "Total cache misses by entity",
			},
			[]string{"entity"},
		),
		CacheInvalidations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hucha_cache_invalidations_total",
				Help: "Total cache invalidations by prefix",
			},
			[]string{"prefix"},
		),

		ScheduledJobRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hucha_scheduled_job_runs_total",
				Help: "Total recurring movement job runs by outcome",
			},
			[]string{"type", "status"},
		),
	}
}
