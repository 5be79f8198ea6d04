package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Posting metrics
	TransactionsTotal     prometheus.Counter
	TransactionsSucceeded prometheus.Counter
	TransactionsFailed    *prometheus.CounterVec
	TransactionDuration   prometheus.Histogram
	TransactionRetries    prometheus.Counter

	// Account metrics
	AccountsCreated prometheus.Counter
	BalanceCacheOps *prometheus.CounterVec

	// Event metrics
	EventsPublished *prometheus.CounterVec
	EventsDropped   prometheus.Counter

	// API metrics
	GRPCRequests *prometheus.CounterVec
	GRPCDuration *prometheus.HistogramVec
}

// NewWithRegisterer creates all Prometheus metrics and registers them on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransactionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_transactions_total",
			Help: "Total number of posting requests received",
		}),
		TransactionsSucceeded: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_transactions_succeeded_total",
			Help: "Total number of transactions posted",
		}),
		TransactionsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transactions_failed_total",
				Help: "Total number of rejected or failed postings by reason",
			},
			[]string{"reason"},
		),
		TransactionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_transaction_duration_seconds",
			Help:    "Duration of posting requests",
			Buckets: prometheus.DefBuckets,
		}),
		TransactionRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_transaction_retries_total",
			Help: "Total number of posting attempts retried after a concurrency conflict",
		}),

		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		BalanceCacheOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_balance_cache_operations_total",
				Help: "Balance cache lookups by result",
			},
			[]string{"result"},
		),

		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_events_published_total",
				Help: "Total number of events handed to the transport by topic and result",
			},
			[]string{"topic", "result"},
		),
		EventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_events_dropped_total",
			Help: "Total number of events dropped because the queue was full",
		}),

		GRPCRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_grpc_requests_total",
				Help: "Total gRPC requests",
			},
			[]string{"method", "code"},
		),
		GRPCDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_grpc_duration_seconds",
				Help:    "gRPC request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}
