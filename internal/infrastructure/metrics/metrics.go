package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. It implements
// usecase.Instrumentation for the posting engine counters.
type Metrics struct {
	// Posting metrics
	PostingsCreated  *prometheus.CounterVec
	PostingsReversed *prometheus.CounterVec
	PostingEntries   prometheus.Histogram
	PostingDuration  prometheus.Histogram
	PostingErrors    *prometheus.CounterVec

	// Party metrics
	PartiesCreated  prometheus.Counter
	PartyOperations *prometheus.CounterVec

	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferAmount   prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Outbox metrics
	EventsPublished *prometheus.CounterVec
	PublishErrors   prometheus.Counter

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		PostingsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bullionledger_postings_created_total",
				Help: "Total posting batches written by business event",
			},
			[]string{"event"},
		),
		PostingsReversed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bullionledger_postings_reversed_total",
				Help: "Total posting batches reversed by business event",
			},
			[]string{"event"},
		),
		PostingEntries: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bullionledger_posting_entries",
			Help:    "Ledger entries per posting batch",
			Buckets: []float64{1, 2, 4, 6, 8, 12, 20},
		}),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bullionledger_posting_duration_seconds",
			Help:    "Duration of posting operations",
			Buckets: prometheus.DefBuckets,
		}),
		PostingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bullionledger_posting_errors_total",
				Help: "Total posting errors by type",
			},
			[]string{"error_type"},
		),

		PartiesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bullionledger_parties_created_total",
			Help: "Total number of parties created",
		}),
		PartyOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bullionledger_party_operations_total",
				Help: "Total party operations by type",
			},
			[]string{"operation"},
		),

		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bullionledger_transfers_created_total",
			Help: "Total number of fund transfers created",
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bullionledger_transfer_amount",
			Help:    "Fund transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bullionledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bullionledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bullionledger_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bullionledger_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "bullionledger_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bullionledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bullionledger_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bullionledger_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bullionledger_events_published_total",
				Help: "Total outbox events published by type",
			},
			[]string{"event_type"},
		),
		PublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bullionledger_publish_errors_total",
			Help: "Total outbox publish errors",
		}),

		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bullionledger_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}

// PostingRecorded counts a committed posting batch.
func (m *Metrics) PostingRecorded(event string, entryCount int) {
	m.PostingsCreated.WithLabelValues(event).Inc()
	m.PostingEntries.Observe(float64(entryCount))
}

// ReversalRecorded counts a committed reversal batch.
func (m *Metrics) ReversalRecorded(event string) {
	m.PostingsReversed.WithLabelValues(event).Inc()
}
