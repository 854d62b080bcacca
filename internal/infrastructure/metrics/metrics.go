package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Voucher posting metrics
	VouchersPosted  *prometheus.CounterVec
	PostingDuration prometheus.Histogram
	PostingErrors   *prometheus.CounterVec
	VoucherAmount   prometheus.Histogram

	// Report metrics
	ReportDuration *prometheus.HistogramVec
	ReportErrors   *prometheus.CounterVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisDuration   *prometheus.HistogramVec
	RedisErrors     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Voucher posting metrics
		VouchersPosted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gstbooks_vouchers_posted_total",
				Help: "Total number of vouchers posted by kind",
			},
			[]string{"kind"},
		),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gstbooks_posting_duration_seconds",
			Help:    "Duration of voucher posting operations",
			Buckets: prometheus.DefBuckets,
		}),
		PostingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gstbooks_posting_errors_total",
				Help: "Total number of posting errors by type",
			},
			[]string{"error_type"},
		),
		VoucherAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gstbooks_voucher_amount",
			Help:    "Posted voucher amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		// Report metrics
		ReportDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gstbooks_report_duration_seconds",
				Help:    "Duration of report generation by report",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report"},
		),
		ReportErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gstbooks_report_errors_total",
				Help: "Total report generation errors by report",
			},
			[]string{"report"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gstbooks_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gstbooks_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "gstbooks_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gstbooks_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gstbooks_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gstbooks_redis_duration_seconds",
				Help:    "Redis operation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gstbooks_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),
	}
}
