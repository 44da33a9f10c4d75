package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database query latency (seconds)
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pt_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"backend", "operation", "table"},
	)

	// Slow queries reported by the postgres tracer
	DBSlowQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pt_db_slow_queries_total",
			Help: "Total number of queries slower than the configured threshold",
		},
		[]string{"backend"},
	)

	// HTTP request latency (seconds)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pt_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Progress calculations
	ProgressCalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pt_progress_calculations_total",
			Help: "Total number of project progress calculations",
		},
		[]string{"strategy", "status"}, // status: success, failed
	)

	// Distribution of computed percentages
	ProgressPercentage = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pt_progress_percentage",
			Help:    "Computed project progress percentage",
			Buckets: prometheus.LinearBuckets(0, 10, 11), // 0 to 100
		},
	)

	// Tasks created, by difficulty name
	TasksCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pt_tasks_created_total",
			Help: "Total number of tasks created",
		},
		[]string{"difficulty"},
	)
)

// RecordDBQueryDuration records how long a store query took
func RecordDBQueryDuration(backend, operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(backend, operation, table).Observe(duration.Seconds())
}

// IncrementSlowQuery counts a slow query for the given backend
func IncrementSlowQuery(backend string) {
	DBSlowQueries.WithLabelValues(backend).Inc()
}

// RecordHTTPRequestDuration records HTTP request latency
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordProgress counts a calculation and, when it succeeded, the resulting percentage
func RecordProgress(strategy string, percentage float64, err error) {
	if err != nil {
		ProgressCalculations.WithLabelValues(strategy, "failed").Inc()
		return
	}
	ProgressCalculations.WithLabelValues(strategy, "success").Inc()
	ProgressPercentage.Observe(percentage)
}

// IncrementTasksCreated counts a created task
func IncrementTasksCreated(difficulty string) {
	TasksCreated.WithLabelValues(difficulty).Inc()
}
