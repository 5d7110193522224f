package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics Prometheus collectors of the service
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueries    *prometheus.CounterVec
	dbDuration   *prometheus.HistogramVec
	dbOpenConns  prometheus.Gauge
	dbInUseConns prometheus.Gauge
	dbIdleConns  prometheus.Gauge
	dbWaitCount  prometheus.Gauge

	ruleRejections *prometheus.CounterVec
	bufferWarnings prometheus.Counter
}

// New creates the collectors and registers them in the default registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry creates the collectors and registers them in reg
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
		dbQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		dbDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: constLabels,
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
		ruleRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_rule_rejections_total",
			Help:        "Booking requests rejected, by rule",
			ConstLabels: constLabels,
		}, []string{"rule"}),
		bufferWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "booking_buffer_warnings_total",
			Help:        "Bookings accepted with less than the buffer gap to a neighbour",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.dbQueries,
		m.dbDuration,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
		m.ruleRejections,
		m.bufferWarnings,
	)

	return m
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveQuery records one database call
func (m *Metrics) ObserveQuery(operation string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueries.WithLabelValues(operation, status).Inc()
	m.dbDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// SetPoolStats publishes connection pool statistics
func (m *Metrics) SetPoolStats(stats sql.DBStats) {
	m.dbOpenConns.Set(float64(stats.OpenConnections))
	m.dbInUseConns.Set(float64(stats.InUse))
	m.dbIdleConns.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}

// IncRuleRejection counts a booking rejected by rule
func (m *Metrics) IncRuleRejection(rule string) {
	m.ruleRejections.WithLabelValues(rule).Inc()
}

// AddBufferWarnings counts accepted bookings that sit inside the buffer of a neighbour
func (m *Metrics) AddBufferWarnings(n int) {
	m.bufferWarnings.Add(float64(n))
}
