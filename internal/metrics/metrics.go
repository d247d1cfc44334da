// Package metrics defines the Prometheus collectors of the server.
// All methods are safe to call on a nil *Metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "citymaps"

// Metrics holds the application collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	sessions         prometheus.Gauge
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	purchases        *prometheus.CounterVec
	aggregationRuns  *prometheus.CounterVec
	aggregationTime  prometheus.Histogram
	aggregationLast  prometheus.Gauge
	cacheLookups     *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

// New creates the collectors and registers them, together with the process
// and Go runtime collectors, in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ws",
			Name:      "sessions",
			Help:      "Current number of open WebSocket sessions.",
		}),
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ws",
			Name:      "dispatch_total",
			Help:      "Total number of dispatched envelopes by action and outcome reason.",
		}, []string{"action", "reason"}),
		dispatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ws",
			Name:      "dispatch_duration_seconds",
			Help:      "Duration of envelope handlers.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		}, []string{"action"}),
		purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "purchase",
			Name:      "processed_total",
			Help:      "Total number of processed purchases by type and result reason.",
		}, []string{"type", "reason"}),
		aggregationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregation",
			Name:      "runs_total",
			Help:      "Total number of daily aggregation runs.",
		}, []string{"status"}),
		aggregationTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "aggregation",
			Name:      "run_duration_seconds",
			Help:      "Duration of daily aggregation runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		aggregationLast: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "aggregation",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful aggregation run.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "cache_lookups_total",
			Help:      "Catalog cache lookups by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of plain HTTP requests handled.",
		}, []string{"method", "path", "status"}),
	}

	m.registry.MustRegister(
		m.sessions,
		m.dispatchTotal,
		m.dispatchDuration,
		m.purchases,
		m.aggregationRuns,
		m.aggregationTime,
		m.aggregationLast,
		m.cacheLookups,
		m.httpRequests,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SessionOpened increments the open session gauge.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sessions.Inc()
}

// SessionClosed decrements the open session gauge.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.sessions.Dec()
}

// ObserveDispatch records one handled envelope.
func (m *Metrics) ObserveDispatch(action, reason string, d time.Duration) {
	if m == nil {
		return
	}
	m.dispatchTotal.WithLabelValues(action, reason).Inc()
	m.dispatchDuration.WithLabelValues(action).Observe(d.Seconds())
}

// ObservePurchase records the outcome of one purchase.
func (m *Metrics) ObservePurchase(purchaseType, reason string) {
	if m == nil {
		return
	}
	m.purchases.WithLabelValues(purchaseType, reason).Inc()
}

// ObserveAggregation records one aggregation run.
func (m *Metrics) ObserveAggregation(err error, d time.Duration, at time.Time) {
	if m == nil {
		return
	}
	m.aggregationTime.Observe(d.Seconds())
	if err != nil {
		m.aggregationRuns.WithLabelValues("error").Inc()
		return
	}
	m.aggregationRuns.WithLabelValues("success").Inc()
	m.aggregationLast.Set(float64(at.Unix()))
}

// CacheHit records a catalog cache hit.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("hit").Inc()
}

// CacheMiss records a catalog cache miss.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// InstrumentHandler wraps next with plain HTTP request counting. The metrics
// endpoint itself and upgraded WebSocket connections are counted too; their
// status is whatever the handler wrote first.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.httpRequests.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
	})
}
