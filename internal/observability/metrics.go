// Package observability exposes the Prometheus metrics of the dashboard.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	refreshTotal      *prometheus.CounterVec
	refreshDuration   prometheus.Histogram
	snapshotRecords   prometheus.Gauge
	droppedRows       *prometheus.GaugeVec
	lastSuccess       prometheus.Gauge
	stale             prometheus.Gauge
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_refresh_total",
			Help: "Refresh attempts by outcome.",
		}, []string{"outcome"}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_refresh_duration_seconds",
			Help:    "Duration of refresh attempts (fetch, parse and normalize).",
			Buckets: prometheus.DefBuckets,
		}),
		snapshotRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_snapshot_records",
			Help: "Records in the current snapshot.",
		}),
		droppedRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dashboard_snapshot_dropped_rows",
			Help: "Rows dropped from the current snapshot by reason.",
		}, []string{"reason"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_last_success_timestamp_seconds",
			Help: "Unix time of the last published snapshot.",
		}),
		stale: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_snapshot_stale",
			Help: "1 when the last refresh failed and the snapshot is stale.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.refreshTotal,
		m.refreshDuration,
		m.snapshotRecords,
		m.droppedRows,
		m.lastSuccess,
		m.stale,
	)

	return m
}

// Registry exposes the registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Middleware records request counts and durations labelled by route template.
func (m *Metrics) Middleware(route func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(recorder, r)

			if m == nil {
				return
			}
			name := route(r)
			m.httpRequestsTotal.WithLabelValues(name, strconv.Itoa(recorder.status)).Inc()
			m.httpDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RefreshSucceeded records a published snapshot.
func (m *Metrics) RefreshSucceeded(duration time.Duration, records int, dropped map[string]int, at time.Time) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues("success").Inc()
	m.refreshDuration.Observe(duration.Seconds())
	m.snapshotRecords.Set(float64(records))
	m.droppedRows.Reset()
	for reason, n := range dropped {
		m.droppedRows.WithLabelValues(reason).Set(float64(n))
	}
	m.lastSuccess.Set(float64(at.Unix()))
	m.stale.Set(0)
}

// RefreshFailed records a refresh that left the previous snapshot in place.
func (m *Metrics) RefreshFailed(duration time.Duration) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues("failure").Inc()
	m.refreshDuration.Observe(duration.Seconds())
	m.stale.Set(1)
}

// RefreshDiscarded records a refresh whose result lost to a newer snapshot.
func (m *Metrics) RefreshDiscarded() {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues("discarded").Inc()
}
