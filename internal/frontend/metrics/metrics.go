// Package metrics exposes Prometheus metrics for the lead front-end: HTTP
// traffic, calls to the remote lead API and session housekeeping.
//
// All Record* methods are safe on a nil *Collector, which is what tests and
// the command line tools pass when nothing scrapes them.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
	"github.com/aussiebroadwan/leadcapture/pkg/slogx"
)

const Namespace = "leadfront"

// Collector owns its own registry so several can coexist in one process.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	APICallsTotal       *prometheus.CounterVec
	APICallDuration     *prometheus.HistogramVec
	SessionsActive      prometheus.Gauge
	SessionsPurged      prometheus.Counter
}

// New creates a Collector with the Go runtime and process collectors registered.
func New() *Collector {
	reg := prometheus.NewRegistry()

	m := &Collector{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status_code"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		APICallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "api_calls_total",
			Help:      "Calls to the remote lead API by operation and outcome",
		}, []string{"operation", "outcome"}),
		APICallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "api_call_duration_seconds",
			Help:      "Duration of calls to the remote lead API in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "sessions_active",
			Help:      "Browser sessions with live in-memory state",
		}),
		SessionsPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "sessions_purged_total",
			Help:      "Expired browser sessions removed by housekeeping",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.APICallsTotal,
		m.APICallDuration,
		m.SessionsActive,
		m.SessionsPurged,
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Collector) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Collector) RecordHTTPRequest(method, route string, statusCode int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Collector) RecordAPICall(op string, outcome leadsdk.Outcome, d time.Duration) {
	if m == nil {
		return
	}
	m.APICallsTotal.WithLabelValues(op, outcome.String()).Inc()
	m.APICallDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Collector) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.SessionsActive.Set(float64(n))
}

func (m *Collector) AddPurgedSessions(n int) {
	if m == nil {
		return
	}
	m.SessionsPurged.Add(float64(n))
}

// Middleware records every request against the ServeMux pattern that
// matched it, so path parameters and query strings do not blow up cardinality.
func (m *Collector) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &slogx.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTPRequest(r.Method, route, rec.Status, time.Since(start))
	})
}
