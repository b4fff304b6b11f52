// Package metrics collects Prometheus metrics for the HTTP surface, logins
// and location imports.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records lacsapi metrics. A nil *Collector discards everything,
// so components may be built without one.
type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	loginFailures   *prometheus.CounterVec
	importRuns      *prometheus.CounterVec
	importLocations prometheus.Gauge
	importFailed    prometheus.Counter
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lacs_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lacs_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		loginFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lacs_login_failures_total",
			Help: "Rejected logins by account kind.",
		}, []string{"kind"}),
		importRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lacs_location_imports_total",
			Help: "Location import runs by outcome.",
		}, []string{"outcome"}),
		importLocations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lacs_location_postal_codes",
			Help: "Postal codes stored by the last successful import.",
		}),
		importFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lacs_location_import_failed_items_total",
			Help: "Location records rejected during batch inserts.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.loginFailures,
		c.importRuns,
		c.importLocations,
		c.importFailed,
	)
	return c
}

// RecordRequest records one served HTTP request. route is the matched
// pattern, not the raw path.
func (c *Collector) RecordRequest(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *Collector) RecordLoginFailure(kind string) {
	if c == nil {
		return
	}
	c.loginFailures.WithLabelValues(kind).Inc()
}

// RecordImport records the outcome of a load. stored is only applied on
// success.
func (c *Collector) RecordImport(outcome string, stored int64, failedItems int) {
	if c == nil {
		return
	}
	c.importRuns.WithLabelValues(outcome).Inc()
	c.importFailed.Add(float64(failedItems))
	if outcome == OutcomeSuccess {
		c.importLocations.Set(float64(stored))
	}
}

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// Handler serves the registry for Prometheus scraping.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
