// Package metrics provides Prometheus collection and exposure for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates the service-level Prometheus metrics.
type Collector struct {
	registry     *prometheus.Registry
	httpRequests *prometheus.CounterVec
	httpLatency  prometheus.Histogram
	exchanges    *prometheus.CounterVec
}

// NewCollector registers all collectors on a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "axis_http_requests_total",
			Help: "HTTP requests processed, labeled by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "axis_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}),
		exchanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "axis_session_exchanges_total",
			Help: "Privy token exchanges, labeled by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(c.httpRequests, c.httpLatency, c.exchanges)
	return c
}

// RecordRequest counts one finished HTTP request.
func (c *Collector) RecordRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.Observe(elapsed.Seconds())
}

// RecordExchange counts one token exchange by outcome
// ("ok", "unauthorized", "error").
func (c *Collector) RecordExchange(outcome string) {
	c.exchanges.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
