// Package metrics exposes prometheus instruments and a /metrics handler.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics counts and times inbound requests by route and status.
type HTTPMetrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	exports   *prometheus.CounterVec
}

func NewHTTPMetrics() *HTTPMetrics {
	// Go and process collectors come from the default registry, which the
	// handler also gathers. Registering them here again would collide.
	registry := prometheus.NewRegistry()

	m := &HTTPMetrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "invoicely",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Inbound HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "invoicely",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Inbound HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "invoicely",
			Subsystem: "pdf",
			Name:      "exports_total",
			Help:      "PDF export attempts by outcome.",
		}, []string{"outcome"}),
	}
	registry.MustRegister(m.requests, m.durations, m.exports)
	return m
}

// GinMiddleware records request counts and latency.
func (m *HTTPMetrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.durations.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the scrape endpoint. The default gatherer is included
// because gorm's prometheus plugin registers its pool gauges there.
func (m *HTTPMetrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(prometheus.Gatherers{m.registry, prometheus.DefaultGatherer}, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

func (m *HTTPMetrics) IncExport(outcome string) {
	m.exports.WithLabelValues(outcome).Inc()
}
