// Package middleware holds the gin middleware of the gateway.
package middleware

import (
	"strconv"
	"time"

	"jusho-client/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records gateway request counts and latencies.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the gateway collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jusho",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Gateway requests by route, status and failure kind.",
		}, []string{"route", "status", "kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jusho",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Gateway request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	reg.MustRegister(m.requests, m.duration)

	return m
}

// Handler returns the gin middleware.
func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		kind := c.GetString(handler.ErrorKindKey)
		if kind == "" {
			kind = "none"
		}

		m.requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status()), kind).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
