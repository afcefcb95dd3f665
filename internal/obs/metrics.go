// Package obs holds the service's Prometheus metrics.
package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quejas_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quejas_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	complaintsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quejas_complaints_created_total",
		Help: "Complaints accepted and persisted.",
	})

	rateLimitDenied = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quejas_rate_limit_denied_total",
		Help: "Requests denied by a rate limiter.",
	})
)

// Init registers the metrics with the default registry.
func Init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, complaintsCreated, rateLimitDenied)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Instrument measures request counts and latency per route. The route
// template is used as the path label so ids do not explode cardinality.
func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// ComplaintCreated counts one accepted submission.
func ComplaintCreated() { complaintsCreated.Inc() }

// RateLimitDenied counts one throttled request.
func RateLimitDenied() { rateLimitDenied.Inc() }
