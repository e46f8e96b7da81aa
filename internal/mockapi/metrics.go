package mockapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers request metrics for Prometheus scraping.
type Collector struct {
	requests *prometheus.CounterVec
	latency  prometheus.Histogram
	logins   prometheus.Counter
	rejected prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gastrack_http_requests_total",
			Help: "HTTP responses by method, path and status code",
		}, []string{"method", "path", "status_code"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gastrack_http_latency_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gastrack_logins_total",
			Help: "Successful logins",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gastrack_auth_rejected_total",
			Help: "Requests rejected with 401",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.latency,
		c.logins,
		c.rejected,
	)

	return c
}

// RecordRequest records one served request.
func (c *Collector) RecordRequest(method, path string, statusCode int, duration time.Duration) {
	c.requests.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	c.latency.Observe(duration.Seconds())
	if statusCode == http.StatusUnauthorized {
		c.rejected.Inc()
	}
}

// RecordLogin records a successful login.
func (c *Collector) RecordLogin() {
	c.logins.Inc()
}

// MetricsHandler returns the Prometheus scrape handler.
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
