package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Checkout metrics
	OrdersCreatedTotal    prometheus.Counter
	CheckoutFailuresTotal prometheus.Counter
)

// InitMetrics registers Prometheus metrics with the configured prefix
func InitMetrics(prefix string) {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_orders_created_total",
			Help: "Total number of order rows created by checkouts",
		},
	)

	CheckoutFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_checkout_failures_total",
			Help: "Total number of rejected or failed checkouts",
		},
	)
}
