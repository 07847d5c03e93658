package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	linkRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_link_requests_total",
			Help: "Total payment-link requests by provider, payment type and outcome.",
		},
		[]string{"provider", "payment_type", "outcome"},
	)

	linkDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "checkout_link_duration_seconds",
			Help:    "End-to-end duration of link generation by provider.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
)

// GetLinkRequestsTotal exposes the request counter for tests.
func GetLinkRequestsTotal() *prometheus.CounterVec {
	return linkRequestsTotal
}

// GetLinkDurationSeconds exposes the duration histogram for tests.
func GetLinkDurationSeconds() *prometheus.HistogramVec {
	return linkDurationSeconds
}
