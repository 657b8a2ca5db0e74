package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "monzo_client",
			Name:      "requests_total",
			Help:      "Requests sent to the Monzo API by operation and response code.",
		},
		[]string{"operation", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "monzo_client",
			Name:      "request_duration_seconds",
			Help:      "Latency of Monzo API requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func observe(operation, code string, elapsed time.Duration) {
	requestsTotal.WithLabelValues(operation, code).Inc()
	requestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
