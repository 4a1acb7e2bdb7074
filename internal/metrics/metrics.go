package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversions_total",
			Help: "Total number of conversion attempts by terminal outcome.",
		},
		[]string{"outcome"}, // "success" or the error kind
	)

	ConversionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "conversion_duration_seconds",
			Help:    "Duration of the full fetch-and-convert pipeline.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	FetchedBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fetched_body_bytes",
			Help:    "Decoded size of fetched target bodies.",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)
)
