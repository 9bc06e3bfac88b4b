package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds. Analysis requests block on the
	// news collector and the model provider, so the tail is long.
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketlens_requests_total",
			Help: "Total number of requests processed",
		},
		[]string{"method", "path", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketlens_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"path"},
	)

	AnalysisTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketlens_analyses_total",
			Help: "Sector analyses by outcome",
		},
		[]string{"outcome"}, // ok, degraded, no_data, invalid_sector, error
	)

	RateLimitRejectedTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "marketlens_rate_limit_rejected_total",
			Help: "Requests rejected by the per-user quota",
		},
	)
)

func Initialize() {
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}
