package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mirrorbot-hq/tgmirror/pkg/config"
)

// RequestMetrics tracks the proxy's HTTP surface.
//
// Metrics:
//   - tgmirror_requests_total: request count by method, source, status
//   - tgmirror_request_duration_seconds: end-to-end handler duration
//   - tgmirror_upstream_request_duration_seconds: upstream round-trip duration
type RequestMetrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	upstreamDuration *prometheus.HistogramVec
}

// NewRequestMetrics creates and registers request metrics with the registry.
func NewRequestMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "requests_total",
				Help:      "Total number of Bot API requests handled",
			},
			[]string{"method", "source", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "request_duration_seconds",
				Help:      "End-to-end request handling duration in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"method", "source"},
		),

		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream Bot API round-trip duration in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"method"},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
		rm.upstreamDuration,
	)

	return rm
}

// RecordRequest records a completed request.
func (rm *RequestMetrics) RecordRequest(method, source, status string, seconds float64) {
	rm.requestsTotal.WithLabelValues(method, source, status).Inc()
	rm.requestDuration.WithLabelValues(method, source).Observe(seconds)
}

// RecordUpstreamDuration records the latency of one upstream call.
func (rm *RequestMetrics) RecordUpstreamDuration(method string, seconds float64) {
	rm.upstreamDuration.WithLabelValues(method).Observe(seconds)
}
