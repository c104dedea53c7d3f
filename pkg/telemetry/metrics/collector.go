package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mirrorbot-hq/tgmirror/pkg/config"
)

// Collector is the single entry point for all Prometheus metrics in the
// mirror proxy. It manages registration and exposes typed record methods so
// callers never deal with label slices directly.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	requestMetrics *RequestMetrics
	miningMetrics  *MiningMetrics
}

// NewCollector creates a metrics collector with the given configuration and
// registry. If registry is nil a fresh one is used.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "tgmirror"
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		// Bot API calls are fast; long polls and uploads are not.
		cfg.RequestDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 15.0, 60.0}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.requestMetrics = NewRequestMetrics(cfg, registry)
	c.miningMetrics = NewMiningMetrics(cfg, registry)

	return c
}

// RecordRequest records a completed request on the proxy's HTTP surface.
// method is the Bot API method name ("sendMessage", "getChats", ...);
// source is "upstream" for forwarded calls, "local" for cache-served ones.
func (c *Collector) RecordRequest(method, source, status string, seconds float64) {
	if !c.config.Enabled {
		return
	}
	c.requestMetrics.RecordRequest(method, source, status, seconds)
}

// RecordUpstreamDuration records the latency of a single upstream Bot API
// call, measured around the round trip only.
func (c *Collector) RecordUpstreamDuration(method string, seconds float64) {
	if !c.config.Enabled {
		return
	}
	c.requestMetrics.RecordUpstreamDuration(method, seconds)
}

// RecordMined records entities extracted from one upstream response.
func (c *Collector) RecordMined(kind string, count int) {
	if !c.config.Enabled {
		return
	}
	c.miningMetrics.RecordMined(kind, count)
}

// RecordUpserts records entity records written to the cache store.
func (c *Collector) RecordUpserts(kind string, count int) {
	if !c.config.Enabled {
		return
	}
	c.miningMetrics.RecordUpserts(kind, count)
}

// RecordMiningFailure records a mining pass that was abandoned. stage is
// "decode" or "store".
func (c *Collector) RecordMiningFailure(stage string) {
	if !c.config.Enabled {
		return
	}
	c.miningMetrics.RecordFailure(stage)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
