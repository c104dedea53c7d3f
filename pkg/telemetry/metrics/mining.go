package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mirrorbot-hq/tgmirror/pkg/config"
)

// MiningMetrics tracks the entity extraction pipeline.
//
// Metrics:
//   - tgmirror_mined_entities_total: entities extracted, by kind
//   - tgmirror_cache_upserts_total: entity records written, by kind
//   - tgmirror_mining_failures_total: abandoned mining passes, by stage
type MiningMetrics struct {
	minedTotal    *prometheus.CounterVec
	upsertsTotal  *prometheus.CounterVec
	failuresTotal *prometheus.CounterVec
}

// NewMiningMetrics creates and registers mining metrics with the registry.
func NewMiningMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *MiningMetrics {
	mm := &MiningMetrics{
		minedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "mined_entities_total",
				Help:      "Total number of entities extracted from upstream responses",
			},
			[]string{"kind"},
		),

		upsertsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "cache_upserts_total",
				Help:      "Total number of entity records written to the cache store",
			},
			[]string{"kind"},
		),

		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "mining_failures_total",
				Help:      "Total number of mining passes abandoned before completion",
			},
			[]string{"stage"},
		),
	}

	registry.MustRegister(
		mm.minedTotal,
		mm.upsertsTotal,
		mm.failuresTotal,
	)

	return mm
}

// RecordMined records count entities of the given kind extracted from one
// upstream response.
func (mm *MiningMetrics) RecordMined(kind string, count int) {
	if count > 0 {
		mm.minedTotal.WithLabelValues(kind).Add(float64(count))
	}
}

// RecordUpserts records count entity records written to the cache store.
func (mm *MiningMetrics) RecordUpserts(kind string, count int) {
	if count > 0 {
		mm.upsertsTotal.WithLabelValues(kind).Add(float64(count))
	}
}

// RecordFailure records an abandoned mining pass.
func (mm *MiningMetrics) RecordFailure(stage string) {
	mm.failuresTotal.WithLabelValues(stage).Inc()
}
