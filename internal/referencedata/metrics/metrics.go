package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for reference data lookups.
type Metrics struct {
	LookupDuration *prometheus.HistogramVec
	LookupErrors   *prometheus.CounterVec
	CacheHits      *prometheus.CounterVec
	CacheMisses    *prometheus.CounterVec
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the reference data metrics with reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LookupDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "precheck_reference_data_lookup_duration_seconds",
			Help:    "Duration of reference data lookups by source and category",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"source", "category"}), // source: "http", "postgres", "redis"

		LookupErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "precheck_reference_data_lookup_errors_total",
			Help: "Failed reference data lookups by source and error category",
		}, []string{"source", "error"}),

		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "precheck_reference_data_cache_hits_total",
			Help: "Shared reference data cache hits by category",
		}, []string{"category"}),

		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "precheck_reference_data_cache_misses_total",
			Help: "Shared reference data cache misses by category",
		}, []string{"category"}),
	}
}

// ObserveLookup records the duration of one lookup.
func (m *Metrics) ObserveLookup(source, category string, seconds float64) {
	if m != nil {
		m.LookupDuration.WithLabelValues(source, category).Observe(seconds)
	}
}

// RecordLookupError counts a failed lookup.
func (m *Metrics) RecordLookupError(source, errorCategory string) {
	if m != nil {
		m.LookupErrors.WithLabelValues(source, errorCategory).Inc()
	}
}

func (m *Metrics) RecordCacheHit(category string) {
	if m != nil {
		m.CacheHits.WithLabelValues(category).Inc()
	}
}

func (m *Metrics) RecordCacheMiss(category string) {
	if m != nil {
		m.CacheMisses.WithLabelValues(category).Inc()
	}
}
