package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for validation passes.
type Metrics struct {
	// Pass latency by subject kind
	PassLatency *prometheus.HistogramVec

	// Pass outcomes by subject kind and validity
	PassOutcome *prometheus.CounterVec

	// Problems raised, by problem code
	Problems *prometheus.CounterVec

	// Passes aborted by a rule error, by subject kind
	PassErrors *prometheus.CounterVec

	// Outcome events that could not be published
	PublishFailures prometheus.Counter
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the validation metrics with reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PassLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "precheck_validation_pass_duration_seconds",
			Help:    "Duration of a validation pass including reference data lookups",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"kind"}), // kind: "case", "defendant", "document"

		PassOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "precheck_validation_outcomes_total",
			Help: "Total validation passes by subject kind and validity",
		}, []string{"kind", "valid"}),

		Problems: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "precheck_validation_problems_total",
			Help: "Total problems raised by problem code",
		}, []string{"code"}),

		PassErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "precheck_validation_pass_errors_total",
			Help: "Validation passes aborted by a rule or gateway error",
		}, []string{"kind"}),

		PublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "precheck_validation_publish_failures_total",
			Help: "Outcome events that failed to publish",
		}),
	}
}

// ObservePassLatency records the duration of one pass.
func (m *Metrics) ObservePassLatency(kind string, d time.Duration) {
	if m != nil {
		m.PassLatency.WithLabelValues(kind).Observe(d.Seconds())
	}
}

// IncrementOutcome records a completed pass.
func (m *Metrics) IncrementOutcome(kind string, valid bool) {
	if m != nil {
		label := "false"
		if valid {
			label = "true"
		}
		m.PassOutcome.WithLabelValues(kind, label).Inc()
	}
}

// IncrementProblems counts each problem code raised by a pass.
func (m *Metrics) IncrementProblems(codes []string) {
	if m == nil {
		return
	}
	for _, code := range codes {
		m.Problems.WithLabelValues(code).Inc()
	}
}

// IncrementPassError records an aborted pass.
func (m *Metrics) IncrementPassError(kind string) {
	if m != nil {
		m.PassErrors.WithLabelValues(kind).Inc()
	}
}

// IncrementPublishFailure records an outcome event that was dropped.
func (m *Metrics) IncrementPublishFailure() {
	if m != nil {
		m.PublishFailures.Inc()
	}
}
