package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.IncrementOutcome("defendant", true)
	m.IncrementOutcome("defendant", false)
	m.IncrementOutcome("defendant", false)
	m.IncrementProblems([]string{"INVALID_PNC_ID", "INVALID_PNC_ID", "INVALID_CRO_NUMBER"})
	m.IncrementPassError("document")
	m.ObservePassLatency("case", 15*time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.PassOutcome.WithLabelValues("defendant", "true")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.PassOutcome.WithLabelValues("defendant", "false")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Problems.WithLabelValues("INVALID_PNC_ID")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PassErrors.WithLabelValues("document")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.PassLatency))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementOutcome("case", true)
		m.IncrementProblems([]string{"X"})
		m.IncrementPassError("case")
		m.IncrementPublishFailure()
		m.ObservePassLatency("case", time.Second)
	})
}
