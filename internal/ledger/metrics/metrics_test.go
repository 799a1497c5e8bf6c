package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncrementReadingRecorded("tenant", OutcomeCreated)
	m.IncrementReadingRecorded("tenant", OutcomeCreated)
	m.IncrementReadingRecorded("building", OutcomeCorrected)
	m.IncrementDiscrepancy()
	m.AddUnallocatedCost(50)
	m.AddUnallocatedCost(-1)
	m.ObserveReconcile(time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReadingsRecorded.WithLabelValues("tenant", OutcomeCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReadingsRecorded.WithLabelValues("building", OutcomeCorrected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Discrepancies))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.UnallocatedCost))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reconciliations))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ReconcileDuration))
}

func TestNewRegistersIndependently(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
