package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reading outcome labels.
const (
	OutcomeCreated   = "created"
	OutcomeCorrected = "corrected"
)

type Metrics struct {
	ReadingsRecorded  *prometheus.CounterVec
	Reconciliations   prometheus.Counter
	Discrepancies     prometheus.Counter
	UnallocatedCost   prometheus.Counter
	ReconcileDuration prometheus.Histogram
}

// New registers the ledger metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ReadingsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "meterbill_readings_recorded_total",
			Help: "Meter readings recorded, by subject and outcome",
		}, []string{"subject", "outcome"}),
		Reconciliations: factory.NewCounter(prometheus.CounterOpts{
			Name: "meterbill_period_reconciliations_total",
			Help: "Total number of period cost allocations persisted",
		}),
		Discrepancies: factory.NewCounter(prometheus.CounterOpts{
			Name: "meterbill_period_discrepancies_total",
			Help: "Reconciliations where tenant consumption exceeded the building meter",
		}),
		UnallocatedCost: factory.NewCounter(prometheus.CounterOpts{
			Name: "meterbill_unallocated_cost_total",
			Help: "Cost left unallocated because no tenant consumption was recorded",
		}),
		ReconcileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "meterbill_reconcile_duration_seconds",
			Help:    "Duration of period reconciliation including write-back",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementReadingRecorded(subject, outcome string) {
	m.ReadingsRecorded.WithLabelValues(subject, outcome).Inc()
}

func (m *Metrics) IncrementDiscrepancy() {
	m.Discrepancies.Inc()
}

func (m *Metrics) AddUnallocatedCost(cost float64) {
	if cost > 0 {
		m.UnallocatedCost.Add(cost)
	}
}

func (m *Metrics) ObserveReconcile(start time.Time) {
	m.Reconciliations.Inc()
	m.ReconcileDuration.Observe(time.Since(start).Seconds())
}
