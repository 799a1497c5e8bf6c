package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"meterbill/internal/ledger/allocation"
	"meterbill/internal/ledger/models"
	"meterbill/internal/ledger/summary"
	id "meterbill/pkg/domain"
	dErrors "meterbill/pkg/domain-errors"
)

// Allocation is the persisted outcome of reconciling one period.
type Allocation struct {
	Period          id.PeriodKey                 `json:"period"`
	PeriodReadingID id.PeriodReadingID           `json:"period_reading_id"`
	TotalCost       float64                      `json:"total_cost"`
	TotalUnits      float64                      `json:"total_units"`
	Shares          []allocation.Share           `json:"shares"`
	Readings        []models.TenantPeriodReading `json:"readings"`
	Summary         summary.Summary              `json:"summary"`

	started time.Time
}

// Unallocated reports whether the period cost could not be assigned to any tenant.
func (a *Allocation) Unallocated() bool {
	return a.TotalUnits == 0 && a.TotalCost > 0
}

// ReconcilePeriod recomputes every tenant share of the period and persists the
// result atomically. Recording operations reconcile automatically; call this after
// an import or to repair a period.
func (s *Service) ReconcilePeriod(ctx context.Context, period id.PeriodKey) (*Allocation, error) {
	if err := requirePeriod(period); err != nil {
		return nil, err
	}

	var result *Allocation
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		p, err := s.periods.FindByPeriod(txCtx, period)
		if err != nil {
			return wrapPeriodErr(err, "failed to load period reading")
		}
		result, err = s.reconcile(txCtx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.reportReconcile(ctx, result)
	return result, nil
}

// reconcile must run inside a transaction opened by the caller, which reports
// the result with reportReconcile once the transaction commits.
func (s *Service) reconcile(ctx context.Context, period *models.PeriodReading) (result *Allocation, err error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, "ledger.reconcile",
		attribute.String("period", period.Period.String()),
		attribute.Float64("total_cost", period.TotalCost),
	)
	defer func() { endSpan(span, err) }()

	readings, err := s.readings.ListByPeriodReading(ctx, period.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tenant readings")
	}

	entries := make([]allocation.Entry, len(readings))
	for i, r := range readings {
		entries[i] = allocation.Entry{ID: r.ID, UnitsConsumed: r.UnitsConsumed}
	}
	shares := s.allocate(entries, period.TotalCost)

	now := s.now()
	for i := range readings {
		readings[i].ApplyShare(shares[i].Proportion, shares[i].ProportionalCost, now)
		if err := s.readings.Update(ctx, &readings[i]); err != nil {
			return nil, wrapReadingErr(err, "failed to persist tenant share")
		}
	}

	result = &Allocation{
		Period:          period.Period,
		PeriodReadingID: period.ID,
		TotalCost:       period.TotalCost,
		TotalUnits:      allocation.TotalUnits(entries),
		Shares:          shares,
		Readings:        readings,
		Summary:         summary.Summarize(*period, readings),
		started:         start,
	}
	span.SetAttributes(
		attribute.Int("tenant_readings", len(readings)),
		attribute.Bool("discrepancy", result.Summary.HasDiscrepancy),
	)

	return result, nil
}

func (s *Service) allocate(entries []allocation.Entry, totalCost float64) []allocation.Share {
	if s.roundCosts {
		return allocation.AllocateRounded(entries, totalCost, s.costPlaces)
	}
	return allocation.Allocate(entries, totalCost)
}

// reportReconcile logs and counts a committed reconciliation.
func (s *Service) reportReconcile(ctx context.Context, result *Allocation) {
	if result == nil {
		return
	}
	s.logEvent(ctx, models.EventPeriodReconciled,
		periodAttr(result.Period),
		"tenant_readings", len(result.Readings),
		"total_units", result.TotalUnits,
		"total_cost", result.TotalCost,
	)
	if result.Summary.HasDiscrepancy {
		s.logWarn(ctx, models.EventDiscrepancyDetected,
			periodAttr(result.Period),
			"building_units", result.Summary.BuildingUnits,
			"tenant_units", result.Summary.TotalTenantUnits,
		)
	}
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveReconcile(result.started)
	if result.Summary.HasDiscrepancy {
		s.metrics.IncrementDiscrepancy()
	}
	if result.Unallocated() {
		s.metrics.AddUnallocatedCost(result.TotalCost)
	}
}
