package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"meterbill/internal/ledger/consumption"
	ledgermetrics "meterbill/internal/ledger/metrics"
	"meterbill/internal/ledger/models"
	"meterbill/internal/sentinel"
	id "meterbill/pkg/domain"
	dErrors "meterbill/pkg/domain-errors"
)

// RecordPeriodReading stores the building meter for a period and reconciles it.
// An existing period is only overwritten when confirmOverwrite is set; the
// correction keeps the previous value captured on first entry.
func (s *Service) RecordPeriodReading(ctx context.Context, req *models.RecordPeriodReadingRequest, confirmOverwrite bool) (*models.PeriodReading, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		reading   *models.PeriodReading
		outcome   string
		allocated *Allocation
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := s.now()
		existing, err := s.periods.FindByPeriod(txCtx, req.Period)
		switch {
		case err == nil:
			if !confirmOverwrite {
				return dErrors.New(dErrors.CodeConflict, "period already recorded; confirm to overwrite")
			}
			existing.Correct(models.PeriodReadingUpdate{
				ReadAt:     req.ReadAt,
				MeterValue: *req.MeterValue,
				TotalCost:  *req.TotalCost,
			}, now)
			if err := s.periods.Update(txCtx, existing); err != nil {
				return wrapPeriodErr(err, "failed to correct period reading")
			}
			reading, outcome = existing, ledgermetrics.OutcomeCorrected
		case errors.Is(err, sentinel.ErrNotFound):
			history, err := s.buildingHistory(txCtx, req.Period)
			if err != nil {
				return err
			}
			resolved := consumption.Resolve(history, *req.MeterValue, consumption.Building)
			p := models.NewPeriodReading(id.PeriodReadingID(uuid.New()), req.Period, req.ReadTime(),
				*req.MeterValue, *req.TotalCost, resolved.PreviousValue, now)
			if err := s.periods.Create(txCtx, p); err != nil {
				return wrapPeriodErr(err, "failed to record period reading")
			}
			reading, outcome = p, ledgermetrics.OutcomeCreated
		default:
			return wrapPeriodErr(err, "failed to load period reading")
		}

		allocated, err = s.reconcile(txCtx, reading)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.reportReconcile(ctx, allocated)

	event := models.EventPeriodReadingRecorded
	if outcome == ledgermetrics.OutcomeCorrected {
		event = models.EventPeriodReadingCorrected
	}
	s.logEvent(ctx, event,
		periodAttr(reading.Period),
		"period_reading_id", reading.ID.String(),
		"units_consumed", reading.UnitsConsumed,
		"total_cost", reading.TotalCost,
	)
	s.incrementReadingRecorded(consumption.Building, outcome)
	return reading, nil
}

// RecordTenantReading stores or replaces a tenant's sub-meter reading for a
// recorded period and reconciles the period. The returned reading carries the
// freshly allocated share.
func (s *Service) RecordTenantReading(ctx context.Context, req *models.RecordTenantReadingRequest) (*models.TenantPeriodReading, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		reading   *models.TenantPeriodReading
		outcome   string
		allocated *Allocation
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.tenants.FindByID(txCtx, req.TenantID); err != nil {
			return wrapTenantErr(err, "failed to load tenant")
		}
		period, err := s.periods.FindByPeriod(txCtx, req.Period)
		if err != nil {
			return wrapPeriodErr(err, "failed to load period reading")
		}

		history, err := s.tenantHistory(txCtx, req.TenantID, req.Period)
		if err != nil {
			return err
		}
		resolved := consumption.Resolve(history, *req.MeterValue, consumption.Tenant)

		now := s.now()
		existing, err := s.readings.FindByTenantAndPeriod(txCtx, req.TenantID, req.Period)
		switch {
		case err == nil:
			existing.Resubmit(models.TenantReadingUpdate{
				ReadAt:        req.ReadAt,
				MeterValue:    *req.MeterValue,
				PreviousValue: resolved.PreviousValue,
			}, now)
			if err := s.readings.Update(txCtx, existing); err != nil {
				return wrapReadingErr(err, "failed to update tenant reading")
			}
			reading, outcome = existing, ledgermetrics.OutcomeCorrected
		case errors.Is(err, sentinel.ErrNotFound):
			r := models.NewTenantPeriodReading(id.TenantReadingID(uuid.New()), req.TenantID, period,
				req.ReadTime(), *req.MeterValue, resolved.PreviousValue, now)
			if err := s.readings.Create(txCtx, r); err != nil {
				return wrapReadingErr(err, "failed to record tenant reading")
			}
			reading, outcome = r, ledgermetrics.OutcomeCreated
		default:
			return wrapReadingErr(err, "failed to load tenant reading")
		}

		if allocated, err = s.reconcile(txCtx, period); err != nil {
			return err
		}
		reading, err = s.readings.FindByID(txCtx, reading.ID)
		if err != nil {
			return wrapReadingErr(err, "failed to reload tenant reading")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.reportReconcile(ctx, allocated)

	s.logEvent(ctx, models.EventTenantReadingRecorded,
		periodAttr(reading.Period),
		"tenant_id", reading.TenantID.String(),
		"tenant_reading_id", reading.ID.String(),
		"units_consumed", reading.UnitsConsumed,
		"proportional_cost", reading.ProportionalCost,
	)
	s.incrementReadingRecorded(consumption.Tenant, outcome)
	return reading, nil
}

// DeleteTenantReading removes a tenant reading and redistributes its period cost.
func (s *Service) DeleteTenantReading(ctx context.Context, readingID id.TenantReadingID) error {
	if err := requireTenantReadingID(readingID); err != nil {
		return err
	}

	var (
		period    id.PeriodKey
		allocated *Allocation
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		r, err := s.readings.FindByID(txCtx, readingID)
		if err != nil {
			return wrapReadingErr(err, "failed to load tenant reading")
		}
		if err := s.readings.Delete(txCtx, readingID); err != nil {
			return wrapReadingErr(err, "failed to delete tenant reading")
		}
		period = r.Period

		p, err := s.periods.FindByID(txCtx, r.PeriodReadingID)
		if err != nil {
			return wrapPeriodErr(err, "failed to load period reading")
		}
		allocated, err = s.reconcile(txCtx, p)
		return err
	})
	if err != nil {
		return err
	}
	s.reportReconcile(ctx, allocated)

	s.logEvent(ctx, models.EventTenantReadingDeleted,
		periodAttr(period),
		"tenant_reading_id", readingID.String(),
	)
	return nil
}

// DeletePeriodReading removes a period's building reading. Periods that still
// carry tenant readings cannot be deleted.
func (s *Service) DeletePeriodReading(ctx context.Context, period id.PeriodKey) error {
	if err := requirePeriod(period); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		p, err := s.periods.FindByPeriod(txCtx, period)
		if err != nil {
			return wrapPeriodErr(err, "failed to load period reading")
		}
		dependents, err := s.readings.ListByPeriodReading(txCtx, p.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tenant readings")
		}
		if len(dependents) > 0 {
			return dErrors.New(dErrors.CodeConflict, "period has tenant readings; delete them first")
		}
		if err := s.periods.Delete(txCtx, p.ID); err != nil {
			return wrapPeriodErr(err, "failed to delete period reading")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logEvent(ctx, models.EventPeriodReadingDeleted, periodAttr(period))
	return nil
}

func (s *Service) GetPeriodReading(ctx context.Context, period id.PeriodKey) (*models.PeriodReading, error) {
	if err := requirePeriod(period); err != nil {
		return nil, err
	}
	p, err := s.periods.FindByPeriod(ctx, period)
	if err != nil {
		return nil, wrapPeriodErr(err, "failed to load period reading")
	}
	return p, nil
}

// ListPeriodReadings returns every building reading in chronological order.
func (s *Service) ListPeriodReadings(ctx context.Context) ([]models.PeriodReading, error) {
	periods, err := s.periods.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list period readings")
	}
	return periods, nil
}

// LatestPeriodReading returns the reading of the most recent billing period.
func (s *Service) LatestPeriodReading(ctx context.Context) (*models.PeriodReading, error) {
	periods, err := s.ListPeriodReadings(ctx)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "no period readings recorded")
	}
	latest := periods[0]
	for _, p := range periods[1:] {
		if latest.Period.Before(p.Period) {
			latest = p
		}
	}
	return &latest, nil
}

// TenantHistory returns a tenant's readings in chronological order. Readings of
// deleted tenants remain queryable.
func (s *Service) TenantHistory(ctx context.Context, tenantID id.TenantID) ([]models.TenantPeriodReading, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}
	readings, err := s.readings.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tenant readings")
	}
	return readings, nil
}

func (s *Service) PeriodTenantReadings(ctx context.Context, period id.PeriodKey) ([]models.TenantPeriodReading, error) {
	if err := requirePeriod(period); err != nil {
		return nil, err
	}
	readings, err := s.readings.ListByPeriod(ctx, period)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list period tenant readings")
	}
	return readings, nil
}

// buildingHistory returns building readings of periods before the given one.
func (s *Service) buildingHistory(ctx context.Context, before id.PeriodKey) ([]consumption.Reading, error) {
	periods, err := s.periods.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load building history")
	}
	history := make([]consumption.Reading, 0, len(periods))
	for _, p := range periods {
		if p.Period.Before(before) {
			history = append(history, consumption.Reading{ReadAt: p.ReadAt, MeterValue: p.MeterValue})
		}
	}
	return history, nil
}

// tenantHistory returns the tenant's readings of periods before the given one.
func (s *Service) tenantHistory(ctx context.Context, tenantID id.TenantID, before id.PeriodKey) ([]consumption.Reading, error) {
	readings, err := s.readings.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tenant history")
	}
	history := make([]consumption.Reading, 0, len(readings))
	for _, r := range readings {
		if r.Period.Before(before) {
			history = append(history, consumption.Reading{ReadAt: r.ReadAt, MeterValue: r.MeterValue})
		}
	}
	return history, nil
}

func (s *Service) incrementReadingRecorded(subject consumption.Subject, outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementReadingRecorded(subject.String(), outcome)
	}
}
