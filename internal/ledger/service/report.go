package service

import (
	"context"

	"meterbill/internal/ledger/models"
	"meterbill/internal/ledger/summary"
	id "meterbill/pkg/domain"
	dErrors "meterbill/pkg/domain-errors"
)

// PeriodReport is the summary of one period together with the active tenants
// that have not reported a reading yet.
type PeriodReport struct {
	Period           id.PeriodKey                 `json:"period"`
	Reading          models.PeriodReading         `json:"reading"`
	TenantReadings   []models.TenantPeriodReading `json:"tenant_readings"`
	Summary          summary.Summary              `json:"summary"`
	MissingTenantIDs []id.TenantID                `json:"missing_tenant_ids"`
}

func (s *Service) SummarizePeriod(ctx context.Context, period id.PeriodKey) (*PeriodReport, error) {
	if err := requirePeriod(period); err != nil {
		return nil, err
	}

	p, err := s.periods.FindByPeriod(ctx, period)
	if err != nil {
		return nil, wrapPeriodErr(err, "failed to load period reading")
	}
	readings, err := s.readings.ListByPeriodReading(ctx, p.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tenant readings")
	}
	active, err := s.tenants.ListByActive(ctx, true)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list active tenants")
	}

	reported := make(map[id.TenantID]struct{}, len(readings))
	for _, r := range readings {
		reported[r.TenantID] = struct{}{}
	}
	missing := make([]id.TenantID, 0)
	for _, t := range active {
		if _, ok := reported[t.ID]; !ok {
			missing = append(missing, t.ID)
		}
	}

	return &PeriodReport{
		Period:           period,
		Reading:          *p,
		TenantReadings:   readings,
		Summary:          summary.Summarize(*p, readings),
		MissingTenantIDs: missing,
	}, nil
}
