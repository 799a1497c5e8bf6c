package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"meterbill/internal/ledger/models"
	"meterbill/internal/sentinel"
	dErrors "meterbill/pkg/domain-errors"
)

// Export captures every ledger record. The three collections are read
// concurrently and are not guaranteed to come from a single snapshot.
func (s *Service) Export(ctx context.Context) (*models.Snapshot, error) {
	var data models.SnapshotData

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tenants, err := s.tenants.List(gctx)
		data.Tenants = tenants
		return err
	})
	g.Go(func() error {
		periods, err := s.periods.List(gctx)
		data.PeriodReadings = periods
		return err
	})
	g.Go(func() error {
		readings, err := s.readings.List(gctx)
		data.TenantReadings = readings
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to export ledger")
	}

	return &models.Snapshot{
		Version:    models.SnapshotVersion,
		ExportedAt: s.now(),
		Data:       data,
	}, nil
}

// Import replaces the whole ledger with the snapshot contents. Records are
// written as given; derived fields are not recomputed.
func (s *Service) Import(ctx context.Context, snapshot *models.Snapshot) error {
	if snapshot == nil {
		return dErrors.New(dErrors.CodeValidation, "snapshot is required")
	}
	if snapshot.Version > models.SnapshotVersion {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("snapshot version %d is newer than supported version %d", snapshot.Version, models.SnapshotVersion))
	}

	data := snapshot.Data
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.clear(txCtx); err != nil {
			return err
		}
		for i := range data.Tenants {
			if err := s.tenants.Create(txCtx, &data.Tenants[i]); err != nil {
				return importErr(err, "tenant "+data.Tenants[i].ID.String())
			}
		}
		for i := range data.PeriodReadings {
			if err := s.periods.Create(txCtx, &data.PeriodReadings[i]); err != nil {
				return importErr(err, "period "+data.PeriodReadings[i].Period.String())
			}
		}
		for i := range data.TenantReadings {
			if err := s.readings.Create(txCtx, &data.TenantReadings[i]); err != nil {
				return importErr(err, "tenant reading "+data.TenantReadings[i].ID.String())
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logEvent(ctx, models.EventLedgerImported,
		"version", snapshot.Version,
		"tenants", len(data.Tenants),
		"period_readings", len(data.PeriodReadings),
		"tenant_readings", len(data.TenantReadings),
	)
	return nil
}

func importErr(err error, record string) error {
	if errors.Is(err, sentinel.ErrAlreadyUsed) {
		return dErrors.Wrap(err, dErrors.CodeConflict, "duplicate "+record+" in snapshot")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to import "+record)
}

// ClearAll deletes every tenant and reading.
func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.tx.RunInTx(ctx, s.clear); err != nil {
		return err
	}
	s.logEvent(ctx, models.EventLedgerCleared)
	return nil
}

// clear empties dependents first so foreign keys hold at every step.
func (s *Service) clear(ctx context.Context) error {
	if err := s.readings.Clear(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear tenant readings")
	}
	if err := s.periods.Clear(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear period readings")
	}
	if err := s.tenants.Clear(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear tenants")
	}
	return nil
}
