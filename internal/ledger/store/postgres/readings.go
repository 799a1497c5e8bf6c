package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"meterbill/internal/ledger/models"
	"meterbill/internal/sentinel"
	id "meterbill/pkg/domain"
)

// TenantReadingStore persists tenant sub-meter readings, unique per (tenant, period).
type TenantReadingStore struct {
	l *Ledger
}

const readingColumns = `id, tenant_id, period_reading_id, period, read_at, meter_value, previous_value,
	units_consumed, proportional_cost, proportion, created_at, updated_at`

func (s *TenantReadingStore) Create(ctx context.Context, r *models.TenantPeriodReading) error {
	if r == nil {
		return fmt.Errorf("tenant reading is required")
	}
	query := `
		INSERT INTO tenant_readings (` + readingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.l.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(r.ID),
		uuid.UUID(r.TenantID),
		uuid.UUID(r.PeriodReadingID),
		r.Period.String(),
		r.ReadAt,
		r.MeterValue,
		r.PreviousValue,
		r.UnitsConsumed,
		r.ProportionalCost,
		r.Proportion,
		r.CreatedAt,
		r.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tenant reading for %s already recorded: %w", r.Period, sentinel.ErrAlreadyUsed)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("period reading %s: %w", r.PeriodReadingID, sentinel.ErrNotFound)
		}
		return fmt.Errorf("create tenant reading: %w", err)
	}
	return nil
}

func (s *TenantReadingStore) Update(ctx context.Context, r *models.TenantPeriodReading) error {
	if r == nil {
		return fmt.Errorf("tenant reading is required")
	}
	query := `
		UPDATE tenant_readings
		SET tenant_id = $2, period_reading_id = $3, period = $4, read_at = $5, meter_value = $6,
		    previous_value = $7, units_consumed = $8, proportional_cost = $9, proportion = $10,
		    updated_at = $11
		WHERE id = $1
	`
	res, err := s.l.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(r.ID),
		uuid.UUID(r.TenantID),
		uuid.UUID(r.PeriodReadingID),
		r.Period.String(),
		r.ReadAt,
		r.MeterValue,
		r.PreviousValue,
		r.UnitsConsumed,
		r.ProportionalCost,
		r.Proportion,
		r.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tenant reading for %s already recorded: %w", r.Period, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("update tenant reading: %w", err)
	}
	return requireAffected(res, "update tenant reading")
}

func (s *TenantReadingStore) Delete(ctx context.Context, readingID id.TenantReadingID) error {
	res, err := s.l.execer(ctx).ExecContext(ctx, `DELETE FROM tenant_readings WHERE id = $1`, uuid.UUID(readingID))
	if err != nil {
		return fmt.Errorf("delete tenant reading: %w", err)
	}
	return requireAffected(res, "delete tenant reading")
}

func (s *TenantReadingStore) FindByID(ctx context.Context, readingID id.TenantReadingID) (*models.TenantPeriodReading, error) {
	query := `SELECT ` + readingColumns + ` FROM tenant_readings WHERE id = $1`
	return s.findOne(ctx, query, uuid.UUID(readingID))
}

func (s *TenantReadingStore) FindByTenantAndPeriod(ctx context.Context, tenantID id.TenantID, period id.PeriodKey) (*models.TenantPeriodReading, error) {
	query := `SELECT ` + readingColumns + ` FROM tenant_readings WHERE tenant_id = $1 AND period = $2`
	return s.findOne(ctx, query, uuid.UUID(tenantID), period.String())
}

// ListByTenant returns the tenant's readings ordered by read time, then insertion.
func (s *TenantReadingStore) ListByTenant(ctx context.Context, tenantID id.TenantID) ([]models.TenantPeriodReading, error) {
	return s.query(ctx, `SELECT `+readingColumns+` FROM tenant_readings WHERE tenant_id = $1 ORDER BY read_at, seq`,
		uuid.UUID(tenantID))
}

func (s *TenantReadingStore) ListByPeriodReading(ctx context.Context, periodReadingID id.PeriodReadingID) ([]models.TenantPeriodReading, error) {
	return s.query(ctx, `SELECT `+readingColumns+` FROM tenant_readings WHERE period_reading_id = $1 ORDER BY seq`,
		uuid.UUID(periodReadingID))
}

func (s *TenantReadingStore) ListByPeriod(ctx context.Context, period id.PeriodKey) ([]models.TenantPeriodReading, error) {
	return s.query(ctx, `SELECT `+readingColumns+` FROM tenant_readings WHERE period = $1 ORDER BY seq`, period.String())
}

func (s *TenantReadingStore) List(ctx context.Context) ([]models.TenantPeriodReading, error) {
	return s.query(ctx, `SELECT `+readingColumns+` FROM tenant_readings ORDER BY seq`)
}

func (s *TenantReadingStore) Clear(ctx context.Context) error {
	if _, err := s.l.execer(ctx).ExecContext(ctx, `DELETE FROM tenant_readings`); err != nil {
		return fmt.Errorf("clear tenant readings: %w", err)
	}
	return nil
}

func (s *TenantReadingStore) findOne(ctx context.Context, query string, args ...any) (*models.TenantPeriodReading, error) {
	r, err := scanTenantReading(s.l.execer(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find tenant reading: %w", err)
	}
	return r, nil
}

func (s *TenantReadingStore) query(ctx context.Context, query string, args ...any) ([]models.TenantPeriodReading, error) {
	rows, err := s.l.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tenant readings: %w", err)
	}
	defer rows.Close()

	readings := make([]models.TenantPeriodReading, 0)
	for rows.Next() {
		r, err := scanTenantReading(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant reading: %w", err)
		}
		readings = append(readings, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tenant readings: %w", err)
	}
	return readings, nil
}

func scanTenantReading(row rowScanner) (*models.TenantPeriodReading, error) {
	var r models.TenantPeriodReading
	var readingID, tenantID, periodReadingID uuid.UUID
	var period string
	if err := row.Scan(&readingID, &tenantID, &periodReadingID, &period, &r.ReadAt, &r.MeterValue,
		&r.PreviousValue, &r.UnitsConsumed, &r.ProportionalCost, &r.Proportion, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	key, err := id.ParsePeriodKey(period)
	if err != nil {
		return nil, fmt.Errorf("stored period %q: %w", period, err)
	}
	r.ID = id.TenantReadingID(readingID)
	r.TenantID = id.TenantID(tenantID)
	r.PeriodReadingID = id.PeriodReadingID(periodReadingID)
	r.Period = key
	return &r, nil
}
