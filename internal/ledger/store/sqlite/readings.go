package sqlite

import (
	"context"
	"fmt"

	"meterbill/internal/ledger/models"
	id "meterbill/pkg/domain"
)

// TenantReadingStore persists tenant sub-meter readings, unique per (tenant, period).
type TenantReadingStore struct {
	l *Ledger
}

func (s *TenantReadingStore) Create(ctx context.Context, r *models.TenantPeriodReading) error {
	if r == nil {
		return fmt.Errorf("tenant reading is required")
	}
	row := toReadingRow(r)
	if err := s.l.conn(ctx).Create(&row).Error; err != nil {
		return translate(err, "create tenant reading for "+row.Period)
	}
	return nil
}

func (s *TenantReadingStore) Update(ctx context.Context, r *models.TenantPeriodReading) error {
	if r == nil {
		return fmt.Errorf("tenant reading is required")
	}
	row := toReadingRow(r)
	res := s.l.conn(ctx).Model(&readingRow{}).Where("id = ?", row.ID).Updates(map[string]any{
		"tenant_id":         row.TenantID,
		"period_reading_id": row.PeriodReadingID,
		"period":            row.Period,
		"read_at":           row.ReadAt,
		"meter_value":       row.MeterValue,
		"previous_value":    row.PreviousValue,
		"units_consumed":    row.UnitsConsumed,
		"proportional_cost": row.ProportionalCost,
		"proportion":        row.Proportion,
		"updated_at":        row.UpdatedAt,
	})
	return requireAffected(res, "update tenant reading")
}

func (s *TenantReadingStore) Delete(ctx context.Context, readingID id.TenantReadingID) error {
	res := s.l.conn(ctx).Where("id = ?", readingID.String()).Delete(&readingRow{})
	return requireAffected(res, "delete tenant reading")
}

func (s *TenantReadingStore) FindByID(ctx context.Context, readingID id.TenantReadingID) (*models.TenantPeriodReading, error) {
	return s.findOne(ctx, "id = ?", readingID.String())
}

func (s *TenantReadingStore) FindByTenantAndPeriod(ctx context.Context, tenantID id.TenantID, period id.PeriodKey) (*models.TenantPeriodReading, error) {
	return s.findOne(ctx, "tenant_id = ? AND period = ?", tenantID.String(), period.String())
}

// ListByTenant returns the tenant's readings ordered by read time, then insertion.
func (s *TenantReadingStore) ListByTenant(ctx context.Context, tenantID id.TenantID) ([]models.TenantPeriodReading, error) {
	return s.list(ctx, "read_at, seq", "tenant_id = ?", tenantID.String())
}

func (s *TenantReadingStore) ListByPeriodReading(ctx context.Context, periodReadingID id.PeriodReadingID) ([]models.TenantPeriodReading, error) {
	return s.list(ctx, "seq", "period_reading_id = ?", periodReadingID.String())
}

func (s *TenantReadingStore) ListByPeriod(ctx context.Context, period id.PeriodKey) ([]models.TenantPeriodReading, error) {
	return s.list(ctx, "seq", "period = ?", period.String())
}

func (s *TenantReadingStore) List(ctx context.Context) ([]models.TenantPeriodReading, error) {
	return s.list(ctx, "seq", "1 = 1")
}

func (s *TenantReadingStore) Clear(ctx context.Context) error {
	if err := s.l.conn(ctx).Exec("DELETE FROM tenant_readings").Error; err != nil {
		return translate(err, "clear tenant readings")
	}
	return nil
}

func (s *TenantReadingStore) findOne(ctx context.Context, query string, args ...any) (*models.TenantPeriodReading, error) {
	var row readingRow
	if err := s.l.conn(ctx).Where(query, args...).First(&row).Error; err != nil {
		return nil, translate(err, "find tenant reading")
	}
	r, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *TenantReadingStore) list(ctx context.Context, order, query string, args ...any) ([]models.TenantPeriodReading, error) {
	var rows []readingRow
	if err := s.l.conn(ctx).Where(query, args...).Order(order).Find(&rows).Error; err != nil {
		return nil, translate(err, "list tenant readings")
	}
	return toModels(rows, readingRow.toModel)
}
