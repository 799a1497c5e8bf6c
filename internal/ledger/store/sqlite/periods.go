package sqlite

import (
	"context"
	"fmt"

	"meterbill/internal/ledger/models"
	id "meterbill/pkg/domain"
)

// PeriodReadingStore persists building readings, one per period.
type PeriodReadingStore struct {
	l *Ledger
}

func (s *PeriodReadingStore) Create(ctx context.Context, p *models.PeriodReading) error {
	if p == nil {
		return fmt.Errorf("period reading is required")
	}
	row := toPeriodRow(p)
	if err := s.l.conn(ctx).Create(&row).Error; err != nil {
		return translate(err, "create period reading "+row.Period)
	}
	return nil
}

func (s *PeriodReadingStore) Update(ctx context.Context, p *models.PeriodReading) error {
	if p == nil {
		return fmt.Errorf("period reading is required")
	}
	row := toPeriodRow(p)
	res := s.l.conn(ctx).Model(&periodRow{}).Where("id = ?", row.ID).Updates(map[string]any{
		"period":         row.Period,
		"read_at":        row.ReadAt,
		"meter_value":    row.MeterValue,
		"total_cost":     row.TotalCost,
		"previous_value": row.PreviousValue,
		"units_consumed": row.UnitsConsumed,
		"updated_at":     row.UpdatedAt,
	})
	return requireAffected(res, "update period reading")
}

func (s *PeriodReadingStore) Delete(ctx context.Context, readingID id.PeriodReadingID) error {
	res := s.l.conn(ctx).Where("id = ?", readingID.String()).Delete(&periodRow{})
	return requireAffected(res, "delete period reading")
}

func (s *PeriodReadingStore) FindByID(ctx context.Context, readingID id.PeriodReadingID) (*models.PeriodReading, error) {
	return s.findOne(ctx, "id = ?", readingID.String())
}

func (s *PeriodReadingStore) FindByPeriod(ctx context.Context, period id.PeriodKey) (*models.PeriodReading, error) {
	return s.findOne(ctx, "period = ?", period.String())
}

// List returns building readings ordered by read time, then insertion.
func (s *PeriodReadingStore) List(ctx context.Context) ([]models.PeriodReading, error) {
	var rows []periodRow
	if err := s.l.conn(ctx).Order("read_at").Order("seq").Find(&rows).Error; err != nil {
		return nil, translate(err, "list period readings")
	}
	return toModels(rows, periodRow.toModel)
}

func (s *PeriodReadingStore) Clear(ctx context.Context) error {
	if err := s.l.conn(ctx).Exec("DELETE FROM period_readings").Error; err != nil {
		return translate(err, "clear period readings")
	}
	return nil
}

func (s *PeriodReadingStore) findOne(ctx context.Context, query string, arg any) (*models.PeriodReading, error) {
	var row periodRow
	if err := s.l.conn(ctx).Where(query, arg).First(&row).Error; err != nil {
		return nil, translate(err, "find period reading")
	}
	p, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &p, nil
}
