package sqlite

import (
	"fmt"
	"time"

	"meterbill/internal/ledger/models"
	id "meterbill/pkg/domain"
)

// Seq orders rows by insertion; record IDs are kept as text for portability.

type tenantRow struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement"`
	ID        string    `gorm:"size:36;uniqueIndex;not null"`
	Name      string    `gorm:"size:128;not null"`
	Room      string    `gorm:"size:128;not null;default:''"`
	Active    bool      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (tenantRow) TableName() string { return "tenants" }

type periodRow struct {
	Seq           int64     `gorm:"primaryKey;autoIncrement"`
	ID            string    `gorm:"size:36;uniqueIndex;not null"`
	Period        string    `gorm:"size:7;uniqueIndex;not null"`
	ReadAt        time.Time `gorm:"not null"`
	MeterValue    float64   `gorm:"not null"`
	TotalCost     float64   `gorm:"not null"`
	PreviousValue float64   `gorm:"not null"`
	UnitsConsumed float64   `gorm:"not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
}

func (periodRow) TableName() string { return "period_readings" }

type readingRow struct {
	Seq              int64     `gorm:"primaryKey;autoIncrement"`
	ID               string    `gorm:"size:36;uniqueIndex;not null"`
	TenantID         string    `gorm:"size:36;not null;uniqueIndex:idx_tenant_readings_tenant_period,priority:1"`
	PeriodReadingID  string    `gorm:"size:36;not null;index"`
	Period           string    `gorm:"size:7;not null;index;uniqueIndex:idx_tenant_readings_tenant_period,priority:2"`
	ReadAt           time.Time `gorm:"not null"`
	MeterValue       float64   `gorm:"not null"`
	PreviousValue    float64   `gorm:"not null"`
	UnitsConsumed    float64   `gorm:"not null"`
	ProportionalCost float64   `gorm:"not null;default:0"`
	Proportion       float64   `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime:false"`
}

func (readingRow) TableName() string { return "tenant_readings" }

func toTenantRow(t *models.Tenant) tenantRow {
	return tenantRow{
		ID:        t.ID.String(),
		Name:      t.Name,
		Room:      t.Room,
		Active:    t.Active,
		CreatedAt: t.CreatedAt.UTC(),
		UpdatedAt: t.UpdatedAt.UTC(),
	}
}

func (r tenantRow) toModel() (models.Tenant, error) {
	tenantID, err := id.ParseTenantID(r.ID)
	if err != nil {
		return models.Tenant{}, fmt.Errorf("stored tenant id %q: %w", r.ID, err)
	}
	return models.Tenant{
		ID:        tenantID,
		Name:      r.Name,
		Room:      r.Room,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func toPeriodRow(p *models.PeriodReading) periodRow {
	return periodRow{
		ID:            p.ID.String(),
		Period:        p.Period.String(),
		ReadAt:        p.ReadAt.UTC(),
		MeterValue:    p.MeterValue,
		TotalCost:     p.TotalCost,
		PreviousValue: p.PreviousValue,
		UnitsConsumed: p.UnitsConsumed,
		CreatedAt:     p.CreatedAt.UTC(),
		UpdatedAt:     p.UpdatedAt.UTC(),
	}
}

func (r periodRow) toModel() (models.PeriodReading, error) {
	readingID, err := id.ParsePeriodReadingID(r.ID)
	if err != nil {
		return models.PeriodReading{}, fmt.Errorf("stored period reading id %q: %w", r.ID, err)
	}
	period, err := id.ParsePeriodKey(r.Period)
	if err != nil {
		return models.PeriodReading{}, fmt.Errorf("stored period %q: %w", r.Period, err)
	}
	return models.PeriodReading{
		ID:            readingID,
		Period:        period,
		ReadAt:        r.ReadAt,
		MeterValue:    r.MeterValue,
		TotalCost:     r.TotalCost,
		PreviousValue: r.PreviousValue,
		UnitsConsumed: r.UnitsConsumed,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

func toReadingRow(r *models.TenantPeriodReading) readingRow {
	return readingRow{
		ID:               r.ID.String(),
		TenantID:         r.TenantID.String(),
		PeriodReadingID:  r.PeriodReadingID.String(),
		Period:           r.Period.String(),
		ReadAt:           r.ReadAt.UTC(),
		MeterValue:       r.MeterValue,
		PreviousValue:    r.PreviousValue,
		UnitsConsumed:    r.UnitsConsumed,
		ProportionalCost: r.ProportionalCost,
		Proportion:       r.Proportion,
		CreatedAt:        r.CreatedAt.UTC(),
		UpdatedAt:        r.UpdatedAt.UTC(),
	}
}

func (r readingRow) toModel() (models.TenantPeriodReading, error) {
	readingID, err := id.ParseTenantReadingID(r.ID)
	if err != nil {
		return models.TenantPeriodReading{}, fmt.Errorf("stored tenant reading id %q: %w", r.ID, err)
	}
	tenantID, err := id.ParseTenantID(r.TenantID)
	if err != nil {
		return models.TenantPeriodReading{}, fmt.Errorf("stored tenant id %q: %w", r.TenantID, err)
	}
	periodReadingID, err := id.ParsePeriodReadingID(r.PeriodReadingID)
	if err != nil {
		return models.TenantPeriodReading{}, fmt.Errorf("stored period reading id %q: %w", r.PeriodReadingID, err)
	}
	period, err := id.ParsePeriodKey(r.Period)
	if err != nil {
		return models.TenantPeriodReading{}, fmt.Errorf("stored period %q: %w", r.Period, err)
	}
	return models.TenantPeriodReading{
		ID:               readingID,
		TenantID:         tenantID,
		PeriodReadingID:  periodReadingID,
		Period:           period,
		ReadAt:           r.ReadAt,
		MeterValue:       r.MeterValue,
		PreviousValue:    r.PreviousValue,
		UnitsConsumed:    r.UnitsConsumed,
		ProportionalCost: r.ProportionalCost,
		Proportion:       r.Proportion,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}, nil
}

// toModels converts rows with conv, failing on the first corrupt row.
func toModels[R any, M any](rows []R, conv func(R) (M, error)) ([]M, error) {
	out := make([]M, 0, len(rows))
	for _, r := range rows {
		m, err := conv(r)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
