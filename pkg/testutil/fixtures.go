package testutil

import (
	"time"

	"github.com/google/uuid"

	"meterbill/internal/ledger/models"
	id "meterbill/pkg/domain"
)

// TestIDs provides pre-generated IDs for deterministic test data.
var TestIDs = struct {
	TenantID1        id.TenantID
	TenantID2        id.TenantID
	TenantID3        id.TenantID
	PeriodReadingID1 id.PeriodReadingID
	PeriodReadingID2 id.PeriodReadingID
	TenantReadingID1 id.TenantReadingID
	TenantReadingID2 id.TenantReadingID
}{
	TenantID1:        id.TenantID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000001")),
	TenantID2:        id.TenantID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000002")),
	TenantID3:        id.TenantID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000003")),
	PeriodReadingID1: id.PeriodReadingID(uuid.MustParse("bbbb0000-0000-0000-0000-000000000001")),
	PeriodReadingID2: id.PeriodReadingID(uuid.MustParse("bbbb0000-0000-0000-0000-000000000002")),
	TenantReadingID1: id.TenantReadingID(uuid.MustParse("cccc0000-0000-0000-0000-000000000001")),
	TenantReadingID2: id.TenantReadingID(uuid.MustParse("cccc0000-0000-0000-0000-000000000002")),
}

// Period returns the period key for year and month, panicking on invalid input.
func Period(year int, month time.Month) id.PeriodKey {
	p, err := id.NewPeriodKey(year, month)
	if err != nil {
		panic(err)
	}
	return p
}

// Float returns a pointer to v for request fields.
func Float(v float64) *float64 { return &v }

// TenantBuilder provides a fluent interface for building test tenants.
type TenantBuilder struct {
	tenant *models.Tenant
}

// NewTenantBuilder creates a TenantBuilder with an active tenant.
func NewTenantBuilder() *TenantBuilder {
	now := time.Now()
	return &TenantBuilder{
		tenant: &models.Tenant{
			ID:        id.NewTenantID(),
			Name:      "Test Tenant",
			Room:      "1A",
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func (b *TenantBuilder) WithID(tenantID id.TenantID) *TenantBuilder {
	b.tenant.ID = tenantID
	return b
}

func (b *TenantBuilder) WithName(name string) *TenantBuilder {
	b.tenant.Name = name
	return b
}

func (b *TenantBuilder) WithRoom(room string) *TenantBuilder {
	b.tenant.Room = room
	return b
}

func (b *TenantBuilder) Inactive() *TenantBuilder {
	b.tenant.Active = false
	return b
}

func (b *TenantBuilder) Build() *models.Tenant {
	return b.tenant
}

// PeriodReadingBuilder builds building-meter readings with derived units kept consistent.
type PeriodReadingBuilder struct {
	reading *models.PeriodReading
}

// NewPeriodReadingBuilder defaults to January 2026 with a first-ever reading of 100 units.
func NewPeriodReadingBuilder() *PeriodReadingBuilder {
	period := Period(2026, time.January)
	return &PeriodReadingBuilder{
		reading: models.NewPeriodReading(id.NewPeriodReadingID(), period, period.Start(), 100, 10, 0, time.Now()),
	}
}

func (b *PeriodReadingBuilder) WithID(readingID id.PeriodReadingID) *PeriodReadingBuilder {
	b.reading.ID = readingID
	return b
}

// ForPeriod moves the reading and its read time to period.
func (b *PeriodReadingBuilder) ForPeriod(period id.PeriodKey) *PeriodReadingBuilder {
	b.reading.Period = period
	b.reading.ReadAt = period.Start()
	return b
}

func (b *PeriodReadingBuilder) ReadAt(t time.Time) *PeriodReadingBuilder {
	b.reading.ReadAt = t
	return b
}

// WithMeter sets the meter and previous values and re-derives consumption.
func (b *PeriodReadingBuilder) WithMeter(value, previous float64) *PeriodReadingBuilder {
	b.reading.MeterValue = value
	b.reading.PreviousValue = previous
	b.reading.UnitsConsumed = value - previous
	return b
}

func (b *PeriodReadingBuilder) WithCost(cost float64) *PeriodReadingBuilder {
	b.reading.TotalCost = cost
	return b
}

func (b *PeriodReadingBuilder) Build() *models.PeriodReading {
	return b.reading
}

// TenantReadingBuilder builds tenant sub-meter readings.
type TenantReadingBuilder struct {
	reading *models.TenantPeriodReading
}

// NewTenantReadingBuilder creates a reading owned by period for TestIDs.TenantID1.
func NewTenantReadingBuilder(period *models.PeriodReading) *TenantReadingBuilder {
	return &TenantReadingBuilder{
		reading: models.NewTenantPeriodReading(id.NewTenantReadingID(), TestIDs.TenantID1, period, period.ReadAt, 50, 0, time.Now()),
	}
}

func (b *TenantReadingBuilder) WithID(readingID id.TenantReadingID) *TenantReadingBuilder {
	b.reading.ID = readingID
	return b
}

func (b *TenantReadingBuilder) WithTenantID(tenantID id.TenantID) *TenantReadingBuilder {
	b.reading.TenantID = tenantID
	return b
}

func (b *TenantReadingBuilder) ReadAt(t time.Time) *TenantReadingBuilder {
	b.reading.ReadAt = t
	return b
}

// WithMeter sets the meter and previous values and re-derives clamped consumption.
func (b *TenantReadingBuilder) WithMeter(value, previous float64) *TenantReadingBuilder {
	b.reading.Resubmit(models.TenantReadingUpdate{MeterValue: value, PreviousValue: previous}, b.reading.UpdatedAt)
	return b
}

func (b *TenantReadingBuilder) Build() *models.TenantPeriodReading {
	return b.reading
}
