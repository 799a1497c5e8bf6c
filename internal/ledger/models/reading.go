package models

import (
	"math"
	"time"

	id "meterbill/pkg/domain"
)

// PeriodReading is the building-wide meter snapshot for one billing period.
// UnitsConsumed is derived from MeterValue and PreviousValue and may be negative
// after a meter fault; the summary surfaces that as a discrepancy.
type PeriodReading struct {
	ID            id.PeriodReadingID `json:"id"`
	Period        id.PeriodKey       `json:"period"`
	ReadAt        time.Time          `json:"read_at"`
	MeterValue    float64            `json:"meter_value"`
	TotalCost     float64            `json:"total_cost"`
	PreviousValue float64            `json:"previous_value"`
	UnitsConsumed float64            `json:"units_consumed"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// PeriodReadingUpdate names the mutable fields of a recorded period.
// PreviousValue is deliberately absent: a correction never re-resolves history.
type PeriodReadingUpdate struct {
	ReadAt     time.Time
	MeterValue float64
	TotalCost  float64
}

func NewPeriodReading(readingID id.PeriodReadingID, period id.PeriodKey, readAt time.Time, meterValue, totalCost, previousValue float64, now time.Time) *PeriodReading {
	return &PeriodReading{
		ID:            readingID,
		Period:        period,
		ReadAt:        readAt,
		MeterValue:    meterValue,
		TotalCost:     totalCost,
		PreviousValue: previousValue,
		UnitsConsumed: meterValue - previousValue,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Correct overwrites the meter value and cost and recomputes consumption
// against the PreviousValue captured when the period was first recorded.
func (p *PeriodReading) Correct(update PeriodReadingUpdate, now time.Time) {
	if !update.ReadAt.IsZero() {
		p.ReadAt = update.ReadAt
	}
	p.MeterValue = update.MeterValue
	p.TotalCost = update.TotalCost
	p.UnitsConsumed = p.MeterValue - p.PreviousValue
	p.UpdatedAt = now
}

// TenantPeriodReading is one tenant's sub-meter reading within a period.
type TenantPeriodReading struct {
	ID               id.TenantReadingID `json:"id"`
	TenantID         id.TenantID        `json:"tenant_id"`
	PeriodReadingID  id.PeriodReadingID `json:"period_reading_id"`
	Period           id.PeriodKey       `json:"period"`
	ReadAt           time.Time          `json:"read_at"`
	MeterValue       float64            `json:"meter_value"`
	PreviousValue    float64            `json:"previous_value"`
	UnitsConsumed    float64            `json:"units_consumed"`
	ProportionalCost float64            `json:"proportional_cost"`
	Proportion       float64            `json:"proportion"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// TenantReadingUpdate names the fields re-derived when a tenant resubmits a period.
type TenantReadingUpdate struct {
	ReadAt        time.Time
	MeterValue    float64
	PreviousValue float64
}

func NewTenantPeriodReading(readingID id.TenantReadingID, tenantID id.TenantID, period *PeriodReading, readAt time.Time, meterValue, previousValue float64, now time.Time) *TenantPeriodReading {
	return &TenantPeriodReading{
		ID:              readingID,
		TenantID:        tenantID,
		PeriodReadingID: period.ID,
		Period:          period.Period,
		ReadAt:          readAt,
		MeterValue:      meterValue,
		PreviousValue:   previousValue,
		UnitsConsumed:   tenantUnits(meterValue, previousValue),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Resubmit replaces the meter value and predecessor and re-derives consumption.
// The allocation fields are left for the next reconciliation to overwrite.
func (r *TenantPeriodReading) Resubmit(update TenantReadingUpdate, now time.Time) {
	if !update.ReadAt.IsZero() {
		r.ReadAt = update.ReadAt
	}
	r.MeterValue = update.MeterValue
	r.PreviousValue = update.PreviousValue
	r.UnitsConsumed = tenantUnits(update.MeterValue, update.PreviousValue)
	r.UpdatedAt = now
}

// ApplyShare records the allocation result for this reading.
func (r *TenantPeriodReading) ApplyShare(proportion, cost float64, now time.Time) {
	r.Proportion = proportion
	r.ProportionalCost = cost
	r.UpdatedAt = now
}

// tenantUnits enforces that tenant consumption is never negative.
func tenantUnits(meterValue, previousValue float64) float64 {
	return math.Max(0, meterValue-previousValue)
}
