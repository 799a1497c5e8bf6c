package models

import (
	"math"
	"strings"
	"time"

	id "meterbill/pkg/domain"
	dErrors "meterbill/pkg/domain-errors"
)

type AddTenantRequest struct {
	Name string `json:"name"`
	Room string `json:"room"`
}

func (r *AddTenantRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Room = strings.TrimSpace(r.Room)
}

func (r *AddTenantRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeValidation, "request is required")
	}
	return validateLabels(r.Name, r.Room)
}

// RecordPeriodReadingRequest submits the building meter for a period.
// Pointer values distinguish a missing figure from an explicit zero.
type RecordPeriodReadingRequest struct {
	Period     id.PeriodKey `json:"period"`
	ReadAt     time.Time    `json:"read_at"`
	MeterValue *float64     `json:"meter_value"`
	TotalCost  *float64     `json:"total_cost"`
}

// ReadTime returns the submitted read time, defaulting to the start of the period.
func (r *RecordPeriodReadingRequest) ReadTime() time.Time {
	if r.ReadAt.IsZero() {
		return r.Period.Start()
	}
	return r.ReadAt
}

func (r *RecordPeriodReadingRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeValidation, "request is required")
	}
	if r.Period.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "period is required")
	}
	if err := requireReadTime(r.ReadAt, r.Period); err != nil {
		return err
	}
	if err := requireAmount(r.MeterValue, "meter value"); err != nil {
		return err
	}
	return requireAmount(r.TotalCost, "total cost")
}

// RecordTenantReadingRequest submits one tenant's sub-meter for a period.
type RecordTenantReadingRequest struct {
	TenantID   id.TenantID  `json:"tenant_id"`
	Period     id.PeriodKey `json:"period"`
	ReadAt     time.Time    `json:"read_at"`
	MeterValue *float64     `json:"meter_value"`
}

// ReadTime returns the submitted read time, defaulting to the start of the period.
func (r *RecordTenantReadingRequest) ReadTime() time.Time {
	if r.ReadAt.IsZero() {
		return r.Period.Start()
	}
	return r.ReadAt
}

func (r *RecordTenantReadingRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeValidation, "request is required")
	}
	if r.TenantID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "tenant ID is required")
	}
	if r.Period.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "period is required")
	}
	if err := requireReadTime(r.ReadAt, r.Period); err != nil {
		return err
	}
	return requireAmount(r.MeterValue, "meter value")
}

// requireReadTime keeps a submitted read time inside its billing month so that
// read-time order of history matches period order. Zero means the period start.
func requireReadTime(readAt time.Time, period id.PeriodKey) error {
	if readAt.IsZero() {
		return nil
	}
	if readAt.Before(period.Start()) || !readAt.Before(period.Next().Start()) {
		return dErrors.New(dErrors.CodeValidation, "read time must fall within period "+period.String())
	}
	return nil
}

func requireAmount(v *float64, label string) error {
	if v == nil {
		return dErrors.New(dErrors.CodeValidation, label+" is required")
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return dErrors.New(dErrors.CodeValidation, label+" must be a finite number")
	}
	if *v < 0 {
		return dErrors.New(dErrors.CodeValidation, label+" cannot be negative")
	}
	return nil
}
