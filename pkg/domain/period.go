package domain

import (
	"fmt"
	"strconv"
	"time"

	dErrors "meterbill/pkg/domain-errors"
)

// PeriodKey identifies one monthly billing cycle.
type PeriodKey struct {
	Year  int
	Month time.Month
}

// NewPeriodKey validates year and month.
func NewPeriodKey(year int, month time.Month) (PeriodKey, error) {
	if year < 1 || year > 9999 {
		return PeriodKey{}, dErrors.New(dErrors.CodeValidation, "period year out of range")
	}
	if month < time.January || month > time.December {
		return PeriodKey{}, dErrors.New(dErrors.CodeValidation, "period month out of range")
	}
	return PeriodKey{Year: year, Month: month}, nil
}

// PeriodOf returns the billing period containing t, in t's location.
func PeriodOf(t time.Time) PeriodKey {
	return PeriodKey{Year: t.Year(), Month: t.Month()}
}

// ParsePeriodKey parses the "YYYY-MM" form.
func ParsePeriodKey(s string) (PeriodKey, error) {
	if len(s) != 7 || s[4] != '-' {
		return PeriodKey{}, dErrors.New(dErrors.CodeValidation, "period must be formatted as YYYY-MM")
	}
	year, yErr := strconv.Atoi(s[:4])
	month, mErr := strconv.Atoi(s[5:])
	if yErr != nil || mErr != nil {
		return PeriodKey{}, dErrors.New(dErrors.CodeValidation, "period must be formatted as YYYY-MM")
	}
	return NewPeriodKey(year, time.Month(month))
}

// String renders the sortable "YYYY-MM" form used as the storage key.
func (p PeriodKey) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

func (p PeriodKey) IsZero() bool { return p.Year == 0 && p.Month == 0 }

// Before reports whether p is an earlier billing cycle than o.
func (p PeriodKey) Before(o PeriodKey) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// Next returns the following billing cycle.
func (p PeriodKey) Next() PeriodKey {
	if p.Month == time.December {
		return PeriodKey{Year: p.Year + 1, Month: time.January}
	}
	return PeriodKey{Year: p.Year, Month: p.Month + 1}
}

// Start returns midnight UTC on the first day of the period.
func (p PeriodKey) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (p PeriodKey) MarshalText() ([]byte, error) {
	if p.IsZero() {
		return []byte{}, nil
	}
	return []byte(p.String()), nil
}

func (p *PeriodKey) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*p = PeriodKey{}
		return nil
	}
	parsed, err := ParsePeriodKey(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
