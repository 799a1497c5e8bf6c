package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"meterbill/internal/ledger/models"
)

func readings(units ...float64) []models.TenantPeriodReading {
	out := make([]models.TenantPeriodReading, len(units))
	for i, u := range units {
		out[i] = models.TenantPeriodReading{UnitsConsumed: u, ProportionalCost: u / 10}
	}
	return out
}

func TestSummarize(t *testing.T) {
	t.Run("building above tenants is common area", func(t *testing.T) {
		s := Summarize(models.PeriodReading{UnitsConsumed: 120, TotalCost: 18.5}, readings(60, 40))

		assert.Equal(t, 100.0, s.TotalTenantUnits)
		assert.Equal(t, 20.0, s.CommonAreaUnits)
		assert.InDelta(t, 20.0/120.0, s.CommonAreaPercentage, 1e-12)
		assert.InDelta(t, 18.5/120.0, s.CostPerUnit, 1e-12)
		assert.InDelta(t, 10.0, s.TotalTenantCost, 1e-12)
		assert.Equal(t, 2, s.TenantCount)
		assert.False(t, s.HasDiscrepancy)
	})

	t.Run("tenants above building is a discrepancy", func(t *testing.T) {
		s := Summarize(models.PeriodReading{UnitsConsumed: 100}, readings(60, 40.5))

		assert.Equal(t, 0.0, s.CommonAreaUnits)
		assert.True(t, s.HasDiscrepancy)
	})

	t.Run("overshoot within tolerance is accepted", func(t *testing.T) {
		s := Summarize(models.PeriodReading{UnitsConsumed: 100}, readings(60, 40.05))
		assert.False(t, s.HasDiscrepancy)
	})

	t.Run("negative building consumption is flagged", func(t *testing.T) {
		s := Summarize(models.PeriodReading{UnitsConsumed: -20, TotalCost: 5}, readings(0))

		assert.True(t, s.HasDiscrepancy)
		assert.Equal(t, 0.0, s.CommonAreaPercentage)
		assert.Equal(t, 0.0, s.CommonAreaUnits)
	})

	t.Run("empty building period", func(t *testing.T) {
		s := Summarize(models.PeriodReading{}, nil)

		assert.Equal(t, 0.0, s.CostPerUnit)
		assert.Equal(t, 0.0, s.CommonAreaPercentage)
		assert.False(t, s.HasDiscrepancy)
	})
}
