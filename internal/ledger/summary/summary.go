// Package summary compares building consumption with the tenant total for one period.
package summary

import "meterbill/internal/ledger/models"

// DiscrepancyTolerance is the number of units tenant consumption may exceed the
// building meter by before the period is flagged.
const DiscrepancyTolerance = 0.1

// Summary aggregates one period for sanity checking. It is informational only.
type Summary struct {
	BuildingUnits        float64 `json:"building_units"`
	TotalCost            float64 `json:"total_cost"`
	CostPerUnit          float64 `json:"cost_per_unit"`
	TenantCount          int     `json:"tenant_count"`
	TotalTenantUnits     float64 `json:"total_tenant_units"`
	TotalTenantCost      float64 `json:"total_tenant_cost"`
	CommonAreaUnits      float64 `json:"common_area_units"`
	CommonAreaPercentage float64 `json:"common_area_percentage"`
	HasDiscrepancy       bool    `json:"has_discrepancy"`
}

// Summarize reports the common-area share of a period and whether the tenant
// meters add up to more than the building meter recorded. A building total above
// the tenant total is common-area usage, not a discrepancy.
func Summarize(period models.PeriodReading, readings []models.TenantPeriodReading) Summary {
	s := Summary{
		BuildingUnits: period.UnitsConsumed,
		TotalCost:     period.TotalCost,
		TenantCount:   len(readings),
	}
	for _, r := range readings {
		s.TotalTenantUnits += r.UnitsConsumed
		s.TotalTenantCost += r.ProportionalCost
	}
	if s.BuildingUnits != 0 {
		s.CostPerUnit = s.TotalCost / s.BuildingUnits
	}

	s.CommonAreaUnits = max(0, s.BuildingUnits-s.TotalTenantUnits)
	if s.BuildingUnits > 0 {
		s.CommonAreaPercentage = s.CommonAreaUnits / s.BuildingUnits
	}
	s.HasDiscrepancy = s.TotalTenantUnits-s.BuildingUnits > DiscrepancyTolerance
	return s
}
