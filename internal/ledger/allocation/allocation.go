// Package allocation splits a period's total cost across tenant readings in
// proportion to consumed units.
package allocation

import (
	"slices"

	"github.com/shopspring/decimal"

	id "meterbill/pkg/domain"
)

// Entry is one tenant reading taking part in an allocation.
type Entry struct {
	ID            id.TenantReadingID
	UnitsConsumed float64
}

// Share is the allocation outcome for one entry.
type Share struct {
	ID               id.TenantReadingID
	Proportion       float64
	ProportionalCost float64
}

// TotalUnits sums consumed units across entries.
func TotalUnits(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.UnitsConsumed
	}
	return total
}

// Allocate distributes totalCost across entries proportionally to consumed units.
// Output preserves input order. When no units were consumed every share is zero
// and the cost stays unallocated. Costs are not rounded, so their sum may differ
// from totalCost by floating-point error.
func Allocate(entries []Entry, totalCost float64) []Share {
	shares := make([]Share, len(entries))
	total := TotalUnits(entries)
	for i, e := range entries {
		shares[i].ID = e.ID
		if total == 0 {
			continue
		}
		proportion := e.UnitsConsumed / total
		shares[i].Proportion = proportion
		shares[i].ProportionalCost = proportion * totalCost
	}
	return shares
}

// AllocateRounded behaves like Allocate but settles costs in steps of
// 10^-places so the shares sum to totalCost rounded to places. Every cost is
// first truncated to places decimals; the leftover steps then go one each to
// the shares with the largest truncated remainder, earlier entries first on a
// tie. No cost is negative or more than one step away from its exact share.
func AllocateRounded(entries []Entry, totalCost float64, places int32) []Share {
	shares := Allocate(entries, totalCost)
	total := TotalUnits(entries)
	if total == 0 || len(entries) == 0 {
		return shares
	}

	target := decimal.NewFromFloat(totalCost).Round(places)
	step := decimal.New(1, -places)
	units := decimal.NewFromFloat(total)

	costs := make([]decimal.Decimal, len(entries))
	remainders := make([]decimal.Decimal, len(entries))
	allocated := decimal.Zero
	for i, e := range entries {
		exact := target.Mul(decimal.NewFromFloat(e.UnitsConsumed)).Div(units)
		costs[i] = exact.Truncate(places)
		remainders[i] = exact.Sub(costs[i])
		allocated = allocated.Add(costs[i])
	}

	leftover := int(target.Sub(allocated).Div(step).Round(0).IntPart())
	leftover = min(max(leftover, 0), len(entries))

	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return remainders[b].Cmp(remainders[a])
	})
	for _, i := range order[:leftover] {
		costs[i] = costs[i].Add(step)
	}

	for i := range shares {
		shares[i].ProportionalCost = costs[i].InexactFloat64()
	}
	return shares
}
