// Package consumption derives consumed units for a new meter reading from the
// reading history of the same subject.
package consumption

import (
	"math"
	"time"
)

// Subject distinguishes the building meter from a tenant sub-meter.
type Subject int

const (
	// Building consumption is reported as-is, negative values included.
	Building Subject = iota
	// Tenant consumption is clamped at zero.
	Tenant
)

func (s Subject) String() string {
	switch s {
	case Building:
		return "building"
	case Tenant:
		return "tenant"
	default:
		return "unknown"
	}
}

// Reading is one prior observation of a subject's meter.
type Reading struct {
	ReadAt     time.Time
	MeterValue float64
}

// Result is the outcome of resolving a new reading against history.
type Result struct {
	PreviousValue float64
	UnitsConsumed float64
}

// Resolve picks the chronologically latest reading in history as the predecessor of
// newValue. Readings with equal timestamps resolve to the one appearing last, so
// callers must pass history in insertion order. An empty history resolves to zero.
func Resolve(history []Reading, newValue float64, subject Subject) Result {
	previous := 0.0
	if latest, ok := Latest(history); ok {
		previous = latest.MeterValue
	}
	units := newValue - previous
	if subject == Tenant {
		units = math.Max(0, units)
	}
	return Result{PreviousValue: previous, UnitsConsumed: units}
}

// Latest returns the chronologically latest reading, last-inserted on ties.
func Latest(history []Reading) (Reading, bool) {
	if len(history) == 0 {
		return Reading{}, false
	}
	best := history[0]
	for _, r := range history[1:] {
		if !r.ReadAt.Before(best.ReadAt) {
			best = r
		}
	}
	return best, true
}
