package consumption

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestResolve(t *testing.T) {
	t.Run("empty history resolves against zero", func(t *testing.T) {
		got := Resolve(nil, 120, Building)
		assert.Equal(t, Result{PreviousValue: 0, UnitsConsumed: 120}, got)
	})

	t.Run("uses the chronologically latest reading regardless of slice order", func(t *testing.T) {
		history := []Reading{
			{ReadAt: jan.AddDate(0, 2, 0), MeterValue: 300},
			{ReadAt: jan, MeterValue: 100},
			{ReadAt: jan.AddDate(0, 1, 0), MeterValue: 200},
		}
		got := Resolve(history, 340, Building)
		assert.Equal(t, 300.0, got.PreviousValue)
		assert.Equal(t, 40.0, got.UnitsConsumed)
	})

	t.Run("ties resolve to the last inserted reading", func(t *testing.T) {
		history := []Reading{
			{ReadAt: jan, MeterValue: 100},
			{ReadAt: jan, MeterValue: 105},
		}
		got := Resolve(history, 110, Building)
		assert.Equal(t, 105.0, got.PreviousValue)
	})

	t.Run("building consumption may go negative", func(t *testing.T) {
		got := Resolve([]Reading{{ReadAt: jan, MeterValue: 500}}, 480, Building)
		assert.Equal(t, -20.0, got.UnitsConsumed)
	})

	t.Run("tenant consumption is clamped at zero", func(t *testing.T) {
		got := Resolve([]Reading{{ReadAt: jan, MeterValue: 500}}, 480, Tenant)
		assert.Equal(t, 500.0, got.PreviousValue)
		assert.Equal(t, 0.0, got.UnitsConsumed)
	})
}

func TestResolveIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		history := make([]Reading, rng.Intn(6))
		for j := range history {
			history[j] = Reading{
				ReadAt:     jan.AddDate(0, rng.Intn(4), 0),
				MeterValue: float64(rng.Intn(1000)),
			}
		}
		newValue := float64(rng.Intn(1000))
		subject := Subject(rng.Intn(2))

		first := Resolve(history, newValue, subject)
		second := Resolve(history, newValue, subject)
		require.Equal(t, first, second)
		if subject == Tenant {
			require.GreaterOrEqual(t, first.UnitsConsumed, 0.0)
		}
	}
}

func TestLatest(t *testing.T) {
	_, ok := Latest(nil)
	assert.False(t, ok)

	r, ok := Latest([]Reading{{ReadAt: jan, MeterValue: 1}})
	require.True(t, ok)
	assert.Equal(t, 1.0, r.MeterValue)
}
