package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "meterbill/pkg/domain-errors"
)

func TestParsePeriodKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PeriodKey
		wantErr bool
	}{
		{name: "january", input: "2026-01", want: PeriodKey{Year: 2026, Month: time.January}},
		{name: "december", input: "2025-12", want: PeriodKey{Year: 2025, Month: time.December}},
		{name: "month zero", input: "2026-00", wantErr: true},
		{name: "month thirteen", input: "2026-13", wantErr: true},
		{name: "missing dash", input: "202601", wantErr: true},
		{name: "letters", input: "20a6-01", wantErr: true},
		{name: "trailing garbage", input: "2026-1x", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriodKey(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestPeriodKeyOrdering(t *testing.T) {
	dec := PeriodKey{Year: 2025, Month: time.December}
	jan := PeriodKey{Year: 2026, Month: time.January}
	feb := PeriodKey{Year: 2026, Month: time.February}

	assert.True(t, dec.Before(jan))
	assert.True(t, jan.Before(feb))
	assert.False(t, feb.Before(jan))
	assert.False(t, jan.Before(jan))
	assert.Less(t, dec.String(), jan.String(), "string form must sort like the period")
	assert.Equal(t, jan, dec.Next())
	assert.Equal(t, feb, jan.Next())
}

func TestPeriodOf(t *testing.T) {
	at := time.Date(2026, time.March, 31, 23, 0, 0, 0, time.UTC)
	p := PeriodOf(at)
	assert.Equal(t, PeriodKey{Year: 2026, Month: time.March}, p)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), p.Start())
}

func TestPeriodKeyText(t *testing.T) {
	var p PeriodKey
	require.NoError(t, p.UnmarshalText([]byte("2026-04")))
	b, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2026-04", string(b))

	require.Error(t, p.UnmarshalText([]byte("April")))
}
