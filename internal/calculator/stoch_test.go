package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketAdvisor/internal/model"
)

func TestSTOCHKnownValues(t *testing.T) {
	ticks := []model.Tick{
		{Timestamp: day0, High: 10, Low: 5, Close: 8},
		{Timestamp: day0.AddDate(0, 0, 1), High: 12, Low: 6, Close: 11},
		{Timestamp: day0.AddDate(0, 0, 2), High: 11, Low: 7, Close: 7},
		{Timestamp: day0.AddDate(0, 0, 3), High: 13, Low: 9, Close: 13},
	}

	got, err := STOCH(ticks, 2, 2)
	require.NoError(t, err)
	require.Len(t, got.K, 3)
	require.Len(t, got.D, 2)

	// windows: [5,12] -> 6/7, [6,12] -> 1/6, [7,13] -> 1
	assert.InDelta(t, 600.0/7, got.K[0].Value, 1e-9)
	assert.InDelta(t, 100.0/6, got.K[1].Value, 1e-9)
	assert.InDelta(t, 100.0, got.K[2].Value, 1e-9)

	assert.InDelta(t, (600.0/7+100.0/6)/2, got.D[0].Value, 1e-9)
	assert.Equal(t, got.K[2].Time, got.D[1].Time)
}

func TestSTOCHFlatWindowIsZero(t *testing.T) {
	ticks := make([]model.Tick, 17)
	for i := range ticks {
		ticks[i] = model.Tick{Timestamp: day0.AddDate(0, 0, i), High: 5, Low: 5, Close: 5}
	}
	got, err := STOCH(ticks, 14, 3)
	require.NoError(t, err)
	for _, k := range got.K {
		assert.Equal(t, 0.0, k.Value)
	}
}

func TestSTOCHBounded(t *testing.T) {
	got, err := STOCH(wave(90), 14, 3)
	require.NoError(t, err)
	assert.Len(t, got.K, 77)
	assert.Len(t, got.D, 75)
	for _, k := range got.K {
		assert.GreaterOrEqual(t, k.Value, 0.0)
		assert.LessOrEqual(t, k.Value, 100.0)
	}
}

func TestSTOCHMinimumSamples(t *testing.T) {
	_, err := STOCH(wave(16), 14, 3)
	assert.ErrorIs(t, err, ErrInsufficientData)
}
