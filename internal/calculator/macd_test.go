package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketAdvisor/internal/model"
)

func TestMACDLengths(t *testing.T) {
	ticks := wave(60)

	got, err := MACD(ticks)
	require.NoError(t, err)

	// EMA26 yields 35 points, so does the line; EMA9 of 35 yields 27.
	assert.Len(t, got.MACD, 35)
	assert.Len(t, got.Signal, 27)
	assert.Len(t, got.Histogram, 27)
	assert.Equal(t, ticks[25].Timestamp, got.MACD[0].Time)
}

func TestMACDLineMatchesEMADifference(t *testing.T) {
	ticks := wave(50)
	got, err := MACD(ticks)
	require.NoError(t, err)

	fast, err := EMA(ticks, 12)
	require.NoError(t, err)
	slow, err := EMA(ticks, 26)
	require.NoError(t, err)

	// fast starts 14 points earlier than slow
	for i, p := range got.MACD {
		assert.InDelta(t, fast[i+14].Value-slow[i].Value, p.Value, 1e-12)
	}
}

func TestMACDHistogramPairsTail(t *testing.T) {
	got, err := MACD(wave(45))
	require.NoError(t, err)

	offset := len(got.MACD) - len(got.Signal)
	for i, h := range got.Histogram {
		assert.Equal(t, got.MACD[offset+i].Time, h.Time)
		assert.InDelta(t, got.MACD[offset+i].Value-got.Signal[i].Value, h.Value, 1e-12)
	}
}

func TestMACDMinimumSamples(t *testing.T) {
	_, err := MACD(wave(34))
	assert.ErrorIs(t, err, ErrInsufficientData)

	got, err := MACD(wave(35))
	require.NoError(t, err)
	assert.Len(t, got.MACD, 10)
	assert.Len(t, got.Signal, 2)
}

func TestAlignByTimeUsesFirstMatch(t *testing.T) {
	fast := []model.IndicatorPoint{
		{Time: day0, Value: 10},
		{Time: day0.AddDate(0, 0, 1), Value: 20},
	}
	slow := []model.IndicatorPoint{
		{Time: day0.AddDate(0, 0, 1), Value: 5},
		{Time: day0.AddDate(0, 0, 1), Value: 7},
	}

	line := alignByTime(fast, slow)
	require.Len(t, line, 1)
	assert.Equal(t, 15.0, line[0].Value)
}
