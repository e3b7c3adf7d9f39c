package calculator

import (
	"math"
	"time"

	"MarketAdvisor/internal/model"
)

var day0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func ticksFromCloses(closes ...float64) []model.Tick {
	ticks := make([]model.Tick, len(closes))
	for i, c := range closes {
		ticks[i] = model.Tick{
			Symbol:    "AAPL",
			Timestamp: day0.AddDate(0, 0, i),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
		}
	}
	return ticks
}

// wave builds n ticks following a drifting sine with valid OHLC ranges.
func wave(n int) []model.Tick {
	ticks := make([]model.Tick, n)
	for i := range ticks {
		c := 100 + 10*math.Sin(float64(i)/5) + 0.3*float64(i)
		ticks[i] = model.Tick{
			Symbol:    "AAPL",
			Timestamp: day0.AddDate(0, 0, i),
			Open:      c - 0.5,
			High:      c + 1 + float64(i%3),
			Low:       c - 1 - float64(i%2),
			Close:     c,
		}
	}
	return ticks
}

func closesOf(ticks []model.Tick) []float64 {
	out := make([]float64, len(ticks))
	for i, t := range ticks {
		out[i] = t.Close
	}
	return out
}
