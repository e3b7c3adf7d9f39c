package calculator

import (
	"MarketAdvisor/internal/model"
)

// rsNoLoss is the relative strength used when a window has no losses.
const rsNoLoss = 100.0

// RSI computes the relative strength index over each window of period changes.
// Every window is summed from scratch; there is no Wilder smoothing.
// Requires at least period+1 samples.
func RSI[S model.Sample](series []S, period int) ([]model.IndicatorPoint, error) {
	if err := requirePeriod("RSI", period); err != nil {
		return nil, err
	}
	if err := requireSamples("RSI", len(series), period+1); err != nil {
		return nil, err
	}

	values := scalars(series)
	p := float64(period)
	out := make([]model.IndicatorPoint, 0, len(values)-period)
	for i := period; i < len(values); i++ {
		var gains, losses float64
		for j := i - period + 1; j <= i; j++ {
			change := values[j] - values[j-1]
			if change > 0 {
				gains += change
			} else {
				losses -= change
			}
		}
		avgGain, avgLoss := gains/p, losses/p

		rs := rsNoLoss
		if avgLoss != 0 {
			rs = avgGain / avgLoss
		}
		out = append(out, model.IndicatorPoint{Time: series[i].At(), Value: 100 - 100/(1+rs)})
	}
	return out, nil
}
