package calculator

import (
	"gonum.org/v1/gonum/floats"

	"MarketAdvisor/internal/model"
)

// STOCH computes the stochastic oscillator. %K is 0 when the window is flat.
// %D is the simple average of the last dPeriod %K values.
func STOCH(ticks []model.Tick, kPeriod, dPeriod int) (*model.StochResult, error) {
	if err := requirePeriod("STOCH", kPeriod); err != nil {
		return nil, err
	}
	if err := requirePeriod("STOCH", dPeriod); err != nil {
		return nil, err
	}
	if err := requireSamples("STOCH", len(ticks), kPeriod+dPeriod); err != nil {
		return nil, err
	}

	highs := make([]float64, len(ticks))
	lows := make([]float64, len(ticks))
	for i, t := range ticks {
		highs[i] = t.High
		lows[i] = t.Low
	}

	k := make([]model.StochasticPoint, 0, len(ticks)-kPeriod+1)
	for i := kPeriod - 1; i < len(ticks); i++ {
		hi := floats.Max(highs[i-kPeriod+1 : i+1])
		lo := floats.Min(lows[i-kPeriod+1 : i+1])

		var v float64
		if hi != lo {
			v = (ticks[i].Close - lo) / (hi - lo) * 100
		}
		k = append(k, model.StochasticPoint{Time: ticks[i].Timestamp, Value: v})
	}

	avg, err := MA(k, dPeriod)
	if err != nil {
		return nil, err
	}
	d := make([]model.StochasticPoint, len(avg))
	for i, p := range avg {
		d[i] = model.StochasticPoint{Time: p.Time, Value: p.Value}
	}

	return &model.StochResult{K: k, D: d}, nil
}
