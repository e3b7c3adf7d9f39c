package calculator

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"MarketAdvisor/internal/model"
)

// EMA computes the exponential moving average with k = 2/(period+1).
// The first point is the simple average of the first period samples.
func EMA[S model.Sample](series []S, period int) ([]model.IndicatorPoint, error) {
	name := fmt.Sprintf("EMA%d", period)
	if err := requirePeriod(name, period); err != nil {
		return nil, err
	}
	if err := requireSamples(name, len(series), period); err != nil {
		return nil, err
	}

	values := scalars(series)
	k := 2 / float64(period+1)
	prev := stat.Mean(values[:period], nil)

	out := make([]model.IndicatorPoint, 0, len(values)-period+1)
	out = append(out, model.IndicatorPoint{Time: series[period-1].At(), Value: prev})
	for i := period; i < len(values); i++ {
		prev = values[i]*k + prev*(1-k)
		out = append(out, model.IndicatorPoint{Time: series[i].At(), Value: prev})
	}
	return out, nil
}
