package calculator

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"MarketAdvisor/internal/model"
)

// MA computes the simple moving average over each trailing window of period samples.
// The output has len(series)-period+1 points, stamped with the window's last sample.
func MA[S model.Sample](series []S, period int) ([]model.IndicatorPoint, error) {
	name := fmt.Sprintf("MA%d", period)
	if err := requirePeriod(name, period); err != nil {
		return nil, err
	}
	if err := requireSamples(name, len(series), period); err != nil {
		return nil, err
	}

	values := scalars(series)
	out := make([]model.IndicatorPoint, 0, len(values)-period+1)
	for i := period - 1; i < len(values); i++ {
		out = append(out, model.IndicatorPoint{
			Time:  series[i].At(),
			Value: stat.Mean(values[i-period+1:i+1], nil),
		})
	}
	return out, nil
}

func scalars[S model.Sample](series []S) []float64 {
	values := make([]float64, len(series))
	for i, s := range series {
		values[i] = s.Scalar()
	}
	return values
}
