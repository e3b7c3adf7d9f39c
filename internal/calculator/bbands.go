package calculator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"MarketAdvisor/internal/model"
)

// BBANDS computes Bollinger bands with a population standard deviation.
func BBANDS[S model.Sample](series []S, period int, width float64) ([]model.BandPoint, error) {
	if err := requirePeriod("BBANDS", period); err != nil {
		return nil, err
	}
	if width < 0 || math.IsNaN(width) {
		return nil, fmt.Errorf("%w: BBANDS width must be non-negative, got %v", ErrInvalidInput, width)
	}
	if err := requireSamples("BBANDS", len(series), period); err != nil {
		return nil, err
	}

	values := scalars(series)
	out := make([]model.BandPoint, 0, len(values)-period+1)
	for i := period - 1; i < len(values); i++ {
		mean, variance := stat.PopMeanVariance(values[i-period+1:i+1], nil)
		sd := math.Sqrt(math.Max(variance, 0))
		out = append(out, model.BandPoint{
			Time:   series[i].At(),
			Upper:  mean + width*sd,
			Middle: mean,
			Lower:  mean - width*sd,
		})
	}
	return out, nil
}
