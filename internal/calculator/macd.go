package calculator

import (
	"MarketAdvisor/internal/model"
)

const (
	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
)

// MACD computes EMA12-EMA26, its EMA9 signal line and the histogram.
// Needs at least 35 samples.
func MACD[S model.Sample](series []S) (*model.MACDResult, error) {
	if err := requireSamples("MACD", len(series), MACDSlow+MACDSignal); err != nil {
		return nil, err
	}

	fast, err := EMA(series, MACDFast)
	if err != nil {
		return nil, err
	}
	slow, err := EMA(series, MACDSlow)
	if err != nil {
		return nil, err
	}

	line := alignByTime(fast, slow)
	if err := requireSamples("MACD", len(line), MACDSignal); err != nil {
		return nil, err
	}
	signal, err := EMA(line, MACDSignal)
	if err != nil {
		return nil, err
	}

	// The histogram pairs the tail of the line with the signal by position.
	tail := line[len(line)-len(signal):]
	hist := make([]model.IndicatorPoint, len(signal))
	for i, p := range tail {
		hist[i] = model.IndicatorPoint{Time: p.Time, Value: p.Value - signal[i].Value}
	}

	return &model.MACDResult{MACD: line, Signal: signal, Histogram: hist}, nil
}

// alignByTime keeps the fast points whose timestamp appears in slow, subtracting
// the first slow point at that timestamp.
func alignByTime(fast, slow []model.IndicatorPoint) []model.IndicatorPoint {
	first := make(map[int64]float64, len(slow))
	for _, p := range slow {
		key := p.Time.UnixNano()
		if _, ok := first[key]; !ok {
			first[key] = p.Value
		}
	}

	line := make([]model.IndicatorPoint, 0, len(slow))
	for _, p := range fast {
		s, ok := first[p.Time.UnixNano()]
		if !ok {
			continue
		}
		line = append(line, model.IndicatorPoint{Time: p.Time, Value: p.Value - s})
	}
	return line
}
