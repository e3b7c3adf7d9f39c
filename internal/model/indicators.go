package model

import "time"

// IndicatorPoint is one value of a single-line indicator.
type IndicatorPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

func (p IndicatorPoint) At() time.Time   { return p.Time }
func (p IndicatorPoint) Scalar() float64 { return p.Value }

// BandPoint is one Bollinger band reading.
type BandPoint struct {
	Time   time.Time `json:"time"`
	Upper  float64   `json:"upper"`
	Middle float64   `json:"middle"`
	Lower  float64   `json:"lower"`
}

// StochasticPoint is one %K or %D reading.
type StochasticPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

func (p StochasticPoint) At() time.Time   { return p.Time }
func (p StochasticPoint) Scalar() float64 { return p.Value }

// MACDResult holds the three MACD series.
type MACDResult struct {
	MACD      []IndicatorPoint `json:"macd"`
	Signal    []IndicatorPoint `json:"signal"`
	Histogram []IndicatorPoint `json:"histogram"`
}

// StochResult holds the %K and %D series.
type StochResult struct {
	K []StochasticPoint `json:"k"`
	D []StochasticPoint `json:"d"`
}

// MarkerDefinition describes one supported technical marker.
type MarkerDefinition struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	MinSamples  int    `json:"-"`
}
