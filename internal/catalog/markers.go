// Package catalog holds the static lists of supported markers and tradable symbols.
package catalog

import (
	"slices"

	"MarketAdvisor/internal/model"
)

var markers = []model.MarkerDefinition{
	{ID: "MA5", DisplayName: "Moving Average 5", MinSamples: 5},
	{ID: "MA10", DisplayName: "Moving Average 10", MinSamples: 10},
	{ID: "MA20", DisplayName: "Moving Average 20", MinSamples: 20},
	{ID: "EMA5", DisplayName: "Exponential Moving Average 5", MinSamples: 5},
	{ID: "EMA10", DisplayName: "Exponential Moving Average 10", MinSamples: 10},
	{ID: "EMA20", DisplayName: "Exponential Moving Average 20", MinSamples: 20},
	{ID: "RSI", DisplayName: "Relative Strength Index (14)", MinSamples: 15},
	{ID: "MACD", DisplayName: "MACD (12,26,9)", MinSamples: 35},
	{ID: "BBANDS", DisplayName: "Bollinger Bands (20,2)", MinSamples: 20},
	{ID: "STOCH", DisplayName: "Stochastic Oscillator (14,3,3)", MinSamples: 17},
}

// Markers returns the supported markers in display order.
func Markers() []model.MarkerDefinition {
	return slices.Clone(markers)
}

// LookupMarker finds a marker by exact id.
func LookupMarker(id string) (model.MarkerDefinition, bool) {
	i := slices.IndexFunc(markers, func(m model.MarkerDefinition) bool { return m.ID == id })
	if i < 0 {
		return model.MarkerDefinition{}, false
	}
	return markers[i], true
}
