package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// Sample is one timestamped scalar of an ordered series.
type Sample interface {
	At() time.Time
	Scalar() float64
}

// Tick represents a single OHLCV bar for one symbol.
type Tick struct {
	Symbol    string     `json:"symbol"`
	Timestamp time.Time  `json:"timestamp"`
	Open      float64    `json:"open"`
	High      float64    `json:"high"`
	Low       float64    `json:"low"`
	Close     float64    `json:"close"`
	Volume    null.Float `json:"volume"`
}

func (t Tick) At() time.Time { return t.Timestamp }

// Scalar reads the close price.
func (t Tick) Scalar() float64 { return t.Close }

// FundamentalsSnapshot is a set of fundamental metrics as of a date.
type FundamentalsSnapshot struct {
	Symbol  string             `json:"symbol"`
	AsOf    time.Time          `json:"as_of"`
	Metrics map[string]float64 `json:"metrics"`
}
