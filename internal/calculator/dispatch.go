package calculator

import (
	"fmt"
	"strconv"
	"strings"

	"MarketAdvisor/internal/catalog"
	"MarketAdvisor/internal/model"
)

const (
	RSIPeriod    = 14
	BBandsPeriod = 20
	BBandsWidth  = 2.0
	StochK       = 14
	StochD       = 3
)

// Result is the output of one marker computation. Exactly one payload field is set.
type Result struct {
	Marker string
	Series []model.IndicatorPoint
	MACD   *model.MACDResult
	Bands  []model.BandPoint
	Stoch  *model.StochResult
}

// Compute runs the marker named by id over ticks, which must already be normalized.
func Compute(id string, ticks []model.Tick) (*Result, error) {
	def, ok := catalog.LookupMarker(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMarker, id)
	}
	if err := requireSamples(def.ID, len(ticks), def.MinSamples); err != nil {
		return nil, err
	}

	res := &Result{Marker: def.ID}
	var err error
	switch {
	case def.ID == "RSI":
		res.Series, err = RSI(ticks, RSIPeriod)
	case def.ID == "MACD":
		res.MACD, err = MACD(ticks)
	case def.ID == "BBANDS":
		res.Bands, err = BBANDS(ticks, BBandsPeriod, BBandsWidth)
	case def.ID == "STOCH":
		res.Stoch, err = STOCH(ticks, StochK, StochD)
	case strings.HasPrefix(def.ID, "EMA"):
		period, perr := markerPeriod(def.ID, "EMA")
		if perr != nil {
			return nil, perr
		}
		res.Series, err = EMA(ticks, period)
	case strings.HasPrefix(def.ID, "MA"):
		period, perr := markerPeriod(def.ID, "MA")
		if perr != nil {
			return nil, perr
		}
		res.Series, err = MA(ticks, period)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMarker, id)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func markerPeriod(id, prefix string) (int, error) {
	period, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
	if err != nil || period <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMarker, id)
	}
	return period, nil
}
