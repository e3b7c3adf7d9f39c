// Package series prepares raw store rows for the indicator library.
package series

import (
	"slices"

	"MarketAdvisor/internal/model"
)

// Normalize returns a copy of ticks ordered ascending by timestamp.
// Ticks sharing a timestamp keep their input order. Duplicates are not removed.
func Normalize(ticks []model.Tick) []model.Tick {
	out := slices.Clone(ticks)
	slices.SortStableFunc(out, func(a, b model.Tick) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}

// LatestFundamentals picks the snapshot with the greatest AsOf.
// On ties the first one seen wins. Returns nil for an empty input.
func LatestFundamentals(snaps []model.FundamentalsSnapshot) *model.FundamentalsSnapshot {
	if len(snaps) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(snaps); i++ {
		if snaps[i].AsOf.After(snaps[best].AsOf) {
			best = i
		}
	}
	latest := snaps[best]
	return &latest
}
