package collector

import (
	"context"

	"MarketAdvisor/internal/model"
)

// Fetcher defines the interface for fetching daily ticks from a quote provider.
type Fetcher interface {
	FetchTicks(ctx context.Context, symbol string, days int) ([]model.Tick, error)
	Name() string
}

// TickSink stores fetched ticks.
type TickSink interface {
	SaveTicks(ctx context.Context, ticks []model.Tick) (int, error)
}
