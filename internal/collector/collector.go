package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guregu/null/v6"
	"github.com/rs/zerolog"

	"MarketAdvisor/internal/model"
)

// MockFetcher returns generated or fixed ticks for development and testing.
type MockFetcher struct {
	Price float64
	Ticks map[string][]model.Tick
	Err   error
	Now   func() time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchTicks(_ context.Context, symbol string, days int) ([]model.Tick, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if ticks, ok := m.Ticks[symbol]; ok {
		return ticks, nil
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return generateMockTicks(symbol, m.Price, days, now()), nil
}

func generateMockTicks(symbol string, basePrice float64, count int, now time.Time) []model.Tick {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	ticks := make([]model.Tick, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		ticks[i] = model.Tick{
			Symbol:    symbol,
			Timestamp: today.AddDate(0, 0, -(count - i)),
			Open:      p * 0.999,
			High:      p * 1.005,
			Low:       p * 0.995,
			Close:     p,
			Volume:    null.FloatFrom(1000000),
		}
	}
	return ticks
}

// Collector pulls ticks from a Fetcher into a TickSink.
type Collector struct {
	Fetcher Fetcher
	Sink    TickSink
	Days    int
	log     zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, sink TickSink, days int, log zerolog.Logger) *Collector {
	return &Collector{Fetcher: fetcher, Sink: sink, Days: days, log: log}
}

// Collect fetches and stores ticks for each symbol. Failures for one symbol do not
// stop the others; they are returned joined.
func (c *Collector) Collect(ctx context.Context, symbols []string) (int, error) {
	var errs []error
	total := 0
	for _, sym := range symbols {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		ticks, err := c.Fetcher.FetchTicks(ctx, sym, c.Days)
		if err != nil {
			c.log.Warn().Str("symbol", sym).Str("fetcher", c.Fetcher.Name()).Err(err).Msg("fetch failed")
			errs = append(errs, fmt.Errorf("fetch %s: %w", sym, err))
			continue
		}
		n, err := c.Sink.SaveTicks(ctx, ticks)
		if err != nil {
			c.log.Warn().Str("symbol", sym).Err(err).Msg("save failed")
			errs = append(errs, fmt.Errorf("save %s: %w", sym, err))
			continue
		}
		total += n
		c.log.Debug().Str("symbol", sym).Int("ticks", n).Msg("collected")
	}
	return total, errors.Join(errs...)
}
