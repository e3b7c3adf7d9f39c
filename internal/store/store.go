// Package store holds the persistent Source implementations for ticks, fundamentals and articles.
package store

import (
	"context"
	"fmt"
	"time"

	"MarketAdvisor/internal/model"
)

// Store is a readable and writable market data repository.
type Store interface {
	Ticks(ctx context.Context, symbol string) ([]model.Tick, error)
	TicksBetween(ctx context.Context, symbol string, from, to time.Time) ([]model.Tick, error)
	Fundamentals(ctx context.Context, symbol string) ([]model.FundamentalsSnapshot, error)
	Articles(ctx context.Context, symbol string) ([]model.SentimentArticle, error)

	SaveTicks(ctx context.Context, ticks []model.Tick) (int, error)
	SaveFundamentals(ctx context.Context, snap model.FundamentalsSnapshot) error
	SaveArticle(ctx context.Context, a model.SentimentArticle) error
	Close() error
}

// Open selects the backend by driver name: "sqlite" or "postgres".
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite":
		s, err := OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		p, err := OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
