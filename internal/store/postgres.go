package store

import (
	"context"
	"fmt"
	"time"

	"github.com/guregu/null/v6"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"MarketAdvisor/internal/model"
)

// Postgres is a Store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects, pings and runs migrations.
func OpenPostgres(ctx context.Context, url string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	p := &Postgres{pool: pool}
	if err := p.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return p, nil
}

func (p *Postgres) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ticks (
			symbol TEXT             NOT NULL,
			ts     TIMESTAMPTZ      NOT NULL,
			open   DOUBLE PRECISION,
			high   DOUBLE PRECISION,
			low    DOUBLE PRECISION,
			close  DOUBLE PRECISION,
			volume DOUBLE PRECISION,
			PRIMARY KEY (symbol, ts)
		)`,
		`CREATE TABLE IF NOT EXISTS fundamentals (
			id      BIGSERIAL PRIMARY KEY,
			symbol  TEXT        NOT NULL,
			as_of   TIMESTAMPTZ NOT NULL,
			metrics JSONB       NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fundamentals_symbol ON fundamentals(symbol)`,
		`CREATE TABLE IF NOT EXISTS articles (
			url             TEXT PRIMARY KEY,
			title           TEXT,
			pubdate         TIMESTAMPTZ NOT NULL,
			sentiment_label TEXT,
			sentiment_score DOUBLE PRECISION,
			tickers         TEXT[] NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

type tickRow struct {
	Symbol string     `db:"symbol"`
	Ts     time.Time  `db:"ts"`
	Open   float64    `db:"open"`
	High   float64    `db:"high"`
	Low    float64    `db:"low"`
	Close  float64    `db:"close"`
	Volume null.Float `db:"volume"`
}

type fundamentalsRow struct {
	Symbol  string             `db:"symbol"`
	AsOf    time.Time          `db:"as_of"`
	Metrics map[string]float64 `db:"metrics"`
}

type articleRow struct {
	URL            string    `db:"url"`
	Title          string    `db:"title"`
	PubDate        time.Time `db:"pubdate"`
	SentimentLabel string    `db:"sentiment_label"`
	SentimentScore float64   `db:"sentiment_score"`
	Tickers        []string  `db:"tickers"`
}

func query[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		return nil, fmt.Errorf("unable to query: %w", err)
	}
	defer rows.Close()

	res, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("collect rows: %w", err)
	}
	return res, nil
}

const tickColumns = `symbol, ts, open, high, low, close, volume`

func (p *Postgres) Ticks(ctx context.Context, symbol string) ([]model.Tick, error) {
	rows, err := query[tickRow](ctx, p.pool,
		`SELECT `+tickColumns+` FROM ticks WHERE symbol = @symbol`,
		pgx.NamedArgs{"symbol": symbol})
	if err != nil {
		return nil, err
	}
	return toTicks(rows), nil
}

func (p *Postgres) TicksBetween(ctx context.Context, symbol string, from, to time.Time) ([]model.Tick, error) {
	rows, err := query[tickRow](ctx, p.pool,
		`SELECT `+tickColumns+` FROM ticks WHERE symbol = @symbol AND ts BETWEEN @from AND @to`,
		pgx.NamedArgs{"symbol": symbol, "from": from, "to": to})
	if err != nil {
		return nil, err
	}
	return toTicks(rows), nil
}

func toTicks(rows []tickRow) []model.Tick {
	ticks := make([]model.Tick, len(rows))
	for i, r := range rows {
		ticks[i] = model.Tick{
			Symbol:    r.Symbol,
			Timestamp: r.Ts.UTC(),
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Volume:    r.Volume,
		}
	}
	return ticks
}

func (p *Postgres) Fundamentals(ctx context.Context, symbol string) ([]model.FundamentalsSnapshot, error) {
	rows, err := query[fundamentalsRow](ctx, p.pool,
		`SELECT symbol, as_of, metrics FROM fundamentals WHERE symbol = @symbol ORDER BY id`,
		pgx.NamedArgs{"symbol": symbol})
	if err != nil {
		return nil, err
	}
	snaps := make([]model.FundamentalsSnapshot, len(rows))
	for i, r := range rows {
		snaps[i] = model.FundamentalsSnapshot{Symbol: r.Symbol, AsOf: r.AsOf.UTC(), Metrics: r.Metrics}
	}
	return snaps, nil
}

func (p *Postgres) Articles(ctx context.Context, symbol string) ([]model.SentimentArticle, error) {
	rows, err := query[articleRow](ctx, p.pool,
		`SELECT url, title, pubdate, sentiment_label, sentiment_score, tickers
		 FROM articles WHERE @symbol = ANY(tickers)`,
		pgx.NamedArgs{"symbol": symbol})
	if err != nil {
		return nil, err
	}
	articles := make([]model.SentimentArticle, len(rows))
	for i, r := range rows {
		articles[i] = model.SentimentArticle{
			Tickers:        r.Tickers,
			Title:          r.Title,
			URL:            r.URL,
			PubDate:        r.PubDate.UTC(),
			SentimentLabel: model.SentimentLabel(r.SentimentLabel),
			SentimentScore: r.SentimentScore,
		}
	}
	return articles, nil
}

// SaveTicks upserts ticks in one batch, keyed by (symbol, ts) like the SQLite store.
func (p *Postgres) SaveTicks(ctx context.Context, ticks []model.Tick) (int, error) {
	batch := &pgx.Batch{}
	for _, t := range ticks {
		batch.Queue(`INSERT INTO ticks (`+tickColumns+`)
			VALUES (@symbol, @ts, @open, @high, @low, @close, @volume)
			ON CONFLICT (symbol, ts) DO UPDATE SET
				open = EXCLUDED.open, high = EXCLUDED.high, low = EXCLUDED.low,
				close = EXCLUDED.close, volume = EXCLUDED.volume`,
			pgx.NamedArgs{
				"symbol": t.Symbol,
				"ts":     t.Timestamp,
				"open":   t.Open,
				"high":   t.High,
				"low":    t.Low,
				"close":  t.Close,
				"volume": t.Volume,
			})
	}

	br := p.pool.SendBatch(ctx, batch)
	defer br.Close()
	for _, t := range ticks {
		if _, err := br.Exec(); err != nil {
			return 0, fmt.Errorf("insert tick %s@%s: %w", t.Symbol, t.Timestamp.Format(time.RFC3339), err)
		}
	}
	return len(ticks), nil
}

func (p *Postgres) SaveFundamentals(ctx context.Context, snap model.FundamentalsSnapshot) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO fundamentals (symbol, as_of, metrics) VALUES (@symbol, @as_of, @metrics)`,
		pgx.NamedArgs{"symbol": snap.Symbol, "as_of": snap.AsOf, "metrics": snap.Metrics})
	return err
}

func (p *Postgres) SaveArticle(ctx context.Context, a model.SentimentArticle) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO articles (url, title, pubdate, sentiment_label, sentiment_score, tickers)
		VALUES (@url, @title, @pubdate, @label, @score, @tickers)
		ON CONFLICT (url) DO UPDATE SET
			title = EXCLUDED.title, pubdate = EXCLUDED.pubdate,
			sentiment_label = EXCLUDED.sentiment_label, sentiment_score = EXCLUDED.sentiment_score,
			tickers = EXCLUDED.tickers`,
		pgx.NamedArgs{
			"url":     a.URL,
			"title":   a.Title,
			"pubdate": a.PubDate,
			"label":   string(a.SentimentLabel),
			"score":   a.SentimentScore,
			"tickers": a.Tickers,
		})
	return err
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
