package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"MarketAdvisor/internal/model"
)

// SQLite is a Store backed by a SQLite file. Timestamps are stored as unix milliseconds.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLite opens (or creates) the database and runs migrations.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ticks (
			symbol TEXT    NOT NULL,
			ts     INTEGER NOT NULL,
			open   REAL,
			high   REAL,
			low    REAL,
			close  REAL,
			volume REAL,
			PRIMARY KEY (symbol, ts)
		)`,

		`CREATE TABLE IF NOT EXISTS fundamentals (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol  TEXT    NOT NULL,
			as_of   INTEGER NOT NULL,
			metrics TEXT    NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fundamentals_symbol ON fundamentals(symbol)`,

		`CREATE TABLE IF NOT EXISTS articles (
			url             TEXT PRIMARY KEY,
			title           TEXT,
			pubdate         INTEGER NOT NULL,
			sentiment_label TEXT,
			sentiment_score REAL,
			tickers         TEXT NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// SaveTicks upserts ticks keyed by (symbol, timestamp). A second tick at the same
// timestamp replaces the first, so reads never return duplicate timestamps.
func (s *SQLite) SaveTicks(ctx context.Context, ticks []model.Tick) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO ticks (symbol, ts, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT(symbol, ts) DO UPDATE SET
			open = excluded.open, high = excluded.high, low = excluded.low,
			close = excluded.close, volume = excluded.volume`)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, t := range ticks {
		if _, err := stmt.ExecContext(ctx, t.Symbol, t.Timestamp.UnixMilli(), t.Open, t.High, t.Low, t.Close, t.Volume); err != nil {
			return 0, fmt.Errorf("insert tick %s@%s: %w", t.Symbol, t.Timestamp.Format(time.RFC3339), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(ticks), nil
}

func (s *SQLite) SaveFundamentals(ctx context.Context, snap model.FundamentalsSnapshot) error {
	metrics, err := json.Marshal(snap.Metrics)
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `INSERT INTO fundamentals (symbol, as_of, metrics) VALUES (?,?,?)`,
		snap.Symbol, snap.AsOf.UnixMilli(), string(metrics))
	return err
}

// SaveArticle upserts an article keyed by URL.
func (s *SQLite) SaveArticle(ctx context.Context, a model.SentimentArticle) error {
	tickers, err := json.Marshal(a.Tickers)
	if err != nil {
		return fmt.Errorf("encode tickers: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `INSERT INTO articles (url, title, pubdate, sentiment_label, sentiment_score, tickers)
		VALUES (?,?,?,?,?,?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title, pubdate = excluded.pubdate,
			sentiment_label = excluded.sentiment_label, sentiment_score = excluded.sentiment_score,
			tickers = excluded.tickers`,
		a.URL, a.Title, a.PubDate.UnixMilli(), string(a.SentimentLabel), a.SentimentScore, string(tickers))
	return err
}

func (s *SQLite) Ticks(ctx context.Context, symbol string) ([]model.Tick, error) {
	return s.queryTicks(ctx, `SELECT symbol, ts, open, high, low, close, volume FROM ticks WHERE symbol = ?`, symbol)
}

// TicksBetween returns ticks with from <= timestamp <= to.
func (s *SQLite) TicksBetween(ctx context.Context, symbol string, from, to time.Time) ([]model.Tick, error) {
	return s.queryTicks(ctx, `SELECT symbol, ts, open, high, low, close, volume FROM ticks
		WHERE symbol = ? AND ts BETWEEN ? AND ?`, symbol, from.UnixMilli(), to.UnixMilli())
}

func (s *SQLite) queryTicks(ctx context.Context, query string, args ...any) ([]model.Tick, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ticks: %w", err)
	}
	defer rows.Close()

	var ticks []model.Tick
	for rows.Next() {
		var t model.Tick
		var ts int64
		if err := rows.Scan(&t.Symbol, &ts, &t.Open, &t.High, &t.Low, &t.Close, &t.Volume); err != nil {
			return nil, fmt.Errorf("scan tick: %w", err)
		}
		t.Timestamp = time.UnixMilli(ts).UTC()
		ticks = append(ticks, t)
	}
	return ticks, rows.Err()
}

func (s *SQLite) Fundamentals(ctx context.Context, symbol string) ([]model.FundamentalsSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT symbol, as_of, metrics FROM fundamentals WHERE symbol = ? ORDER BY id`, symbol)
	if err != nil {
		return nil, fmt.Errorf("query fundamentals: %w", err)
	}
	defer rows.Close()

	var snaps []model.FundamentalsSnapshot
	for rows.Next() {
		var snap model.FundamentalsSnapshot
		var asOf int64
		var metrics string
		if err := rows.Scan(&snap.Symbol, &asOf, &metrics); err != nil {
			return nil, fmt.Errorf("scan fundamentals: %w", err)
		}
		if err := json.Unmarshal([]byte(metrics), &snap.Metrics); err != nil {
			return nil, fmt.Errorf("decode metrics: %w", err)
		}
		snap.AsOf = time.UnixMilli(asOf).UTC()
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// Articles returns the articles whose ticker list contains symbol.
func (s *SQLite) Articles(ctx context.Context, symbol string) ([]model.SentimentArticle, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT url, title, pubdate, sentiment_label, sentiment_score, tickers
		FROM articles
		WHERE EXISTS (SELECT 1 FROM json_each(articles.tickers) WHERE json_each.value = ?)`, symbol)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []model.SentimentArticle
	for rows.Next() {
		var a model.SentimentArticle
		var pub int64
		var label, tickers string
		if err := rows.Scan(&a.URL, &a.Title, &pub, &label, &a.SentimentScore, &tickers); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		if err := json.Unmarshal([]byte(tickers), &a.Tickers); err != nil {
			return nil, fmt.Errorf("decode tickers: %w", err)
		}
		a.PubDate = time.UnixMilli(pub).UTC()
		a.SentimentLabel = model.SentimentLabel(label)
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
