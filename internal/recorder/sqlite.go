package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"MarketAdvisor/internal/model"
)

// SQLiteRecorder persists advisory history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS advice_history (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp          INTEGER NOT NULL,
			ticker             TEXT    NOT NULL,
			suggestion         TEXT    NOT NULL,
			total_score        REAL,
			ta_score           REAL,
			sentiment_score    REAL,
			fundamentals_score REAL,
			article_count      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_advice_ticker_ts ON advice_history(ticker, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAdvice(res *model.CompositeResult, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := res.Breakdown
	_, err := r.db.Exec(`INSERT INTO advice_history
		(timestamp, ticker, suggestion, total_score, ta_score, sentiment_score, fundamentals_score, article_count)
		VALUES (?,?,?,?,?,?,?,?)`,
		at.UnixMilli(), res.Ticker, string(res.FinalSuggestion), res.TotalScore,
		b.TA.Score, b.Sentiment.Score, b.Fundamentals.Score, len(b.Sentiment.Articles),
	)
	return err
}

// Recent returns up to limit records for ticker, newest first.
func (r *SQLiteRecorder) Recent(ticker string, limit int) ([]AdviceRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(`SELECT timestamp, ticker, suggestion, total_score, ta_score, sentiment_score, fundamentals_score, article_count
		FROM advice_history WHERE ticker = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, ticker, limit)
	if err != nil {
		return nil, fmt.Errorf("query advice history: %w", err)
	}
	defer rows.Close()

	var out []AdviceRecord
	for rows.Next() {
		var rec AdviceRecord
		var ts int64
		var suggestion string
		if err := rows.Scan(&ts, &rec.Ticker, &suggestion, &rec.TotalScore,
			&rec.TAScore, &rec.SentimentScore, &rec.FundamentalsScore, &rec.ArticleCount); err != nil {
			return nil, fmt.Errorf("scan advice: %w", err)
		}
		rec.RecordedAt = time.UnixMilli(ts).UTC()
		rec.Suggestion = model.Suggestion(suggestion)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
