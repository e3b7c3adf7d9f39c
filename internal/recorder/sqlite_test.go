package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketAdvisor/internal/model"
)

func result(ticker string, s model.Suggestion, total float64) *model.CompositeResult {
	res := &model.CompositeResult{Ticker: ticker, FinalSuggestion: s, TotalScore: total}
	res.Breakdown.TA.Score = 2
	res.Breakdown.Sentiment.Articles = []model.ArticleSummary{{Title: "a"}, {Title: "b"}}
	return res
}

func TestSQLiteRecorder(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"), zerolog.Nop())
	require.NoError(t, err)
	defer r.Close()

	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, r.RecordAdvice(result("AAPL", model.Buy, 0.8), at))
	require.NoError(t, r.RecordAdvice(result("AAPL", model.StrongBuy, 1.7), at.Add(24*time.Hour)))
	require.NoError(t, r.RecordAdvice(result("MSFT", model.Sell, -0.6), at))

	got, err := r.Recent("AAPL", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.StrongBuy, got[0].Suggestion)
	assert.Equal(t, at.Add(24*time.Hour), got[0].RecordedAt)
	assert.Equal(t, 2.0, got[0].TAScore)
	assert.Equal(t, 2, got[0].ArticleCount)

	one, err := r.Recent("AAPL", 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestNoopRecorder(t *testing.T) {
	r := NewNoopRecorder()
	assert.NoError(t, r.RecordAdvice(result("AAPL", model.Buy, 1), time.Now()))
	got, err := r.Recent("AAPL", 3)
	assert.NoError(t, err)
	assert.Empty(t, got)
}
