package recorder

import (
	"time"

	"MarketAdvisor/internal/model"
)

// AdviceRecord is one persisted composite advisory.
type AdviceRecord struct {
	Ticker            string
	RecordedAt        time.Time
	Suggestion        model.Suggestion
	TotalScore        float64
	TAScore           float64
	SentimentScore    float64
	FundamentalsScore float64
	ArticleCount      int
}

// Recorder persists advisory history for later review.
type Recorder interface {
	RecordAdvice(res *model.CompositeResult, at time.Time) error
	Recent(ticker string, limit int) ([]AdviceRecord, error)
	Close() error
}
