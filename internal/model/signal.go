package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// SentimentLabel is the polarity attached to a news article.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Polarity maps the label to +1, -1 or 0. Unknown labels count as neutral.
func (l SentimentLabel) Polarity() float64 {
	switch l {
	case SentimentPositive:
		return 1
	case SentimentNegative:
		return -1
	default:
		return 0
	}
}

// SentimentArticle is a news item with a sentiment label.
type SentimentArticle struct {
	Tickers        []string       `json:"tickers"`
	Title          string         `json:"title"`
	URL            string         `json:"url"`
	PubDate        time.Time      `json:"pubdate"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
	SentimentScore float64        `json:"sentiment_score"`
}

// ArticleSummary is the article echo carried in the sentiment breakdown.
type ArticleSummary struct {
	Title          string         `json:"title"`
	URL            string         `json:"url"`
	PubDate        time.Time      `json:"pubdate"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
	SentimentScore float64        `json:"sentiment_score"`
}

// Suggestion is the final advisory label.
type Suggestion string

const (
	StrongBuy  Suggestion = "strong buy"
	Buy        Suggestion = "buy"
	Neutral    Suggestion = "neutral"
	Sell       Suggestion = "sell"
	StrongSell Suggestion = "strong sell"
)

// Rank orders suggestions from strong sell (0) to strong buy (4).
func (s Suggestion) Rank() int {
	switch s {
	case StrongSell:
		return 0
	case Sell:
		return 1
	case Neutral:
		return 2
	case Buy:
		return 3
	case StrongBuy:
		return 4
	default:
		return -1
	}
}

// ScoreComponent is the common shape of every breakdown entry.
type ScoreComponent struct {
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// TechnicalScore is the technical component, with the marker reading it used.
type TechnicalScore struct {
	ScoreComponent
	Marker string     `json:"marker"`
	Value  null.Float `json:"value"`
}

// SentimentScore is the sentiment component with the articles it was built from.
type SentimentScore struct {
	ScoreComponent
	Articles []ArticleSummary `json:"articles"`
}

// Breakdown groups the three components of a composite result.
type Breakdown struct {
	TA           TechnicalScore `json:"ta"`
	Sentiment    SentimentScore `json:"sentiment"`
	Fundamentals ScoreComponent `json:"fundamentals"`
}

// Weights is the blend applied to the component scores.
type Weights struct {
	TA           float64 `json:"ta"`
	Sentiment    float64 `json:"sentiment"`
	Fundamentals float64 `json:"fundamentals"`
}

// CompositeResult is the final output of the scoring engine.
type CompositeResult struct {
	Ticker          string     `json:"ticker"`
	FinalSuggestion Suggestion `json:"finalSuggestion"`
	Breakdown       Breakdown  `json:"breakdown"`
	Weights         Weights    `json:"weights"`
	TotalScore      float64    `json:"totalScore"`
}
