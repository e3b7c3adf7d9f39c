package strategy

import (
	"slices"
	"time"

	"MarketAdvisor/internal/model"
)

// Threshold is one row of the suggestion table. It matches when the score is
// >= MinScore (or > MinScore when Strict).
type Threshold struct {
	MinScore   float64
	Strict     bool
	Suggestion model.Suggestion
}

var weights = model.Weights{TA: 0.4, Sentiment: 0.3, Fundamentals: 0.3}

// highest first
var thresholds = []Threshold{
	{1.5, false, model.StrongBuy},
	{0.5, false, model.Buy},
	{-0.5, true, model.Neutral},
	{-1.5, true, model.Sell},
}

// fallback for scores at or below -1.5
const defaultSuggestion = model.StrongSell

// Weights returns the fixed blend of the three components.
func Weights() model.Weights { return weights }

// Thresholds returns a copy of the suggestion table, highest first.
func Thresholds() []Threshold { return slices.Clone(thresholds) }

// MapSuggestion maps a total score to a suggestion.
func MapSuggestion(totalScore float64) model.Suggestion {
	for _, t := range thresholds {
		if totalScore > t.MinScore || (!t.Strict && totalScore == t.MinScore) {
			return t.Suggestion
		}
	}
	return defaultSuggestion
}

// Inputs bundles what the engine scores for one ticker.
type Inputs struct {
	Ticker       string
	Ticks        []model.Tick
	Fundamentals *model.FundamentalsSnapshot
	Articles     []model.SentimentArticle
}

// Evaluate computes the composite advisory. now anchors article recency.
func Evaluate(in Inputs, now time.Time) *model.CompositeResult {
	ta := ScoreTechnical(in.Ticks)
	fund := ScoreFundamentals(in.Fundamentals)
	sent := AggregateSentiment(in.Articles, now)

	total := ta.Score*weights.TA +
		sent.Score*weights.Sentiment +
		fund.Score*weights.Fundamentals

	return &model.CompositeResult{
		Ticker:          in.Ticker,
		FinalSuggestion: MapSuggestion(total),
		Breakdown: model.Breakdown{
			TA:           ta,
			Sentiment:    sent,
			Fundamentals: fund,
		},
		Weights:    weights,
		TotalScore: total,
	}
}
