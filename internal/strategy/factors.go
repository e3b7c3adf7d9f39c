package strategy

import (
	"time"

	"github.com/guregu/null/v6"

	"MarketAdvisor/internal/model"
)

const (
	minTechnicalTicks = 20
	// referenceRSI stands in for a live RSI reading.
	// TODO: feed calculator.RSI(ticks, 14) here once the technical model is signed off.
	referenceRSI = 28.0
)

// ScoreTechnical scores the technical component.
func ScoreTechnical(ticks []model.Tick) model.TechnicalScore {
	if len(ticks) < minTechnicalTicks {
		return model.TechnicalScore{
			ScoreComponent: model.ScoreComponent{Score: 0, Explanation: "insufficient data"},
			Marker:         "RSI",
			Value:          null.Float{},
		}
	}

	var score float64
	var explanation string
	switch {
	case referenceRSI < 30:
		score, explanation = 2, "RSI is below 30 (oversold)"
	case referenceRSI > 70:
		score, explanation = -2, "RSI is above 70 (overbought)"
	default:
		score, explanation = 0, "RSI is neutral"
	}

	return model.TechnicalScore{
		ScoreComponent: model.ScoreComponent{Score: score, Explanation: explanation},
		Marker:         "RSI",
		Value:          null.FloatFrom(referenceRSI),
	}
}

// ScoreFundamentals scores the fundamentals component from the latest snapshot.
func ScoreFundamentals(f *model.FundamentalsSnapshot) model.ScoreComponent {
	if f == nil {
		return model.ScoreComponent{Score: 0, Explanation: "no fundamentals"}
	}
	return model.ScoreComponent{Score: 1, Explanation: "earnings growth is strong"}
}

// recencyWeight favours articles from the last week, then the last month.
func recencyWeight(pub, now time.Time) float64 {
	days := now.Sub(pub).Hours() / 24
	switch {
	case days <= 7:
		return 2
	case days <= 30:
		return 1
	default:
		return 0.5
	}
}

// AggregateSentiment scores the recency-weighted mean polarity of articles.
func AggregateSentiment(articles []model.SentimentArticle, now time.Time) model.SentimentScore {
	summaries := make([]model.ArticleSummary, 0, len(articles))
	if len(articles) == 0 {
		return model.SentimentScore{
			ScoreComponent: model.ScoreComponent{Score: 0, Explanation: "no articles"},
			Articles:       summaries,
		}
	}

	var weighted, totalWeight float64
	for _, a := range articles {
		w := recencyWeight(a.PubDate, now)
		weighted += a.SentimentLabel.Polarity() * w
		totalWeight += w
		summaries = append(summaries, model.ArticleSummary{
			Title:          a.Title,
			URL:            a.URL,
			PubDate:        a.PubDate,
			SentimentLabel: a.SentimentLabel,
			SentimentScore: a.SentimentScore,
		})
	}
	mean := weighted / totalWeight

	var score float64
	var explanation string
	switch {
	case mean > 0.5:
		score, explanation = 2, "Recent articles are mostly positive"
	case mean > 0.1:
		score, explanation = 1, "Articles are somewhat positive"
	case mean < -0.5:
		score, explanation = -2, "Recent articles are mostly negative"
	case mean < -0.1:
		score, explanation = -1, "Articles are somewhat negative"
	default:
		score, explanation = 0, "Articles are neutral"
	}

	return model.SentimentScore{
		ScoreComponent: model.ScoreComponent{Score: score, Explanation: explanation},
		Articles:       summaries,
	}
}
