package strategy

import (
	"testing"

	"MarketAdvisor/internal/model"
)

func TestScoreTechnical(t *testing.T) {
	short := ScoreTechnical(makeTicks(19))
	if short.Score != 0 || short.Value.Valid {
		t.Errorf("expected empty reading below 20 ticks, got %+v", short)
	}
	if short.Marker != "RSI" {
		t.Errorf("expected RSI marker, got %q", short.Marker)
	}

	full := ScoreTechnical(makeTicks(20))
	if full.Score != 2 {
		t.Errorf("expected oversold score 2, got %v", full.Score)
	}
	if !full.Value.Valid || full.Value.Float64 != 28 {
		t.Errorf("expected value 28, got %+v", full.Value)
	}
	if full.Explanation != "RSI is below 30 (oversold)" {
		t.Errorf("unexpected explanation %q", full.Explanation)
	}
}

func TestScoreFundamentals(t *testing.T) {
	if got := ScoreFundamentals(nil); got.Score != 0 {
		t.Errorf("expected 0 without fundamentals, got %v", got.Score)
	}
	got := ScoreFundamentals(&model.FundamentalsSnapshot{Metrics: map[string]float64{}})
	if got.Score != 1 || got.Explanation != "earnings growth is strong" {
		t.Errorf("unexpected fundamentals score %+v", got)
	}
}

func TestRecencyWeight(t *testing.T) {
	tests := []struct {
		days float64
		want float64
	}{
		{0, 2},
		{7, 2},
		{7.5, 1},
		{30, 1},
		{31, 0.5},
		{-3, 2},
	}
	for _, tt := range tests {
		pub := now.Add(-time24h(tt.days))
		if got := recencyWeight(pub, now); got != tt.want {
			t.Errorf("recencyWeight(%v days) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func TestAggregateSentiment(t *testing.T) {
	article := func(label model.SentimentLabel, daysAgo float64) model.SentimentArticle {
		return model.SentimentArticle{Title: string(label), URL: "https://example.com", PubDate: now.Add(-time24h(daysAgo)), SentimentLabel: label, SentimentScore: 0.9}
	}

	tests := []struct {
		name        string
		articles    []model.SentimentArticle
		score       float64
		explanation string
	}{
		{"empty", nil, 0, "no articles"},
		{
			"recent positive outweighs old negative",
			[]model.SentimentArticle{article(model.SentimentPositive, 0), article(model.SentimentNegative, 40)},
			2, "Recent articles are mostly positive",
		},
		{
			"somewhat positive",
			[]model.SentimentArticle{article(model.SentimentPositive, 1), article(model.SentimentNeutral, 1), article(model.SentimentNeutral, 2)},
			1, "Articles are somewhat positive",
		},
		{
			"mostly negative",
			[]model.SentimentArticle{article(model.SentimentNegative, 1)},
			-2, "Recent articles are mostly negative",
		},
		{
			"somewhat negative",
			[]model.SentimentArticle{article(model.SentimentNegative, 1), article(model.SentimentNeutral, 1), article(model.SentimentNeutral, 1)},
			-1, "Articles are somewhat negative",
		},
		{
			"balanced",
			[]model.SentimentArticle{article(model.SentimentNegative, 1), article(model.SentimentPositive, 1)},
			0, "Articles are neutral",
		},
		{
			"unknown label is neutral",
			[]model.SentimentArticle{article("mixed", 1)},
			0, "Articles are neutral",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateSentiment(tt.articles, now)
			if got.Score != tt.score {
				t.Errorf("score = %v, want %v", got.Score, tt.score)
			}
			if got.Explanation != tt.explanation {
				t.Errorf("explanation = %q, want %q", got.Explanation, tt.explanation)
			}
			if len(got.Articles) != len(tt.articles) {
				t.Errorf("expected %d echoed articles, got %d", len(tt.articles), len(got.Articles))
			}
		})
	}
}
