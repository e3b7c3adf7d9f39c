package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"MarketAdvisor/internal/model"
	"MarketAdvisor/internal/recorder"
)

const maxArticlesShown = 5

func suggestionIcon(s model.Suggestion) string {
	switch s {
	case model.StrongBuy:
		return "🟢🟢"
	case model.Buy:
		return "🟢"
	case model.Sell:
		return "🔴"
	case model.StrongSell:
		return "🔴🔴"
	default:
		return "⚪"
	}
}

// FormatAdvice formats one composite advisory into a Telegram message.
func FormatAdvice(res *model.CompositeResult, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s <b>%s</b>: %s (score %+.2f)\n\n",
		suggestionIcon(res.FinalSuggestion), html.EscapeString(res.Ticker), res.FinalSuggestion, res.TotalScore)

	bd := res.Breakdown
	fmt.Fprintf(&b, "📈 Technical: %+.0f (×%.1f) %s", bd.TA.Score, res.Weights.TA, bd.TA.Explanation)
	if bd.TA.Value.Valid {
		fmt.Fprintf(&b, " [%s %.1f]", bd.TA.Marker, bd.TA.Value.Float64)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "📰 Sentiment: %+.0f (×%.1f) %s\n", bd.Sentiment.Score, res.Weights.Sentiment, bd.Sentiment.Explanation)
	fmt.Fprintf(&b, "📊 Fundamentals: %+.0f (×%.1f) %s\n", bd.Fundamentals.Score, res.Weights.Fundamentals, bd.Fundamentals.Explanation)

	if n := len(bd.Sentiment.Articles); n > 0 {
		b.WriteString("\n<b>Articles:</b>\n")
		for i, a := range bd.Sentiment.Articles {
			if i == maxArticlesShown {
				fmt.Fprintf(&b, "  … and %d more\n", n-maxArticlesShown)
				break
			}
			fmt.Fprintf(&b, "  • [%s] %s (%s)\n",
				a.SentimentLabel, html.EscapeString(a.Title), humanize.RelTime(a.PubDate, now, "ago", "from now"))
		}
	}
	return b.String()
}

// FormatDigest formats a sweep over several tickers, one line each.
func FormatDigest(results []*model.CompositeResult, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>Advisory digest</b> | %s\n\n", now.Format("2006-01-02"))
	if len(results) == 0 {
		b.WriteString("No advisories computed.\n")
		return b.String()
	}
	for _, r := range results {
		fmt.Fprintf(&b, "%s %-6s %-11s %+.2f\n", suggestionIcon(r.FinalSuggestion), r.Ticker, r.FinalSuggestion, r.TotalScore)
	}
	return b.String()
}

// FormatHistory lists recent recorded advisories for a ticker, newest first.
func FormatHistory(ticker string, records []recorder.AdviceRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🕘 <b>%s history</b>\n", html.EscapeString(ticker))
	if len(records) == 0 {
		b.WriteString("No advisories recorded yet.\n")
		return b.String()
	}
	for _, r := range records {
		fmt.Fprintf(&b, "%s %s %-11s %+.2f\n", r.RecordedAt.Format("2006-01-02 15:04"), suggestionIcon(r.Suggestion), r.Suggestion, r.TotalScore)
	}
	return b.String()
}

// FormatStocks lists the tradable symbols.
func FormatStocks(symbols []string) string {
	return "📃 <b>Tradable symbols</b>\n" + strings.Join(symbols, ", ")
}

// FormatError formats an error message.
func FormatError(context string, err error) string {
	return fmt.Sprintf("❌ <b>%s</b>\n%s", html.EscapeString(context), html.EscapeString(err.Error()))
}

// FormatHelp returns the command help text.
func FormatHelp() string {
	return "🤖 <b>Commands</b>\n" +
		"/stocks - list tradable symbols\n" +
		"/advice SYMBOL - composite advisory for one symbol\n" +
		"/history SYMBOL - recently recorded advisories\n" +
		"/digest - advisory for every symbol\n" +
		"/help - this message"
}
