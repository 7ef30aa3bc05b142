// Package sentiment scores headline text with the VADER polarity model
// and aggregates per-symbol statistics.
package sentiment

import (
	"strings"
	"sync"

	"github.com/jonreiter/govader"

	"TradeScope/internal/model"
)

// Analyzer scores news items independently and aggregates the results.
type Analyzer struct {
	mu    sync.Mutex
	vader *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer builds an analyzer with the standard VADER lexicon.
func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound sentiment of one news item in [-1, 1].
// Title and summary are concatenated before scoring; empty text is
// neutral.
func (a *Analyzer) Score(item model.NewsItem) float64 {
	text := item.Title
	if item.Summary != "" {
		text = item.Title + ". " + item.Summary
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.vader.PolarityScores(text).Compound
}

// Summarize aggregates compound scores over all items. Item order is not
// significant. An empty input yields the neutral zero-filled summary,
// not an error.
func (a *Analyzer) Summarize(items []model.NewsItem) model.SentimentSummary {
	if len(items) == 0 {
		return model.SentimentSummary{}
	}

	sum := model.SentimentSummary{Count: len(items)}
	var total float64
	for i, item := range items {
		s := a.Score(item)
		total += s
		if i == 0 || s < sum.Min {
			sum.Min = s
		}
		if i == 0 || s > sum.Max {
			sum.Max = s
		}
	}
	sum.Avg = total / float64(len(items))
	return sum
}
