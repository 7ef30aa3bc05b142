package model

// SentimentSummary aggregates per-headline compound sentiment scores.
// An empty input yields the zero value (neutral default, Count 0).
type SentimentSummary struct {
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}
