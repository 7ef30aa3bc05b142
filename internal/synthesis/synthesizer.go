// Package synthesis assembles the per-symbol synthesis payload, invokes
// the external report-generation collaborator and validates the
// structured result.
package synthesis

import (
	"context"
	"os"
	"time"

	"TradeScope/internal/model"
)

// Payload is the combined technical/fundamental/news/profile data sent to
// the report-generation collaborator.
type Payload struct {
	Symbol        string                  `json:"symbol"`
	SecurityType  model.SecurityType      `json:"security_type"`
	AsOf          string                  `json:"as_of"`
	Profile       model.CompanyProfile    `json:"profile"`
	Fundamentals  model.FundamentalRatios `json:"fundamentals"`
	Technicals    model.IndicatorSnapshot `json:"technicals"`
	NewsItems     []model.NewsItem        `json:"news_items"`
	NewsSentiment model.SentimentSummary  `json:"news_sentiment"`
	Knowhow       string                  `json:"knowhow,omitempty"`
}

// Generator is the external report-generation collaborator.
type Generator interface {
	Generate(ctx context.Context, payload *Payload) (*model.AnalysisReport, error)
}

// Inputs carries everything one synthesis needs.
type Inputs struct {
	Symbol        string
	SecurityType  model.SecurityType
	AsOf          time.Time
	Profile       model.CompanyProfile
	Fundamentals  model.FundamentalRatios
	Technicals    model.IndicatorSnapshot
	NewsItems     []model.NewsItem
	NewsSentiment model.SentimentSummary
}

// Synthesizer builds payloads and validates generator output.
type Synthesizer struct {
	gen     Generator
	knowhow string
}

// NewSynthesizer creates a synthesizer. knowhow is optional free-text
// domain guidance forwarded with every payload.
func NewSynthesizer(gen Generator, knowhow string) *Synthesizer {
	return &Synthesizer{gen: gen, knowhow: knowhow}
}

// BuildPayload assembles the synthesis payload from the inputs.
func (s *Synthesizer) BuildPayload(in Inputs) *Payload {
	return &Payload{
		Symbol:        in.Symbol,
		SecurityType:  in.SecurityType,
		AsOf:          in.AsOf.Format(time.RFC3339),
		Profile:       in.Profile,
		Fundamentals:  in.Fundamentals,
		Technicals:    in.Technicals,
		NewsItems:     in.NewsItems,
		NewsSentiment: in.NewsSentiment,
		Knowhow:       s.knowhow,
	}
}

// Synthesize invokes the generator and validates the structured result
// against the report schema. A generator failure or a non-conforming
// report is surfaced as *model.SynthesisError, never silently coerced.
func (s *Synthesizer) Synthesize(ctx context.Context, in Inputs) (*model.AnalysisReport, error) {
	report, err := s.gen.Generate(ctx, s.BuildPayload(in))
	if err != nil {
		return nil, &model.SynthesisError{Symbol: in.Symbol, Err: err}
	}
	if err := report.Validate(); err != nil {
		return nil, &model.SynthesisError{Symbol: in.Symbol, Err: err}
	}
	return report, nil
}

// LoadKnowhow reads optional domain know-how text; a missing file is an
// empty string, not an error.
func LoadKnowhow(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
