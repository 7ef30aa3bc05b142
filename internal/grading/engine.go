// Package grading converts normalized technicals, fundamentals and
// sentiment into deterministic sub-scores, a weighted overall score and a
// letter grade.
package grading

import (
	"fmt"
	"math"

	"TradeScope/internal/model"
)

// Engine applies one rubric. All scoring methods are pure and clamp their
// result into [0, 1].
type Engine struct {
	rubric Rubric
}

// NewEngine validates the rubric and builds an engine. Negative weights,
// an all-zero weight set, or inverted RSI thresholds are ConfigErrors.
func NewEngine(rubric Rubric) (*Engine, error) {
	w := rubric.Weights
	if w.Fundamentals < 0 || w.Technicals < 0 || w.News < 0 {
		return nil, &model.ConfigError{Msg: fmt.Sprintf(
			"rubric weights must be non-negative, got %+v", w)}
	}
	if w.Fundamentals == 0 && w.Technicals == 0 && w.News == 0 {
		return nil, &model.ConfigError{Msg: "rubric weights are all zero"}
	}
	if rubric.Technicals.RSIOversold >= rubric.Technicals.RSIOverbought {
		return nil, &model.ConfigError{Msg: fmt.Sprintf(
			"rsi_oversold %.1f must be below rsi_overbought %.1f",
			rubric.Technicals.RSIOversold, rubric.Technicals.RSIOverbought)}
	}
	return &Engine{rubric: rubric}, nil
}

// Rubric returns the engine's rubric.
func (e *Engine) Rubric() Rubric { return e.rubric }

// FundamentalsScore starts at the 0.5 neutral baseline and adjusts for
// gross margin, revenue growth and leverage. Each term applies only when
// its source ratio is present; absence is no adjustment, never a penalty.
func (e *Engine) FundamentalsScore(fund model.FundamentalRatios) float64 {
	w := e.rubric.Fundamentals
	score := 0.5
	if gm, ok := fund.Get("gross_margin"); ok {
		if gm >= w.MinGrossMargin {
			score += 0.2
		} else {
			score -= 0.2
		}
	}
	if rev, ok := fund.Get("rev_growth_yoy"); ok {
		if rev >= w.MinRevCAGR3Y {
			score += 0.1
		} else {
			score -= 0.1
		}
	}
	if dte, ok := fund.Get("debt_to_equity"); ok {
		if dte <= w.MaxNetDebtToEBITDA {
			score += 0.1
		} else {
			score -= 0.1
		}
	}
	return clamp(score)
}

// TechnicalsScore starts at the 0.5 neutral baseline; RSI extremes and the
// trend booleans move it. A NaN RSI (insufficient history) contributes
// nothing.
func (e *Engine) TechnicalsScore(tech model.IndicatorSnapshot) float64 {
	w := e.rubric.Technicals
	score := 0.5
	if !math.IsNaN(tech.RSI14) {
		if tech.RSI14 < w.RSIOversold {
			score += 0.1
		} else if tech.RSI14 > w.RSIOverbought {
			score -= 0.1
		}
	}
	if tech.AboveSMA200 {
		score += w.AboveSMA200Bonus
	}
	if tech.MACDBull {
		score += w.MACDSignalBias
	}
	return clamp(score)
}

// NewsScore maps average sentiment in [-1, 1] into a bounded influence
// band around neutral: 0.5 + 0.3*avg.
func (e *Engine) NewsScore(sent model.SentimentSummary) float64 {
	return clamp(0.5 + 0.3*sent.Avg)
}

// OverallScore blends the three sub-scores with the rubric weights.
func (e *Engine) OverallScore(fundScore, techScore, newsScore float64) float64 {
	w := e.rubric.Weights
	return clamp(fundScore*w.Fundamentals + techScore*w.Technicals + newsScore*w.News)
}

// ToGrade maps an overall score to a letter grade. Band lower bounds are
// inclusive.
func ToGrade(score float64) string {
	switch {
	case score >= 0.8:
		return "A"
	case score >= 0.65:
		return "B"
	case score >= 0.5:
		return "C"
	case score >= 0.35:
		return "D"
	default:
		return "F"
	}
}

func clamp(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
