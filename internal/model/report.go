package model

import "fmt"

// TradeAction is the recommended trading action.
type TradeAction string

const (
	ActionBuy  TradeAction = "BUY"
	ActionSell TradeAction = "SELL"
	ActionHold TradeAction = "HOLD"
)

// AlertType classifies a market alert.
type AlertType string

const (
	AlertHighVolatility    AlertType = "HIGH_VOLATILITY"
	AlertNewsCatalyst      AlertType = "NEWS_CATALYST"
	AlertTechnicalBreakout AlertType = "TECHNICAL_BREAKOUT"
	AlertFundamentalChange AlertType = "FUNDAMENTAL_CHANGE"
	AlertSectorRotation    AlertType = "SECTOR_ROTATION"
)

// AlertSeverity grades how urgent an alert is.
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "LOW"
	SeverityMedium   AlertSeverity = "MEDIUM"
	SeverityHigh     AlertSeverity = "HIGH"
	SeverityCritical AlertSeverity = "CRITICAL"
)

// SectionScore is one scored section of the synthesized report.
type SectionScore struct {
	Rationale string  `json:"rationale"`
	Score     float64 `json:"score"` // 0..1, feeds the grading engine
}

// TradingSignal is the actionable recommendation inside a report.
type TradingSignal struct {
	Action          TradeAction `json:"action"`
	Confidence      float64     `json:"confidence"` // 0..1
	EntryPrice      *float64    `json:"entry_price,omitempty"`
	ExitPrice       *float64    `json:"exit_price,omitempty"`
	StopLoss        *float64    `json:"stop_loss,omitempty"`
	TakeProfit      *float64    `json:"take_profit,omitempty"`
	PositionSize    string      `json:"position_size,omitempty"`
	TimeHorizon     string      `json:"time_horizon"` // intraday, swing, position
	RiskRewardRatio *float64    `json:"risk_reward_ratio,omitempty"`

	FundamentalReasons []string `json:"fundamental_reasons,omitempty"`
	TechnicalReasons   []string `json:"technical_reasons,omitempty"`
	NewsCatalysts      []string `json:"news_catalysts,omitempty"`
	RiskFactors        []string `json:"risk_factors,omitempty"`
	MarketTiming       string   `json:"market_timing,omitempty"`
	SectorOutlook      string   `json:"sector_outlook,omitempty"`
}

// ReportAlert is a market alert as produced inside a synthesized report.
type ReportAlert struct {
	AlertType         AlertType     `json:"alert_type"`
	Severity          AlertSeverity `json:"severity"`
	Description       string        `json:"description"`
	ImmediateAction   string        `json:"immediate_action,omitempty"`
	MonitoringPoints  []string      `json:"monitoring_points,omitempty"`
	RootCause         string        `json:"root_cause,omitempty"`
	ImpactAnalysis    string        `json:"impact_analysis,omitempty"`
	HistoricalContext string        `json:"historical_context,omitempty"`
}

// AnalysisReport is the structured synthesis output for one symbol, one
// cycle. Immutable after creation.
type AnalysisReport struct {
	Symbol       string       `json:"symbol"`
	AsOf         string       `json:"as_of"`
	SecurityType SecurityType `json:"security_type"`

	FundamentalsSummary SectionScore `json:"fundamentals_summary"`
	TechnicalsSummary   SectionScore `json:"technicals_summary"`
	NewsSummary         SectionScore `json:"news_summary"`

	KeyFlags          []string `json:"key_flags,omitempty"`
	OverallCommentary string   `json:"overall_commentary"`

	TradingSignal         TradingSignal `json:"trading_signal"`
	MarketAlerts          []ReportAlert `json:"market_alerts,omitempty"`
	IntradayOpportunities []string      `json:"intraday_opportunities,omitempty"`
	RiskFactors           []string      `json:"risk_factors,omitempty"`
	CatalystEvents        []string      `json:"catalyst_events,omitempty"`

	OverallAnalysis string   `json:"overall_analysis"`
	KeyDrivers      []string `json:"key_drivers,omitempty"`
	ContrarianViews string   `json:"contrarian_views,omitempty"`
}

// Validate checks the report against its schema contract: required fields
// present, enums in range, scores and confidence within [0,1].
func (r *AnalysisReport) Validate() error {
	if r.Symbol == "" {
		return fmt.Errorf("missing symbol")
	}
	if !r.SecurityType.Valid() {
		return fmt.Errorf("invalid security_type %q", r.SecurityType)
	}
	for name, s := range map[string]SectionScore{
		"fundamentals_summary": r.FundamentalsSummary,
		"technicals_summary":   r.TechnicalsSummary,
		"news_summary":         r.NewsSummary,
	} {
		if s.Score < 0 || s.Score > 1 {
			return fmt.Errorf("%s.score %.3f outside [0,1]", name, s.Score)
		}
	}
	switch r.TradingSignal.Action {
	case ActionBuy, ActionSell, ActionHold:
	default:
		return fmt.Errorf("invalid trading_signal.action %q", r.TradingSignal.Action)
	}
	if c := r.TradingSignal.Confidence; c < 0 || c > 1 {
		return fmt.Errorf("trading_signal.confidence %.3f outside [0,1]", c)
	}
	for i, a := range r.MarketAlerts {
		switch a.AlertType {
		case AlertHighVolatility, AlertNewsCatalyst, AlertTechnicalBreakout,
			AlertFundamentalChange, AlertSectorRotation:
		default:
			return fmt.Errorf("market_alerts[%d]: invalid alert_type %q", i, a.AlertType)
		}
		switch a.Severity {
		case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		default:
			return fmt.Errorf("market_alerts[%d]: invalid severity %q", i, a.Severity)
		}
	}
	return nil
}
