package model

import "time"

// SymbolAnalysisRecord is the durable per-symbol result kept in the
// monitor's history. One entry per symbol, overwritten each cycle. A
// failed analysis keeps only Symbol and Err.
type SymbolAnalysisRecord struct {
	Symbol          string         `json:"symbol"`
	Timestamp       time.Time      `json:"timestamp"`
	Grade           string         `json:"grade,omitempty"`
	OverallScore    float64        `json:"overall_score,omitempty"`
	TradingSignal   *TradingSignal `json:"trading_signal,omitempty"`
	RiskFactors     []string       `json:"risk_factors,omitempty"`
	CatalystEvents  []string       `json:"catalyst_events,omitempty"`
	OverallAnalysis string         `json:"overall_analysis,omitempty"`
	KeyDrivers      []string       `json:"key_drivers,omitempty"`
	ContrarianViews string         `json:"contrarian_views,omitempty"`
	Err             string         `json:"error,omitempty"`
}

// Failed reports whether the record represents an analysis failure.
func (r *SymbolAnalysisRecord) Failed() bool { return r.Err != "" }

// TradingOpportunity is derived on demand from the current history, never
// stored.
type TradingOpportunity struct {
	Symbol     string      `json:"symbol"`
	Grade      string      `json:"grade"`
	Confidence float64     `json:"confidence"`
	Action     TradeAction `json:"action"`
	Timestamp  time.Time   `json:"timestamp"`
}

// MarketAlert is the persisted form of an alert, appended to the bounded
// alert log.
type MarketAlert struct {
	ID             string        `json:"id"`
	Timestamp      time.Time     `json:"timestamp"`
	Symbol         string        `json:"symbol"`
	AlertType      AlertType     `json:"alert_type"`
	Severity       AlertSeverity `json:"severity"`
	Message        string        `json:"message"`
	ActionRequired bool          `json:"action_required"`
	ExpiresAt      time.Time     `json:"expires_at"`
}

// AnalysisDigest is the per-symbol slice of a summary report.
type AnalysisDigest struct {
	Grade      string    `json:"grade,omitempty"`
	Score      float64   `json:"score,omitempty"`
	LastUpdate time.Time `json:"last_update"`
	Err        string    `json:"error,omitempty"`
}

// SummaryReport is the read-only snapshot produced by the monitor; it is
// also the primary externally consumed JSON artifact.
type SummaryReport struct {
	Timestamp            time.Time                 `json:"timestamp"`
	SymbolsMonitored     int                       `json:"symbols_monitored"`
	LastAnalysis         map[string]AnalysisDigest `json:"last_analysis"`
	TradingOpportunities []TradingOpportunity      `json:"trading_opportunities"`
	ActiveAlerts         int                       `json:"active_alerts"`
}
