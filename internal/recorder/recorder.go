package recorder

import "TradeScope/internal/model"

// CycleEvent summarizes one completed analysis cycle.
type CycleEvent struct {
	Symbols       int
	Failures      int
	Opportunities int
	Alerts        int
}

// Recorder persists historical analysis data. The monitor records every
// symbol result and persisted alert; recording failures are logged by the
// caller, never fatal to a cycle.
type Recorder interface {
	RecordAnalysis(rec *model.SymbolAnalysisRecord) error
	RecordAlert(alert *model.MarketAlert) error
	RecordCycle(evt *CycleEvent) error
	Close() error
}
