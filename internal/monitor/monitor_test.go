package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"TradeScope/internal/alerts"
	"TradeScope/internal/collector"
	"TradeScope/internal/grading"
	"TradeScope/internal/model"
	"TradeScope/internal/recorder"
	"TradeScope/internal/synthesis"
)

// scriptedGenerator returns a fixed report per symbol, mirroring what a
// live report generator would produce.
type scriptedGenerator struct {
	reports map[string]*model.AnalysisReport
	err     error
}

func (g *scriptedGenerator) Generate(_ context.Context, payload *synthesis.Payload) (*model.AnalysisReport, error) {
	if g.err != nil {
		return nil, g.err
	}
	r, ok := g.reports[payload.Symbol]
	if !ok {
		return nil, fmt.Errorf("no scripted report for %s", payload.Symbol)
	}
	return r, nil
}

func scriptedReport(symbol string, fund, tech, news, confidence float64) *model.AnalysisReport {
	return &model.AnalysisReport{
		Symbol:              symbol,
		AsOf:                "2026-09-01",
		SecurityType:        model.SecurityEquity,
		FundamentalsSummary: model.SectionScore{Score: fund, Rationale: "healthy margins"},
		TechnicalsSummary:   model.SectionScore{Score: tech, Rationale: "uptrend intact"},
		NewsSummary:         model.SectionScore{Score: news, Rationale: "positive coverage"},
		OverallCommentary:   "constructive setup",
		TradingSignal: model.TradingSignal{
			Action:      model.ActionBuy,
			Confidence:  confidence,
			TimeHorizon: "swing",
		},
		OverallAnalysis: "trend and fundamentals aligned",
	}
}

func newTestMonitor(t *testing.T, symbols []string, provider *collector.MockProvider, gen synthesis.Generator) *Monitor {
	t.Helper()
	engine, err := grading.NewEngine(grading.DefaultRubric())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return New(Options{
		Symbols:      symbols,
		SecurityType: model.SecurityEquity,
		LookbackDays: 365,
		SummaryPath:  filepath.Join(t.TempDir(), "summary.json"),
	}, provider, provider, engine, synthesis.NewSynthesizer(gen, ""),
		alerts.NewLog(filepath.Join(t.TempDir(), "alerts.json")),
		recorder.NewNoopRecorder(), nil)
}

func TestRunAnalysisCycle(t *testing.T) {
	provider := &collector.MockProvider{
		BasePrice: 100, Trend: 0.5, Bars: 300,
		RawFund: map[string]map[string]any{
			"AAPL": {
				"grossMargins":  0.45,
				"revenueGrowth": 0.12,
				"debtToEquity":  1.0,
			},
		},
		News: map[string][]model.NewsItem{
			"AAPL": {{Title: "Record revenue, strong outlook", Time: time.Now()}},
		},
	}
	gen := &scriptedGenerator{reports: map[string]*model.AnalysisReport{
		"AAPL": scriptedReport("AAPL", 0.8, 0.75, 0.62, 0.9),
	}}
	m := newTestMonitor(t, []string{"AAPL"}, provider, gen)

	m.RunAnalysisCycle(context.Background())

	rec, ok := m.history["AAPL"]
	if !ok {
		t.Fatal("no history entry for AAPL")
	}
	if rec.Failed() {
		t.Fatalf("analysis failed: %s", rec.Err)
	}
	want := 0.5*0.8 + 0.3*0.75 + 0.2*0.62
	if math.Abs(rec.OverallScore-want) > 1e-9 {
		t.Errorf("overall score = %.6f, want %.6f", rec.OverallScore, want)
	}
	if rec.Grade != "B" {
		t.Errorf("grade = %q, want B", rec.Grade)
	}
	if rec.TradingSignal == nil || rec.TradingSignal.Action != model.ActionBuy {
		t.Errorf("trading signal not carried into history: %+v", rec.TradingSignal)
	}

	opps := m.CheckOpportunities()
	if len(opps) != 1 {
		t.Fatalf("opportunities = %d, want 1", len(opps))
	}
	if opps[0].Symbol != "AAPL" || opps[0].Grade != "B" || opps[0].Confidence != 0.9 {
		t.Errorf("unexpected opportunity: %+v", opps[0])
	}
}

func TestCycleIsolatesFailedSymbol(t *testing.T) {
	provider := &collector.MockProvider{
		BasePrice: 100, Trend: 0.5, Bars: 300,
		FailPrice: map[string]error{
			"XYZ": &model.NoDataError{Symbol: "XYZ"},
		},
	}
	gen := &scriptedGenerator{reports: map[string]*model.AnalysisReport{
		"AAPL": scriptedReport("AAPL", 0.6, 0.6, 0.5, 0.5),
	}}
	m := newTestMonitor(t, []string{"AAPL", "XYZ"}, provider, gen)

	m.RunAnalysisCycle(context.Background())

	aapl, ok := m.history["AAPL"]
	if !ok || aapl.Failed() {
		t.Fatalf("AAPL should have completed, got %+v", aapl)
	}
	xyz, ok := m.history["XYZ"]
	if !ok {
		t.Fatal("no history entry for XYZ")
	}
	if !xyz.Failed() {
		t.Fatal("XYZ should have failed")
	}
	var nde *model.NoDataError
	if !errors.As(provider.FailPrice["XYZ"], &nde) {
		t.Fatal("fixture error is not a NoDataError")
	}
	if xyz.Err == "" || xyz.Grade != "" || xyz.TradingSignal != nil {
		t.Errorf("failed record should carry only the error: %+v", xyz)
	}
}

func TestLowGradeRaisesAlert(t *testing.T) {
	provider := &collector.MockProvider{BasePrice: 100, Trend: -0.3, Bars: 300}
	gen := &scriptedGenerator{reports: map[string]*model.AnalysisReport{
		"WEAK": scriptedReport("WEAK", 0.1, 0.2, 0.3, 0.4),
	}}
	m := newTestMonitor(t, []string{"WEAK"}, provider, gen)

	m.RunAnalysisCycle(context.Background())

	logged, err := m.alertLog.Read()
	if err != nil {
		t.Fatalf("read alert log: %v", err)
	}
	if len(logged) != 1 {
		t.Fatalf("alerts = %d, want 1", len(logged))
	}
	a := logged[0]
	if a.AlertType != model.AlertFundamentalChange || a.Severity != model.SeverityMedium {
		t.Errorf("unexpected alert: %+v", a)
	}
	if a.Symbol != "WEAK" || a.ID == "" {
		t.Errorf("alert missing identity: %+v", a)
	}
}

func TestHighScoreRaisesVolatilityAlert(t *testing.T) {
	provider := &collector.MockProvider{BasePrice: 100, Trend: 0.5, Bars: 300}
	gen := &scriptedGenerator{reports: map[string]*model.AnalysisReport{
		"HOT": scriptedReport("HOT", 0.95, 0.9, 0.85, 0.95),
	}}
	m := newTestMonitor(t, []string{"HOT"}, provider, gen)

	m.RunAnalysisCycle(context.Background())

	logged, err := m.alertLog.Read()
	if err != nil {
		t.Fatalf("read alert log: %v", err)
	}
	if len(logged) != 1 {
		t.Fatalf("alerts = %d, want 1", len(logged))
	}
	if logged[0].AlertType != model.AlertHighVolatility {
		t.Errorf("alert type = %s, want HIGH_VOLATILITY", logged[0].AlertType)
	}
	if !logged[0].ActionRequired {
		t.Error("volatility alert should require action")
	}
}

func TestSynthesisFailureRecordedPerSymbol(t *testing.T) {
	provider := &collector.MockProvider{BasePrice: 100, Trend: 0.5, Bars: 300}
	gen := &scriptedGenerator{err: errors.New("model unavailable")}
	m := newTestMonitor(t, []string{"AAPL"}, provider, gen)

	m.RunAnalysisCycle(context.Background())

	rec := m.history["AAPL"]
	if rec == nil || !rec.Failed() {
		t.Fatalf("expected failed record, got %+v", rec)
	}
	if rec.Err == "" {
		t.Error("error message should be preserved in history")
	}
}

func TestSummaryRoundTrip(t *testing.T) {
	provider := &collector.MockProvider{
		BasePrice: 100, Trend: 0.5, Bars: 300,
		FailPrice: map[string]error{
			"XYZ": &model.NoDataError{Symbol: "XYZ"},
		},
	}
	gen := &scriptedGenerator{reports: map[string]*model.AnalysisReport{
		"AAPL": scriptedReport("AAPL", 0.8, 0.75, 0.62, 0.9),
	}}
	m := newTestMonitor(t, []string{"AAPL", "XYZ"}, provider, gen)

	m.RunAnalysisCycle(context.Background())

	path := filepath.Join(t.TempDir(), "summary.json")
	if err := m.WriteSummary(path); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	var got model.SummaryReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}

	want := m.GetSummaryReport()
	if got.SymbolsMonitored != want.SymbolsMonitored {
		t.Errorf("symbols_monitored = %d, want %d", got.SymbolsMonitored, want.SymbolsMonitored)
	}
	if got.ActiveAlerts != want.ActiveAlerts {
		t.Errorf("active_alerts = %d, want %d", got.ActiveAlerts, want.ActiveAlerts)
	}
	if len(got.LastAnalysis) != len(want.LastAnalysis) {
		t.Fatalf("last_analysis size = %d, want %d", len(got.LastAnalysis), len(want.LastAnalysis))
	}
	for symbol, w := range want.LastAnalysis {
		g, ok := got.LastAnalysis[symbol]
		if !ok {
			t.Fatalf("missing last_analysis entry for %s", symbol)
		}
		if g.Grade != w.Grade || g.Score != w.Score || g.Err != w.Err {
			t.Errorf("%s digest mismatch: got %+v, want %+v", symbol, g, w)
		}
		if !g.LastUpdate.Equal(w.LastUpdate) {
			t.Errorf("%s last_update mismatch: got %s, want %s", symbol, g.LastUpdate, w.LastUpdate)
		}
	}
	if len(got.TradingOpportunities) != len(want.TradingOpportunities) {
		t.Fatalf("opportunities = %d, want %d", len(got.TradingOpportunities), len(want.TradingOpportunities))
	}
	for i, w := range want.TradingOpportunities {
		g := got.TradingOpportunities[i]
		if g.Symbol != w.Symbol || g.Grade != w.Grade || g.Confidence != w.Confidence || g.Action != w.Action {
			t.Errorf("opportunity %d mismatch: got %+v, want %+v", i, g, w)
		}
	}
}

type captureNotifier struct {
	messages []string
}

func (c *captureNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	c.messages = append(c.messages, text)
	return nil
}

func TestCyclePushesAnalysisNotifications(t *testing.T) {
	provider := &collector.MockProvider{
		BasePrice: 100, Trend: 0.5, Bars: 300,
		FailPrice: map[string]error{
			"XYZ": &model.NoDataError{Symbol: "XYZ"},
		},
	}
	gen := &scriptedGenerator{reports: map[string]*model.AnalysisReport{
		"AAPL": scriptedReport("AAPL", 0.8, 0.75, 0.62, 0.9),
	}}
	engine, err := grading.NewEngine(grading.DefaultRubric())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	captured := &captureNotifier{}
	m := New(Options{
		Symbols:      []string{"AAPL", "XYZ"},
		SecurityType: model.SecurityEquity,
		LookbackDays: 365,
	}, provider, provider, engine, synthesis.NewSynthesizer(gen, ""),
		alerts.NewLog(filepath.Join(t.TempDir(), "alerts.json")),
		recorder.NewNoopRecorder(), captured)

	m.RunAnalysisCycle(context.Background())

	if len(captured.messages) != 1 {
		t.Fatalf("notifications = %d, want 1 (completed symbols only)", len(captured.messages))
	}
	msg := captured.messages[0]
	if !strings.Contains(msg, "*AAPL*") || !strings.Contains(msg, "Grade: *B*") {
		t.Errorf("analysis notification malformed:\n%s", msg)
	}
	if strings.Contains(msg, "XYZ") {
		t.Errorf("failed symbol must not be pushed:\n%s", msg)
	}
}

func TestSummaryReportSafeBeforeAnyCycle(t *testing.T) {
	provider := &collector.MockProvider{BasePrice: 100, Trend: 0.5, Bars: 300}
	gen := &scriptedGenerator{}
	m := newTestMonitor(t, []string{"AAPL"}, provider, gen)

	report := m.GetSummaryReport()
	if report.SymbolsMonitored != 1 {
		t.Errorf("symbols_monitored = %d, want 1", report.SymbolsMonitored)
	}
	if len(report.LastAnalysis) != 0 {
		t.Errorf("last_analysis should be empty before any cycle")
	}
	if len(report.TradingOpportunities) != 0 {
		t.Errorf("no opportunities expected before any cycle")
	}
}
