package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"TradeScope/internal/alerts"
	"TradeScope/internal/calculator"
	"TradeScope/internal/collector"
	"TradeScope/internal/fundamentals"
	"TradeScope/internal/grading"
	"TradeScope/internal/model"
	"TradeScope/internal/notifier"
	"TradeScope/internal/recorder"
	"TradeScope/internal/sentiment"
	"TradeScope/internal/synthesis"
)

const (
	newsLimit          = 10
	opportunityMinConf = 0.7
	volatilityScore    = 0.8
)

// Options configures a Monitor.
type Options struct {
	Symbols          []string
	SecurityType     model.SecurityType
	LookbackDays     int
	UpdateInterval   time.Duration
	InterSymbolDelay time.Duration
	SummaryPath      string
}

// Monitor runs analysis cycles over a fixed symbol set, retains the
// latest per-symbol result, and derives opportunities and alerts from
// that history. One monitor instance supports at most one running cycle
// at a time; Start and RunAnalysisCycle must not be called concurrently
// on the same instance.
type Monitor struct {
	opts Options

	provider  collector.MarketDataProvider
	news      collector.NewsProvider
	sentiment *sentiment.Analyzer
	engine    *grading.Engine
	synth     *synthesis.Synthesizer
	alertLog  *alerts.Log
	recorder  recorder.Recorder
	notifier  notifier.Notifier

	mu      sync.Mutex
	history map[string]*model.SymbolAnalysisRecord
}

// New creates a Monitor. The notifier may be nil; notification failures
// never affect monitor state either way.
func New(opts Options, provider collector.MarketDataProvider, news collector.NewsProvider,
	engine *grading.Engine, synth *synthesis.Synthesizer, alertLog *alerts.Log,
	rec recorder.Recorder, notify notifier.Notifier) *Monitor {
	if rec == nil {
		rec = &recorder.NoopRecorder{}
	}
	return &Monitor{
		opts:      opts,
		provider:  provider,
		news:      news,
		sentiment: sentiment.NewAnalyzer(),
		engine:    engine,
		synth:     synth,
		alertLog:  alertLog,
		recorder:  rec,
		notifier:  notify,
		history:   make(map[string]*model.SymbolAnalysisRecord),
	}
}

// RunAnalysisCycle processes every configured symbol in order. A
// failure for one symbol is recorded in history and does not abort the
// cycle for the rest.
func (m *Monitor) RunAnalysisCycle(ctx context.Context) {
	started := time.Now()
	log.Printf("[INFO] analysis cycle started: %d symbols", len(m.opts.Symbols))

	failures := 0
	for i, symbol := range m.opts.Symbols {
		if i > 0 && m.opts.InterSymbolDelay > 0 {
			select {
			case <-ctx.Done():
				log.Printf("[WARN] cycle cancelled after %d/%d symbols", i, len(m.opts.Symbols))
				return
			case <-time.After(m.opts.InterSymbolDelay):
			}
		}

		rec := m.analyzeSymbol(ctx, symbol)
		if rec.Failed() {
			failures++
			log.Printf("[ERROR] %s analysis failed: %s", symbol, rec.Err)
		} else {
			log.Printf("[INFO] %s graded %s (score %.3f)", symbol, rec.Grade, rec.OverallScore)
		}

		m.mu.Lock()
		m.history[symbol] = rec
		m.mu.Unlock()

		if err := m.recorder.RecordAnalysis(rec); err != nil {
			log.Printf("[ERROR] record analysis for %s: %v", symbol, err)
		}
		if !rec.Failed() {
			m.trySend(ctx, notifier.FormatAnalysis(rec))
		}
	}

	opportunities := m.CheckOpportunities()
	newAlerts := m.generateAlerts()
	if len(newAlerts) > 0 {
		if err := m.alertLog.Append(newAlerts); err != nil {
			log.Printf("[ERROR] append alerts: %v", err)
		}
		for i := range newAlerts {
			if err := m.recorder.RecordAlert(&newAlerts[i]); err != nil {
				log.Printf("[ERROR] record alert: %v", err)
			}
			m.trySend(ctx, notifier.FormatAlert(&newAlerts[i]))
		}
	}

	if err := m.recorder.RecordCycle(&recorder.CycleEvent{
		Symbols:       len(m.opts.Symbols),
		Failures:      failures,
		Opportunities: len(opportunities),
		Alerts:        len(newAlerts),
	}); err != nil {
		log.Printf("[ERROR] record cycle: %v", err)
	}

	if m.opts.SummaryPath != "" {
		if err := m.WriteSummary(m.opts.SummaryPath); err != nil {
			log.Printf("[ERROR] write summary: %v", err)
		}
	}

	log.Printf("[INFO] analysis cycle finished in %s: %d ok, %d failed, %d opportunities, %d alerts",
		time.Since(started).Round(time.Millisecond),
		len(m.opts.Symbols)-failures, failures, len(opportunities), len(newAlerts))
}

// analyzeSymbol runs the full fetch/normalize/indicate/synthesize/grade
// sequence for one symbol. Errors are captured in the returned record,
// never propagated.
func (m *Monitor) analyzeSymbol(ctx context.Context, symbol string) *model.SymbolAnalysisRecord {
	fail := func(step string, err error) *model.SymbolAnalysisRecord {
		return &model.SymbolAnalysisRecord{
			Symbol:    symbol,
			Timestamp: time.Now(),
			Err:       fmt.Sprintf("%s: %v", step, err),
		}
	}

	table, err := m.provider.PriceHistory(ctx, symbol, m.opts.LookbackDays)
	if err != nil {
		return fail("price history", err)
	}
	series, err := collector.NormalizePriceTable(symbol, table)
	if err != nil {
		return fail("normalize prices", err)
	}
	indicators, err := calculator.Compute(series)
	if err != nil {
		return fail("compute indicators", err)
	}
	snapshot := indicators.LatestSignals()

	rawFund, err := m.provider.Fundamentals(ctx, symbol, m.opts.SecurityType)
	if err != nil {
		return fail("fundamentals", err)
	}
	ratios := fundamentals.Normalize(rawFund, m.opts.SecurityType)

	profile, err := m.provider.CompanyProfile(ctx, symbol)
	if err != nil {
		// Profile is descriptive only; proceed with an empty one.
		log.Printf("[WARN] %s company profile: %v", symbol, err)
		profile = model.CompanyProfile{}
	}

	var items []model.NewsItem
	if m.news != nil {
		items, err = m.news.FetchNews(ctx, symbol, newsLimit)
		if err != nil {
			log.Printf("[WARN] %s news fetch: %v", symbol, err)
			items = nil
		}
	}
	sentSummary := m.sentiment.Summarize(items)

	report, err := m.synth.Synthesize(ctx, synthesis.Inputs{
		Symbol:        symbol,
		SecurityType:  m.opts.SecurityType,
		AsOf:          time.Now(),
		Profile:       profile,
		Fundamentals:  ratios,
		Technicals:    snapshot,
		NewsItems:     items,
		NewsSentiment: sentSummary,
	})
	if err != nil {
		return fail("synthesize report", err)
	}

	overall := m.engine.OverallScore(
		report.FundamentalsSummary.Score,
		report.TechnicalsSummary.Score,
		report.NewsSummary.Score,
	)
	signal := report.TradingSignal

	return &model.SymbolAnalysisRecord{
		Symbol:          symbol,
		Timestamp:       time.Now(),
		Grade:           grading.ToGrade(overall),
		OverallScore:    overall,
		TradingSignal:   &signal,
		RiskFactors:     report.RiskFactors,
		CatalystEvents:  report.CatalystEvents,
		OverallAnalysis: report.OverallAnalysis,
		KeyDrivers:      report.KeyDrivers,
		ContrarianViews: report.ContrarianViews,
	}
}

// CheckOpportunities derives the current opportunity list from history:
// grade A or B with signal confidence above 0.7.
func (m *Monitor) CheckOpportunities() []model.TradingOpportunity {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.TradingOpportunity
	for _, symbol := range m.opts.Symbols {
		rec, ok := m.history[symbol]
		if !ok || rec.Failed() || rec.TradingSignal == nil {
			continue
		}
		if (rec.Grade == "A" || rec.Grade == "B") && rec.TradingSignal.Confidence > opportunityMinConf {
			out = append(out, model.TradingOpportunity{
				Symbol:     rec.Symbol,
				Grade:      rec.Grade,
				Confidence: rec.TradingSignal.Confidence,
				Action:     rec.TradingSignal.Action,
				Timestamp:  rec.Timestamp,
			})
		}
	}
	return out
}

// generateAlerts derives alerts from the current history: unusually high
// overall scores flag volatility, failing grades flag fundamental
// deterioration.
func (m *Monitor) generateAlerts() []model.MarketAlert {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.MarketAlert
	for _, symbol := range m.opts.Symbols {
		rec, ok := m.history[symbol]
		if !ok || rec.Failed() {
			continue
		}
		if rec.OverallScore > volatilityScore {
			out = append(out, alerts.New(symbol, model.AlertHighVolatility, model.SeverityHigh,
				fmt.Sprintf("%s overall score %.3f exceeds %.2f", symbol, rec.OverallScore, volatilityScore),
				true))
		}
		if rec.Grade == "D" || rec.Grade == "F" {
			out = append(out, alerts.New(symbol, model.AlertFundamentalChange, model.SeverityMedium,
				fmt.Sprintf("%s graded %s (score %.3f)", symbol, rec.Grade, rec.OverallScore),
				false))
		}
	}
	return out
}

// GetSummaryReport produces a read-only snapshot of the monitor state.
// Safe to call at any point, including mid-cycle.
func (m *Monitor) GetSummaryReport() *model.SummaryReport {
	opportunities := m.CheckOpportunities()

	m.mu.Lock()
	digest := make(map[string]model.AnalysisDigest, len(m.history))
	for symbol, rec := range m.history {
		digest[symbol] = model.AnalysisDigest{
			Grade:      rec.Grade,
			Score:      rec.OverallScore,
			LastUpdate: rec.Timestamp,
			Err:        rec.Err,
		}
	}
	m.mu.Unlock()

	activeAlerts := 0
	if m.alertLog != nil {
		logged, err := m.alertLog.Read()
		if err != nil {
			log.Printf("[ERROR] read alert log: %v", err)
		}
		now := time.Now()
		for _, a := range logged {
			if a.ExpiresAt.After(now) {
				activeAlerts++
			}
		}
	}

	return &model.SummaryReport{
		Timestamp:            time.Now(),
		SymbolsMonitored:     len(m.opts.Symbols),
		LastAnalysis:         digest,
		TradingOpportunities: opportunities,
		ActiveAlerts:         activeAlerts,
	}
}

// WriteSummary writes the current summary report as JSON.
func (m *Monitor) WriteSummary(path string) error {
	report := m.GetSummaryReport()
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// Start runs continuous monitoring: one cycle immediately, then one per
// update interval. Cycles never overlap. Returns when ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	log.Printf("[INFO] monitor started: interval %s", m.opts.UpdateInterval)
	m.RunAnalysisCycle(ctx)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] monitor stopped")
			return
		case now := <-ticker.C:
			if now.Sub(last) >= m.opts.UpdateInterval {
				m.RunAnalysisCycle(ctx)
				last = time.Now()
			}
		}
	}
}

func (m *Monitor) trySend(ctx context.Context, text string) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.SendWithRetry(ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
