package notifier

import (
	"fmt"
	"strings"
	"time"

	"TradeScope/internal/model"
)

// FormatAnalysis formats a completed symbol analysis into a Slack message.
func FormatAnalysis(rec *model.SymbolAnalysisRecord) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("*%s* analysis | %s\n", rec.Symbol, rec.Timestamp.Format("2006-01-02 15:04")))

	if rec.Failed() {
		b.WriteString(fmt.Sprintf(":warning: analysis failed: %s\n", rec.Err))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Grade: *%s* (score %.3f)\n", rec.Grade, rec.OverallScore))
	if sig := rec.TradingSignal; sig != nil {
		b.WriteString(fmt.Sprintf("Action: *%s* (confidence %.2f, horizon %s)\n",
			sig.Action, sig.Confidence, sig.TimeHorizon))
		if sig.EntryPrice != nil {
			b.WriteString(fmt.Sprintf("Entry: %.2f", *sig.EntryPrice))
			if sig.StopLoss != nil {
				b.WriteString(fmt.Sprintf(" | Stop: %.2f", *sig.StopLoss))
			}
			if sig.TakeProfit != nil {
				b.WriteString(fmt.Sprintf(" | Target: %.2f", *sig.TakeProfit))
			}
			b.WriteString("\n")
		}
		for _, r := range sig.FundamentalReasons {
			b.WriteString(fmt.Sprintf("  + %s\n", r))
		}
		for _, r := range sig.TechnicalReasons {
			b.WriteString(fmt.Sprintf("  + %s\n", r))
		}
		for _, r := range sig.RiskFactors {
			b.WriteString(fmt.Sprintf("  - %s\n", r))
		}
	}
	return b.String()
}

// FormatAlert formats a market alert for push notification.
func FormatAlert(alert *model.MarketAlert) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(":rotating_light: *%s* [%s] %s\n", alert.Symbol, alert.Severity, alert.AlertType))
	b.WriteString(alert.Message)
	if alert.ActionRequired {
		b.WriteString("\n*Action required*")
	}
	return b.String()
}

// FormatSummary formats the daily monitoring summary report.
func FormatSummary(report *model.SummaryReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(":chart_with_upwards_trend: *Monitoring Summary* | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Symbols monitored: %d\n", report.SymbolsMonitored))

	if len(report.TradingOpportunities) > 0 {
		b.WriteString("\n*Opportunities:*\n")
		for _, opp := range report.TradingOpportunities {
			b.WriteString(fmt.Sprintf("  %s: %s (grade %s, confidence %.2f)\n",
				opp.Symbol, opp.Action, opp.Grade, opp.Confidence))
		}
	} else {
		b.WriteString("\nNo trading opportunities.\n")
	}

	b.WriteString(fmt.Sprintf("\nActive alerts: %d\n", report.ActiveAlerts))
	return b.String()
}
