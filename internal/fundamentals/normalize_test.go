package fundamentals

import (
	"testing"

	"TradeScope/internal/model"
)

func TestNormalize_Equity(t *testing.T) {
	raw := map[string]any{
		"trailingPE":    28.5,
		"grossMargins":  0.45,
		"revenueGrowth": 0.12,
		"debtToEquity":  1.0,
		"totalCash":     int64(5_000_000_000),
		"irrelevantKey": 42.0,
	}
	got := Normalize(raw, model.SecurityEquity)

	if got.Type != model.SecurityEquity {
		t.Errorf("type = %q, want equity", got.Type)
	}
	checks := map[string]float64{
		"pe_trailing":    28.5,
		"gross_margin":   0.45,
		"rev_growth_yoy": 0.12,
		"debt_to_equity": 1.0,
		"cash":           5_000_000_000,
	}
	for name, want := range checks {
		v, ok := got.Get(name)
		if !ok {
			t.Errorf("ratio %s absent, want %v", name, want)
			continue
		}
		if v != want {
			t.Errorf("ratio %s = %v, want %v", name, v, want)
		}
	}
	if _, ok := got.Get("irrelevantKey"); ok {
		t.Error("unmapped provider key must not leak into ratios")
	}
}

func TestNormalize_AbsentStaysAbsent(t *testing.T) {
	got := Normalize(map[string]any{}, model.SecurityEquity)
	if len(got.Ratios) != 0 {
		t.Errorf("expected no ratios for empty input, got %v", got.Ratios)
	}
	if _, ok := got.Get("gross_margin"); ok {
		t.Error("absent field must not be defaulted to zero")
	}
}

func TestNormalize_ETF(t *testing.T) {
	raw := map[string]any{
		"annualReportExpenseRatio": 0.0009,
		"totalAssets":              450_000_000_000.0,
		"yield":                    0.013,
		"category":                 "Large Blend",
		"trailingPE":               25.0, // equity field, must not apply
	}
	got := Normalize(raw, model.SecurityETF)

	if got.Type != model.SecurityETF {
		t.Errorf("type = %q, want etf", got.Type)
	}
	if got.Category != "Large Blend" {
		t.Errorf("category = %q, want Large Blend", got.Category)
	}
	if v, ok := got.Get("expense_ratio"); !ok || v != 0.0009 {
		t.Errorf("expense_ratio = %v (present=%v), want 0.0009", v, ok)
	}
	if _, ok := got.Get("pe_trailing"); ok {
		t.Error("equity ratio must not appear for etf")
	}
}
