// Package fundamentals maps provider-specific raw fundamentals into the
// canonical ratio set. Pure pass-through: no range validation, and absent
// source fields stay absent rather than defaulting to zero.
package fundamentals

import "TradeScope/internal/model"

// equityFields maps provider keys to canonical equity ratio names.
var equityFields = map[string]string{
	"trailingPE":          "pe_trailing",
	"forwardPE":           "pe_forward",
	"priceToBook":         "pb",
	"enterpriseToEbitda":  "ev_ebitda",
	"grossMargins":        "gross_margin",
	"operatingMargins":    "op_margin",
	"profitMargins":       "profit_margin",
	"returnOnEquity":      "roe",
	"revenueGrowth":       "rev_growth_yoy",
	"ebitdaMargins":       "ebitda_margin",
	"debtToEquity":        "debt_to_equity",
	"freeCashflow":        "fcf",
	"totalCash":           "cash",
	"totalDebt":           "debt",
	"beta":                "beta",
	"dividendYield":       "dividend_yield",
}

// fundFields maps provider keys to canonical etf/fund ratio names.
var fundFields = map[string]string{
	"annualReportExpenseRatio": "expense_ratio",
	"totalAssets":              "aum",
	"yield":                    "distribution_yield",
}

// Normalize extracts the canonical ratio set for the given security type
// from a raw provider dict.
func Normalize(raw map[string]any, secType model.SecurityType) model.FundamentalRatios {
	out := model.FundamentalRatios{Type: secType, Ratios: map[string]float64{}}

	fields := equityFields
	if secType != model.SecurityEquity {
		fields = fundFields
		if cat, ok := raw["category"].(string); ok {
			out.Category = cat
		}
	}
	for source, name := range fields {
		if v, ok := asFloat(raw[source]); ok {
			out.Ratios[name] = v
		}
	}
	return out
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
