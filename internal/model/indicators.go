package model

import (
	"encoding/json"
	"math"
)

// IndicatorSnapshot holds the latest-row values of all computed technical
// indicators. Values derived from an unfilled rolling window are NaN
// (insufficient history, not an error); the boolean signals are false
// whenever their underlying inputs are NaN.
type IndicatorSnapshot struct {
	Price       float64
	SMA50       float64
	SMA200      float64
	RSI14       float64
	MACDBull    bool
	AboveSMA200 bool
	BBLower     float64
	BBUpper     float64
	ATR14       float64
}

// MarshalJSON emits NaN values as null so the snapshot stays representable
// on the wire without silently dropping keys.
func (s IndicatorSnapshot) MarshalJSON() ([]byte, error) {
	num := func(v float64) *float64 {
		if math.IsNaN(v) {
			return nil
		}
		return &v
	}
	return json.Marshal(map[string]any{
		"price":        num(s.Price),
		"sma50":        num(s.SMA50),
		"sma200":       num(s.SMA200),
		"rsi14":        num(s.RSI14),
		"macd_bull":    s.MACDBull,
		"above_sma200": s.AboveSMA200,
		"bb_lower":     num(s.BBLower),
		"bb_upper":     num(s.BBUpper),
		"atr14":        num(s.ATR14),
	})
}
