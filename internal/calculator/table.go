package calculator

import (
	"errors"
	"math"

	"TradeScope/internal/model"
)

// Indicator windows, fixed to match the standard definitions.
const (
	smaShortWindow  = 50
	smaLongWindow   = 200
	rsiWindow       = 14
	bollingerWindow = 20
	bollingerWidth  = 2.0
	atrWindow       = 14
)

// Table holds the full indicator series computed over one price series.
// Columns are index-aligned with Bars; warm-up positions are NaN.
type Table struct {
	Bars []model.OHLCV

	SMA50  []float64
	SMA200 []float64
	RSI14  []float64

	MACD       []float64
	MACDSignal []float64
	MACDHist   []float64

	BBLower []float64
	BBUpper []float64

	ATR14 []float64
}

// Compute derives all indicator columns from a normalized price series.
// The computation is closed-form over the whole series with no incremental
// state. Fewer than 200 bars is accepted; the long-window columns simply
// stay NaN (insufficient history).
func Compute(series *model.PriceSeries) (*Table, error) {
	if series == nil || len(series.Bars) == 0 {
		return nil, errors.New("empty price series")
	}

	n := len(series.Bars)
	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	for i, b := range series.Bars {
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
	}

	t := &Table{Bars: series.Bars}
	t.SMA50 = CalculateSMA(closes, smaShortWindow)
	t.SMA200 = CalculateSMA(closes, smaLongWindow)
	t.RSI14 = CalculateRSI(closes, rsiWindow)
	t.MACD, t.MACDSignal, t.MACDHist = CalculateMACD(closes)
	t.BBLower, t.BBUpper = CalculateBollinger(closes, bollingerWindow, bollingerWidth)
	t.ATR14 = CalculateATR(highs, lows, closes, atrWindow)
	return t, nil
}

// LatestSignals extracts the most recent row of the table into a flat
// snapshot. NaN values are carried through as NaN rather than dropped;
// the boolean signals are false when their inputs are NaN.
func (t *Table) LatestSignals() model.IndicatorSnapshot {
	i := len(t.Bars) - 1
	close := t.Bars[i].Close

	snap := model.IndicatorSnapshot{
		Price:   close,
		SMA50:   t.SMA50[i],
		SMA200:  t.SMA200[i],
		RSI14:   t.RSI14[i],
		BBLower: t.BBLower[i],
		BBUpper: t.BBUpper[i],
		ATR14:   t.ATR14[i],
	}
	if !math.IsNaN(t.SMA200[i]) {
		snap.AboveSMA200 = close > t.SMA200[i]
	}
	if !math.IsNaN(t.MACD[i]) && !math.IsNaN(t.MACDSignal[i]) {
		snap.MACDBull = t.MACD[i] > t.MACDSignal[i]
	}
	return snap
}
