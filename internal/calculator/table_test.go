package calculator

import (
	"math"
	"testing"
	"time"

	"TradeScope/internal/model"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func makeSeries(closes []float64) *model.PriceSeries {
	bars := make([]model.OHLCV, len(closes))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   base.AddDate(0, 0, i),
			Open:   c * 0.999,
			High:   c * 1.005,
			Low:    c * 0.995,
			Close:  c,
			Volume: 1000000,
		}
	}
	return &model.PriceSeries{Symbol: "TEST", Bars: bars}
}

func TestCalculateSMA_WarmupAndValues(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	sma := CalculateSMA(values, 3)
	for i := 0; i < 2; i++ {
		if !math.IsNaN(sma[i]) {
			t.Errorf("sma[%d] = %v, want NaN during warm-up", i, sma[i])
		}
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if !almostEqual(sma[i+2], w, 1e-9) {
			t.Errorf("sma[%d] = %v, want %v", i+2, sma[i+2], w)
		}
	}
}

func TestCalculateEMA_SeededWithFirstValue(t *testing.T) {
	values := []float64{10, 10, 10, 10}
	ema := CalculateEMA(values, 3)
	for i, v := range ema {
		if !almostEqual(v, 10, 1e-9) {
			t.Errorf("ema[%d] = %v, want 10 for constant input", i, v)
		}
	}
}

func TestCalculateRSI_AllGainsIsHundred(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi := CalculateRSI(closes, 14)
	for i := 0; i < 14; i++ {
		if !math.IsNaN(rsi[i]) {
			t.Errorf("rsi[%d] = %v, want NaN during warm-up", i, rsi[i])
		}
	}
	if last := rsi[len(rsi)-1]; !almostEqual(last, 100, 1e-9) {
		t.Errorf("rsi for monotone gains = %v, want 100", last)
	}
}

func TestCalculateRSI_MidrangeForAlternating(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100
		if i%2 == 1 {
			closes[i] = 101
		}
	}
	rsi := CalculateRSI(closes, 14)
	last := rsi[len(rsi)-1]
	if last < 30 || last > 70 {
		t.Errorf("rsi for alternating series = %v, want mid-range", last)
	}
}

func TestCalculateBollinger_ConstantSeriesCollapses(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 50
	}
	lower, upper := CalculateBollinger(closes, 20, 2)
	if !math.IsNaN(lower[18]) || !math.IsNaN(upper[18]) {
		t.Error("expected NaN bands before window fills")
	}
	if !almostEqual(lower[24], 50, 1e-9) || !almostEqual(upper[24], 50, 1e-9) {
		t.Errorf("bands for constant series = [%v, %v], want [50, 50]", lower[24], upper[24])
	}
}

func TestCalculateATR_ConstantRange(t *testing.T) {
	n := 30
	high := make([]float64, n)
	low := make([]float64, n)
	close := make([]float64, n)
	for i := 0; i < n; i++ {
		high[i] = 102
		low[i] = 98
		close[i] = 100
	}
	atr := CalculateATR(high, low, close, 14)
	if !math.IsNaN(atr[13]) {
		t.Error("expected NaN ATR before window fills")
	}
	if !almostEqual(atr[n-1], 4, 1e-9) {
		t.Errorf("atr = %v, want 4 for constant 4-point range", atr[n-1])
	}
}

func TestCompute_ShortSeriesKeepsLongWindowsNaN(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.1
	}
	table, err := Compute(makeSeries(closes))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	snap := table.LatestSignals()
	if math.IsNaN(snap.SMA50) {
		t.Error("SMA50 should be defined with 60 bars")
	}
	if !math.IsNaN(snap.SMA200) {
		t.Error("SMA200 should be NaN with 60 bars (insufficient history)")
	}
	if snap.AboveSMA200 {
		t.Error("above_sma200 must be false when SMA200 is NaN")
	}
}

func TestCompute_UptrendSignals(t *testing.T) {
	closes := make([]float64, 300)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
	}
	table, err := Compute(makeSeries(closes))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	snap := table.LatestSignals()
	if !snap.AboveSMA200 {
		t.Error("expected above_sma200 in a steady uptrend")
	}
	if !snap.MACDBull {
		t.Error("expected macd_bull in a steady uptrend")
	}
	if snap.RSI14 < 70 {
		t.Errorf("rsi14 = %v, expected overbought in a relentless uptrend", snap.RSI14)
	}
	if snap.Price <= snap.SMA50 || snap.SMA50 <= snap.SMA200 {
		t.Errorf("expected price > sma50 > sma200, got %v / %v / %v",
			snap.Price, snap.SMA50, snap.SMA200)
	}
}

func TestCompute_EmptySeries(t *testing.T) {
	if _, err := Compute(&model.PriceSeries{Symbol: "X"}); err == nil {
		t.Fatal("expected error for empty series")
	}
}
