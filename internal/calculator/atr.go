package calculator

import "math"

// CalculateATR computes the Wilder average true range over High/Low/Close.
// The first ATR value is the simple mean of the first `period` true
// ranges; earlier positions are NaN.
func CalculateATR(high, low, close []float64, period int) []float64 {
	n := len(close)
	out := nanSlice(n)
	if period <= 0 || n < period+1 || len(high) != n || len(low) != n {
		return out
	}

	// True range needs a previous close, so it is defined from index 1.
	tr := make([]float64, n)
	for i := 1; i < n; i++ {
		hl := high[i] - low[i]
		hc := math.Abs(high[i] - close[i-1])
		lc := math.Abs(low[i] - close[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	sum := 0.0
	for i := 1; i <= period; i++ {
		sum += tr[i]
	}
	atr := sum / float64(period)
	out[period] = atr
	for i := period + 1; i < n; i++ {
		atr = (atr*float64(period-1) + tr[i]) / float64(period)
		out[i] = atr
	}
	return out
}
