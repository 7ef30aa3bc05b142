package calculator

import "math"

// CalculateBollinger computes Bollinger Bands: the rolling mean of closes
// over the window, plus/minus k population standard deviations. Positions
// before the window fills are NaN.
func CalculateBollinger(closes []float64, period int, k float64) (lower, upper []float64) {
	lower = nanSlice(len(closes))
	upper = nanSlice(len(closes))
	if period <= 0 || len(closes) < period {
		return lower, upper
	}
	mid := CalculateSMA(closes, period)
	for i := period - 1; i < len(closes); i++ {
		var sq float64
		for j := i - period + 1; j <= i; j++ {
			d := closes[j] - mid[i]
			sq += d * d
		}
		sd := math.Sqrt(sq / float64(period))
		lower[i] = mid[i] - k*sd
		upper[i] = mid[i] + k*sd
	}
	return lower, upper
}
