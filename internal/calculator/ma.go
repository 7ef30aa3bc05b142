package calculator

import "math"

// CalculateSMA computes the right-aligned simple moving average over the
// given window. Positions before the window fills are NaN.
func CalculateSMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// CalculateEMA computes the exponential moving average with standard
// smoothing alpha = 2/(period+1), seeded with the first value. Every
// position is defined; early values are warm-up, not NaN.
func CalculateEMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(period) + 1.0)
	ema := values[0]
	out[0] = ema
	for i := 1; i < len(values); i++ {
		ema = alpha*values[i] + (1-alpha)*ema
		out[i] = ema
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
