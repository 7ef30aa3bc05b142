package calculator

// Standard MACD windows.
const (
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
)

// CalculateMACD computes the MACD line (EMA12 - EMA26), its EMA9 signal
// line, and the histogram (line - signal) for every position.
func CalculateMACD(closes []float64) (line, signal, hist []float64) {
	fast := CalculateEMA(closes, macdFastPeriod)
	slow := CalculateEMA(closes, macdSlowPeriod)

	line = make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}
	signal = CalculateEMA(line, macdSignalPeriod)

	hist = make([]float64, len(closes))
	for i := range closes {
		hist[i] = line[i] - signal[i]
	}
	return line, signal, hist
}
