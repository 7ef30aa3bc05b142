package collector

import (
	"math"
	"strings"
	"time"

	"TradeScope/internal/model"
)

var requiredColumns = []string{"Open", "High", "Low", "Close", "Volume"}

// NormalizePriceTable canonicalizes a raw OHLCV table into a PriceSeries.
// Column names are matched case-insensitively, so both "close" and "Close"
// resolve. Bars with a missing or non-positive OHLC value are dropped.
// Returns *model.SchemaError when a required column is absent, column
// lengths disagree with the timestamp index, or timestamps are not
// strictly increasing.
func NormalizePriceTable(symbol string, table *model.PriceTable) (*model.PriceSeries, error) {
	if table == nil || len(table.Times) == 0 {
		return nil, model.Schemaf("price table for %s is empty", symbol)
	}

	cols := make(map[string][]float64, len(requiredColumns))
	for _, want := range requiredColumns {
		found := false
		for name, values := range table.Columns {
			if strings.EqualFold(name, want) {
				if len(values) != len(table.Times) {
					return nil, model.Schemaf("column %s has %d values, index has %d",
						name, len(values), len(table.Times))
				}
				cols[want] = values
				found = true
				break
			}
		}
		if !found {
			return nil, model.Schemaf("price table for %s is missing column %s", symbol, want)
		}
	}

	var prev time.Time
	bars := make([]model.OHLCV, 0, len(table.Times))
	for i, ts := range table.Times {
		if i > 0 && !ts.After(prev) {
			return nil, model.Schemaf("timestamps for %s not strictly increasing at index %d", symbol, i)
		}
		prev = ts

		bar := model.OHLCV{
			Time:   ts,
			Open:   cols["Open"][i],
			High:   cols["High"][i],
			Low:    cols["Low"][i],
			Close:  cols["Close"][i],
			Volume: cols["Volume"][i],
		}
		if !validBar(bar) {
			continue
		}
		bars = append(bars, bar)
	}

	return &model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}, nil
}

func validBar(b model.OHLCV) bool {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return false
		}
	}
	return !math.IsNaN(b.Volume) && b.Volume >= 0
}
