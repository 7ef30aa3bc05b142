package model

import "time"

// SecurityType classifies the instrument being analyzed.
type SecurityType string

const (
	SecurityEquity SecurityType = "equity"
	SecurityETF    SecurityType = "etf"
	SecurityFund   SecurityType = "fund"
)

// Valid reports whether the security type is one of the known kinds.
func (s SecurityType) Valid() bool {
	switch s {
	case SecurityEquity, SecurityETF, SecurityFund:
		return true
	}
	return false
}

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds normalized price data for analysis, ordered by time.
type PriceSeries struct {
	Symbol    string
	Bars      []OHLCV
	FetchedAt time.Time
}

// PriceTable is the raw column-oriented shape returned by data providers
// before normalization. Column names may be lower-case or title-case.
type PriceTable struct {
	Times   []time.Time
	Columns map[string][]float64
}

// NewsItem is one headline returned by a news provider.
type NewsItem struct {
	Title   string    `json:"title"`
	Summary string    `json:"summary,omitempty"`
	Time    time.Time `json:"time"`
	URL     string    `json:"url,omitempty"`
}

// CompanyProfile holds basic descriptive data for a symbol.
type CompanyProfile struct {
	Name     string `json:"name,omitempty"`
	Sector   string `json:"sector,omitempty"`
	Industry string `json:"industry,omitempty"`
	Country  string `json:"country,omitempty"`
	Website  string `json:"website,omitempty"`
	Summary  string `json:"summary,omitempty"`
}
