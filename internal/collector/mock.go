package collector

import (
	"context"
	"time"

	"TradeScope/internal/model"
)

// MockProvider returns controllable fixed data for development and
// testing. Per-symbol errors can be injected through the fail maps.
type MockProvider struct {
	BasePrice float64
	Trend     float64 // per-bar drift applied to BasePrice
	Bars      int

	Tables       map[string]*model.PriceTable
	RawFund      map[string]map[string]any
	Profiles     map[string]model.CompanyProfile
	News         map[string][]model.NewsItem
	FailPrice    map[string]error
	FailFund     map[string]error
	FailNews     map[string]error
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) PriceHistory(_ context.Context, symbol string, periodDays int) (*model.PriceTable, error) {
	if err := m.FailPrice[symbol]; err != nil {
		return nil, err
	}
	if t, ok := m.Tables[symbol]; ok {
		return t, nil
	}
	count := m.Bars
	if count == 0 {
		count = periodDays
	}
	return GenerateMockTable(m.BasePrice, m.Trend, count), nil
}

func (m *MockProvider) Fundamentals(_ context.Context, symbol string, _ model.SecurityType) (map[string]any, error) {
	if err := m.FailFund[symbol]; err != nil {
		return nil, err
	}
	if raw, ok := m.RawFund[symbol]; ok {
		return raw, nil
	}
	return map[string]any{}, nil
}

func (m *MockProvider) CompanyProfile(_ context.Context, symbol string) (model.CompanyProfile, error) {
	if p, ok := m.Profiles[symbol]; ok {
		return p, nil
	}
	return model.CompanyProfile{Name: symbol}, nil
}

func (m *MockProvider) FetchNews(_ context.Context, symbol string, limit int) ([]model.NewsItem, error) {
	if err := m.FailNews[symbol]; err != nil {
		return nil, err
	}
	items := m.News[symbol]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// GenerateMockTable builds a lower-case-column price table with a linear
// drift, suitable for exercising the full pipeline.
func GenerateMockTable(basePrice, trend float64, count int) *model.PriceTable {
	table := &model.PriceTable{
		Times: make([]time.Time, count),
		Columns: map[string][]float64{
			"open": make([]float64, count), "high": make([]float64, count),
			"low": make([]float64, count), "close": make([]float64, count),
			"volume": make([]float64, count),
		},
	}
	start := time.Now().AddDate(0, 0, -count)
	for i := 0; i < count; i++ {
		p := basePrice + trend*float64(i)
		table.Times[i] = start.AddDate(0, 0, i)
		table.Columns["open"][i] = p * 0.999
		table.Columns["high"][i] = p * 1.005
		table.Columns["low"][i] = p * 0.995
		table.Columns["close"][i] = p
		table.Columns["volume"][i] = 1000000
	}
	return table
}
