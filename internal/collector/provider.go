package collector

import (
	"context"

	"TradeScope/internal/model"
)

// MarketDataProvider fetches raw market data for a symbol.
type MarketDataProvider interface {
	// PriceHistory returns the raw OHLCV table covering the most recent
	// periodDays. Returns *model.NoDataError when the upstream has no bars.
	PriceHistory(ctx context.Context, symbol string, periodDays int) (*model.PriceTable, error)
	// Fundamentals returns the provider-specific raw fundamentals dict.
	Fundamentals(ctx context.Context, symbol string, secType model.SecurityType) (map[string]any, error)
	// CompanyProfile returns basic descriptive data for the symbol.
	CompanyProfile(ctx context.Context, symbol string) (model.CompanyProfile, error)
	Name() string
}

// NewsProvider fetches recent headlines for a symbol, most recent first,
// bounded by limit.
type NewsProvider interface {
	FetchNews(ctx context.Context, symbol string, limit int) ([]model.NewsItem, error)
}
