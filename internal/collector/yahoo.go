package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"TradeScope/internal/model"
)

// YahooProvider implements MarketDataProvider and NewsProvider using the
// Yahoo Finance public endpoints.
type YahooProvider struct {
	Client *http.Client
}

// NewYahooProvider creates a Yahoo Finance provider with optional proxy
// support.
func NewYahooProvider(proxyURL string) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooProvider{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// toFloat coerces a nullable JSON number; null bars (holidays etc.) become
// NaN so the normalizer can drop them.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return math.NaN()
	}
}

func (p *YahooProvider) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

// PriceHistory fetches daily bars covering periodDays and returns them as
// a raw lower-case-column table.
func (p *YahooProvider) PriceHistory(ctx context.Context, symbol string, periodDays int) (*model.PriceTable, error) {
	rng := "2y"
	switch {
	case periodDays <= 30:
		rng = "1mo"
	case periodDays <= 90:
		rng = "3mo"
	case periodDays <= 180:
		rng = "6mo"
	case periodDays <= 365:
		rng = "1y"
	}
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%s",
		url.PathEscape(symbol), rng)

	var chart yahooChart
	if err := p.get(ctx, u, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, &model.NoDataError{Symbol: symbol}
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, &model.NoDataError{Symbol: symbol}
	}
	quote := result.Indicators.Quote[0]

	n := len(result.Timestamp)
	start := 0
	if n > periodDays {
		start = n - periodDays
	}
	table := &model.PriceTable{
		Times: make([]time.Time, 0, n-start),
		Columns: map[string][]float64{
			"open": {}, "high": {}, "low": {}, "close": {}, "volume": {},
		},
	}
	for i := start; i < n; i++ {
		table.Times = append(table.Times, time.Unix(result.Timestamp[i], 0))
		table.Columns["open"] = append(table.Columns["open"], toFloat(quote.Open[i]))
		table.Columns["high"] = append(table.Columns["high"], toFloat(quote.High[i]))
		table.Columns["low"] = append(table.Columns["low"], toFloat(quote.Low[i]))
		table.Columns["close"] = append(table.Columns["close"], toFloat(quote.Close[i]))
		table.Columns["volume"] = append(table.Columns["volume"], toFloat(quote.Volume[i]))
	}
	return table, nil
}

// yahooSummary is the (partial) quoteSummary response.
type yahooSummary struct {
	QuoteSummary struct {
		Result []map[string]map[string]any `json:"result"`
		Error  *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (p *YahooProvider) quoteSummary(ctx context.Context, symbol string, modules string) (map[string]map[string]any, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=%s",
		url.PathEscape(symbol), modules)
	var sum yahooSummary
	if err := p.get(ctx, u, &sum); err != nil {
		return nil, err
	}
	if sum.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", sum.QuoteSummary.Error.Description)
	}
	if len(sum.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: empty quoteSummary for %s", symbol)
	}
	return sum.QuoteSummary.Result[0], nil
}

// Fundamentals flattens the relevant quoteSummary modules into one raw
// dict keyed by the provider's field names (trailingPE, grossMargins, ...).
// Nested {raw, fmt} values are unwrapped to their raw number.
func (p *YahooProvider) Fundamentals(ctx context.Context, symbol string, secType model.SecurityType) (map[string]any, error) {
	modules := "summaryDetail,financialData,defaultKeyStatistics"
	if secType != model.SecurityEquity {
		modules = "summaryDetail,fundProfile,defaultKeyStatistics"
	}
	result, err := p.quoteSummary(ctx, symbol, modules)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]any)
	for _, module := range result {
		for key, value := range module {
			switch v := value.(type) {
			case map[string]any:
				if r, ok := v["raw"]; ok {
					raw[key] = r
				}
			case float64, string, bool:
				raw[key] = v
			}
		}
	}
	return raw, nil
}

// CompanyProfile returns the assetProfile module trimmed to the fixed
// profile key set.
func (p *YahooProvider) CompanyProfile(ctx context.Context, symbol string) (model.CompanyProfile, error) {
	result, err := p.quoteSummary(ctx, symbol, "assetProfile")
	if err != nil {
		return model.CompanyProfile{}, err
	}
	asset := result["assetProfile"]
	str := func(key string) string {
		if s, ok := asset[key].(string); ok {
			return s
		}
		return ""
	}
	return model.CompanyProfile{
		Name:     symbol,
		Sector:   str("sector"),
		Industry: str("industry"),
		Country:  str("country"),
		Website:  str("website"),
		Summary:  str("longBusinessSummary"),
	}, nil
}

// yahooSearch is the (partial) search response carrying news items.
type yahooSearch struct {
	News []struct {
		Title               string `json:"title"`
		Summary             string `json:"summary"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

// FetchNews returns up to limit recent headlines for the symbol.
func (p *YahooProvider) FetchNews(ctx context.Context, symbol string, limit int) ([]model.NewsItem, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v1/finance/search?q=%s&newsCount=%d&quotesCount=0",
		url.QueryEscape(symbol), limit)
	var search yahooSearch
	if err := p.get(ctx, u, &search); err != nil {
		return nil, err
	}

	items := make([]model.NewsItem, 0, limit)
	for _, n := range search.News {
		if len(items) >= limit {
			break
		}
		title := strings.TrimSpace(n.Title)
		if title == "" {
			continue
		}
		items = append(items, model.NewsItem{
			Title:   title,
			Summary: strings.TrimSpace(n.Summary),
			Time:    time.Unix(n.ProviderPublishTime, 0),
			URL:     n.Link,
		})
	}
	return items, nil
}
