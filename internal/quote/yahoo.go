package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"TickerDesk/internal/model"
)

// DefaultRateLimit is the default number of provider requests per second.
const DefaultRateLimit = 5

// YahooSource implements Source using the Yahoo Finance public API.
type YahooSource struct {
	BaseURL string
	Client  *http.Client
	limiter *rate.Limiter
}

// YahooOption configures a YahooSource.
type YahooOption func(*YahooSource)

// WithBaseURL overrides the provider base URL (used in tests).
func WithBaseURL(baseURL string) YahooOption {
	return func(y *YahooSource) { y.BaseURL = baseURL }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) YahooOption {
	return func(y *YahooSource) { y.Client = client }
}

// WithRateLimit sets the request rate limit in requests per second.
func WithRateLimit(perSecond int) YahooOption {
	return func(y *YahooSource) {
		y.limiter = rate.NewLimiter(rate.Limit(perSecond), perSecond)
	}
}

// NewYahooSource creates a Yahoo Finance source with optional proxy support.
func NewYahooSource(proxyURL string, opts ...YahooOption) *YahooSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	y := &YahooSource{
		BaseURL: "https://query1.finance.yahoo.com",
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

func (y *YahooSource) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
				PreviousClose      *float64 `json:"previousClose"`
				ChartPreviousClose *float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (y *YahooSource) get(ctx context.Context, endpoint string, out interface{}) error {
	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.BaseURL+endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := y.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint, Message: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

func (y *YahooSource) fetchChart(ctx context.Context, symbol, interval, rng string) (*yahooChart, error) {
	endpoint := fmt.Sprintf("/v8/finance/chart/%s?interval=%s&range=%s",
		url.PathEscape(symbol), interval, rng)
	var chart yahooChart
	if err := y.get(ctx, endpoint, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}
	return &chart, nil
}

func chartPoints(chart *yahooChart) []model.PricePoint {
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	closes := result.Indicators.Quote[0].Close
	points := make([]model.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // null bars (holidays etc.)
		}
		points = append(points, model.PricePoint{
			Date:  time.Unix(ts, 0),
			Close: *closes[i],
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// Snapshot fetches the current price and previous close via the cheap
// chart-meta path. Missing fields are returned as nil.
func (y *YahooSource) Snapshot(ctx context.Context, symbol string) (*model.QuoteSnapshot, error) {
	chart, err := y.fetchChart(ctx, symbol, "1d", "1d")
	if err != nil {
		return nil, err
	}
	meta := chart.Chart.Result[0].Meta
	snap := &model.QuoteSnapshot{
		Symbol:       symbol,
		CurrentPrice: meta.RegularMarketPrice,
	}
	if meta.PreviousClose != nil {
		snap.PreviousClose = meta.PreviousClose
	} else {
		snap.PreviousClose = meta.ChartPreviousClose
	}
	return snap, nil
}

// History fetches daily closes for the given period.
func (y *YahooSource) History(ctx context.Context, symbol, period string) ([]model.PricePoint, error) {
	chart, err := y.fetchChart(ctx, symbol, "1d", period)
	if err != nil {
		return nil, err
	}
	points := chartPoints(chart)
	if len(points) == 0 {
		return nil, fmt.Errorf("yahoo: no price data for %s", symbol)
	}
	return points, nil
}

// yahooValue is Yahoo's {raw, fmt} wrapper around a numeric field.
type yahooValue struct {
	Raw *float64 `json:"raw"`
}

type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				TrailingPE yahooValue `json:"trailingPE"`
				MarketCap  yahooValue `json:"marketCap"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				PriceToBook yahooValue `json:"priceToBook"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				ReturnOnEquity yahooValue `json:"returnOnEquity"`
				ReturnOnAssets yahooValue `json:"returnOnAssets"`
				DebtToEquity   yahooValue `json:"debtToEquity"`
				RevenueGrowth  yahooValue `json:"revenueGrowth"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// Fundamentals fetches valuation metrics via the quoteSummary API.
func (y *YahooSource) Fundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error) {
	endpoint := fmt.Sprintf("/v10/finance/quoteSummary/%s?modules=summaryDetail,defaultKeyStatistics,financialData",
		url.PathEscape(symbol))
	var summary yahooSummary
	if err := y.get(ctx, endpoint, &summary); err != nil {
		return nil, err
	}
	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no fundamentals for %s", symbol)
	}
	r := summary.QuoteSummary.Result[0]
	return &model.Fundamentals{
		Symbol:        symbol,
		MarketCap:     r.SummaryDetail.MarketCap.Raw,
		PERatio:       r.SummaryDetail.TrailingPE.Raw,
		PBRatio:       r.DefaultKeyStatistics.PriceToBook.Raw,
		DebtToEquity:  r.FinancialData.DebtToEquity.Raw,
		ROE:           r.FinancialData.ReturnOnEquity.Raw,
		ROA:           r.FinancialData.ReturnOnAssets.Raw,
		RevenueGrowth: r.FinancialData.RevenueGrowth.Raw,
	}, nil
}

type yahooSearch struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		ExchDisp  string `json:"exchDisp"`
	} `json:"quotes"`
}

// Search queries the autocomplete endpoint. Only entries carrying both a
// symbol and a display name are returned; zero matches is not an error.
func (y *YahooSource) Search(ctx context.Context, query string) ([]model.SymbolMatch, error) {
	endpoint := fmt.Sprintf("/v1/finance/search?q=%s", url.QueryEscape(query))
	var result yahooSearch
	if err := y.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	var matches []model.SymbolMatch
	for _, q := range result.Quotes {
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		if q.Symbol == "" || name == "" {
			continue
		}
		exch := q.Exchange
		if q.ExchDisp != "" {
			exch = q.ExchDisp
		}
		matches = append(matches, model.SymbolMatch{
			Symbol:   q.Symbol,
			Name:     name,
			Exchange: exch,
		})
	}
	return matches, nil
}
