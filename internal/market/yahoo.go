package market

import (
	"context"
	"fmt"
	"net/http"
)

const (
	yahooBaseURL = "https://query1.finance.yahoo.com"
	yahooVixPath = "/v8/finance/chart/%5EVIX"
	yahooUA      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// yahooChartResponse is the subset of the Yahoo Finance v8 chart response the
// VIX lookup reads.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// YahooVix fetches the VIX from the Yahoo Finance chart API.
type YahooVix struct {
	opts Options
}

// NewYahooVix creates a Yahoo Finance VIX source.
func NewYahooVix(opts Options) *YahooVix {
	return &YahooVix{opts: opts}
}

// FetchVix returns the latest regular market price of ^VIX.
func (y *YahooVix) FetchVix(ctx context.Context) (float64, error) {
	var chart yahooChartResponse
	resp, err := newClient(yahooBaseURL, y.opts).R().
		SetContext(ctx).
		SetHeader("User-Agent", yahooUA).
		SetQueryParam("interval", "1d").
		SetQueryParam("range", "1d").
		SetResult(&chart).
		Get(yahooVixPath)
	if err != nil {
		return 0, fmt.Errorf("http request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
	if chart.Chart.Error != nil {
		return 0, fmt.Errorf("chart error %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return 0, fmt.Errorf("chart response has no result")
	}
	price := chart.Chart.Result[0].Meta.RegularMarketPrice
	if price <= 0 {
		return 0, fmt.Errorf("chart response has no price")
	}
	return price, nil
}
