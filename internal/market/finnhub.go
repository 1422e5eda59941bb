package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	finnhubBaseURL = "https://finnhub.io/api/v1"
	// finnhubConcurrency keeps a refresh inside the free tier's burst limit.
	finnhubConcurrency = 4
)

// ErrMissingAPIKey is returned when Finnhub is queried without a key.
var ErrMissingAPIKey = errors.New("finnhub api key is not configured")

// finnhubQuote is the subset of Finnhub's /quote response the journal reads.
// c is the current price.
type finnhubQuote struct {
	Current float64 `json:"c"`
}

// FinnhubProvider fetches stock quotes from Finnhub.
type FinnhubProvider struct {
	apiKey string
	opts   Options
}

// NewFinnhubProvider creates a Finnhub quote provider for apiKey.
func NewFinnhubProvider(apiKey string, opts Options) *FinnhubProvider {
	return &FinnhubProvider{apiKey: strings.TrimSpace(apiKey), opts: opts}
}

// Name returns the provider's display name.
func (p *FinnhubProvider) Name() string { return "Finnhub" }

// FetchQuotes fetches the current price of every distinct ticker concurrently.
// Zero or missing prices are reported as failures.
func (p *FinnhubProvider) FetchQuotes(ctx context.Context, tickers []string) ([]Quote, []FetchError) {
	unique := distinct(tickers)
	if len(unique) == 0 {
		return nil, nil
	}
	if p.apiKey == "" {
		return nil, failAll(unique, ErrMissingAPIKey)
	}

	client := newClient(finnhubBaseURL, p.opts)
	now := time.Now().UTC()

	var (
		mu      sync.Mutex
		quotes  []Quote
		failed  []FetchError
		wg      sync.WaitGroup
		tickets = make(chan struct{}, finnhubConcurrency)
	)
	for _, ticker := range unique {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			tickets <- struct{}{}
			defer func() { <-tickets }()

			price, err := p.fetchOne(ctx, client, ticker)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, FetchError{Ticker: ticker, Err: err})
				return
			}
			quotes = append(quotes, Quote{Ticker: ticker, Price: price, RecordedAt: now})
		}(ticker)
	}
	wg.Wait()

	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Ticker < quotes[j].Ticker })
	sort.Slice(failed, func(i, j int) bool { return failed[i].Ticker < failed[j].Ticker })
	return quotes, failed
}

func (p *FinnhubProvider) fetchOne(ctx context.Context, client *resty.Client, ticker string) (float64, error) {
	var quote finnhubQuote
	resp, err := client.R().
		SetContext(ctx).
		SetQueryParam("symbol", ticker).
		SetQueryParam("token", p.apiKey).
		SetResult(&quote).
		Get("/quote")
	if err != nil {
		return 0, fmt.Errorf("http request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
	if quote.Current <= 0 {
		return 0, fmt.Errorf("no price for %s", ticker)
	}
	return quote.Current, nil
}

// distinct upper-cases tickers and drops blanks and repeats, keeping order.
func distinct(tickers []string) []string {
	seen := make(map[string]struct{}, len(tickers))
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func failAll(tickers []string, err error) []FetchError {
	failed := make([]FetchError, len(tickers))
	for i, t := range tickers {
		failed[i] = FetchError{Ticker: t, Err: err}
	}
	return failed
}
