// Package market fetches stock quotes and the VIX from public market data APIs.
package market

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultRetryAttempts = 3
	retryWaitTime        = 300 * time.Millisecond
	retryMaxWaitTime     = 3 * time.Second
)

// Quote is a successfully fetched current price.
type Quote struct {
	Ticker     string
	Price      float64
	RecordedAt time.Time
}

// FetchError is a failed quote fetch for a single ticker.
type FetchError struct {
	Ticker string
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch quote for %s: %v", e.Ticker, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error { return e.Err }

// QuoteProvider fetches current prices for a set of tickers.
type QuoteProvider interface {
	// Name returns the provider's display name.
	Name() string

	// FetchQuotes returns as many quotes as it can. Tickers that fail are
	// reported individually and never abort the others.
	FetchQuotes(ctx context.Context, tickers []string) ([]Quote, []FetchError)
}

// VixSource fetches the current CBOE volatility index.
type VixSource interface {
	FetchVix(ctx context.Context) (float64, error)
}

// Options tunes a provider's HTTP client.
type Options struct {
	// BaseURL overrides the provider's endpoint. Used by tests.
	BaseURL string
	Timeout time.Duration
	// RetryAttempts is the total number of tries per request.
	RetryAttempts int
}

func newClient(defaultBaseURL string, opts Options) *resty.Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	attempts := opts.RetryAttempts
	if attempts <= 0 {
		attempts = defaultRetryAttempts
	}

	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(attempts - 1).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWaitTime).
		AddRetryCondition(isRetryable)
}

// isRetryable retries transport failures, throttling and server errors.
func isRetryable(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}
