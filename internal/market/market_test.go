package market

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newFinnhubServer(t *testing.T, prices map[string]float64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quote" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("token") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		price := prices[r.URL.Query().Get("symbol")]
		_ = json.NewEncoder(w).Encode(map[string]float64{"c": price, "pc": price})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFinnhubProvider_FetchQuotes(t *testing.T) {
	t.Run("collects_prices_and_skips_zero_quotes", func(t *testing.T) {
		server := newFinnhubServer(t, map[string]float64{"AMD": 160.5, "PLTR": 24.1})
		p := NewFinnhubProvider("test-key", Options{BaseURL: server.URL, RetryAttempts: 1})

		quotes, failed := p.FetchQuotes(context.Background(), []string{"amd", "PLTR", "AMD", "", "ZZZ"})

		if len(quotes) != 2 {
			t.Fatalf("expected 2 quotes, got %d: %+v", len(quotes), quotes)
		}
		if quotes[0].Ticker != "AMD" || quotes[0].Price != 160.5 {
			t.Errorf("unexpected AMD quote %+v", quotes[0])
		}
		if quotes[1].Ticker != "PLTR" || quotes[1].Price != 24.1 {
			t.Errorf("unexpected PLTR quote %+v", quotes[1])
		}
		if len(failed) != 1 || failed[0].Ticker != "ZZZ" {
			t.Errorf("expected ZZZ to fail, got %+v", failed)
		}
	})

	t.Run("bad_key_fails_every_ticker", func(t *testing.T) {
		server := newFinnhubServer(t, map[string]float64{"AMD": 160.5})
		p := NewFinnhubProvider("wrong", Options{BaseURL: server.URL, RetryAttempts: 1})

		quotes, failed := p.FetchQuotes(context.Background(), []string{"AMD", "NVDA"})
		if len(quotes) != 0 {
			t.Errorf("expected no quotes, got %+v", quotes)
		}
		if len(failed) != 2 {
			t.Errorf("expected 2 failures, got %d", len(failed))
		}
	})

	t.Run("missing_key", func(t *testing.T) {
		p := NewFinnhubProvider("  ", Options{})
		_, failed := p.FetchQuotes(context.Background(), []string{"AMD"})
		if len(failed) != 1 || !errors.Is(&failed[0], ErrMissingAPIKey) {
			t.Errorf("expected missing key failure, got %+v", failed)
		}
	})

	t.Run("no_tickers", func(t *testing.T) {
		p := NewFinnhubProvider("test-key", Options{})
		quotes, failed := p.FetchQuotes(context.Background(), nil)
		if quotes != nil || failed != nil {
			t.Errorf("expected nothing, got %v %v", quotes, failed)
		}
	})

	t.Run("retries_server_errors", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"c": 42}`))
		}))
		defer server.Close()

		p := NewFinnhubProvider("test-key", Options{BaseURL: server.URL, RetryAttempts: 2})
		quotes, failed := p.FetchQuotes(context.Background(), []string{"AMD"})
		if len(failed) != 0 || len(quotes) != 1 || quotes[0].Price != 42 {
			t.Errorf("expected retried quote, got %+v %+v", quotes, failed)
		}
		if calls.Load() != 2 {
			t.Errorf("expected 2 calls, got %d", calls.Load())
		}
	})
}

func TestYahooVix_FetchVix(t *testing.T) {
	chart := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}

	t.Run("reads_regular_market_price", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v8/finance/chart/^VIX" {
				http.NotFound(w, r)
				return
			}
			if r.URL.Query().Get("range") != "1d" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			chart(w, `{"chart":{"result":[{"meta":{"symbol":"^VIX","regularMarketPrice":18.42}}],"error":null}}`)
		}))
		defer server.Close()

		vix, err := NewYahooVix(Options{BaseURL: server.URL, RetryAttempts: 1}).FetchVix(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if vix != 18.42 {
			t.Errorf("expected 18.42, got %v", vix)
		}
	})

	t.Run("chart_error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			chart(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
		}))
		defer server.Close()

		if _, err := NewYahooVix(Options{BaseURL: server.URL, RetryAttempts: 1}).FetchVix(context.Background()); err == nil {
			t.Error("expected error for chart error response")
		}
	})

	t.Run("empty_result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			chart(w, `{"chart":{"result":[],"error":null}}`)
		}))
		defer server.Close()

		if _, err := NewYahooVix(Options{BaseURL: server.URL, RetryAttempts: 1}).FetchVix(context.Background()); err == nil {
			t.Error("expected error for empty result")
		}
	})

	t.Run("http_error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		if _, err := NewYahooVix(Options{BaseURL: server.URL, RetryAttempts: 1}).FetchVix(context.Background()); err == nil {
			t.Error("expected error for 403")
		}
	})
}
