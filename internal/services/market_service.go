package services

import (
	"context"

	apperrors "wheeltradr/internal/errors"
	"wheeltradr/internal/logger"
	"wheeltradr/internal/market"
	"wheeltradr/internal/models"
)

// QuoteProviderFactory builds a quote provider for an API key. The key lives in
// the settings, so the provider is built per refresh.
type QuoteProviderFactory func(apiKey string) market.QuoteProvider

// marketService refreshes ticker prices and the VIX into the settings.
type marketService struct {
	trades      TradeServicer
	settings    SettingsServicer
	activity    ActivityServicer
	quotes      QuoteProviderFactory
	vix         market.VixSource
	fallbackKey string
}

// NewMarketService creates a new MarketServicer. fallbackKey is used when the
// settings carry no Finnhub key.
func NewMarketService(trades TradeServicer, settings SettingsServicer, activity ActivityServicer, quotes QuoteProviderFactory, vix market.VixSource, fallbackKey string) MarketServicer {
	if activity == nil {
		activity = noopActivity{}
	}
	return &marketService{
		trades:      trades,
		settings:    settings,
		activity:    activity,
		quotes:      quotes,
		vix:         vix,
		fallbackKey: fallbackKey,
	}
}

// Refresh fetches quotes for the tickers of open trades and the VIX, and
// merges whatever succeeded into the settings. It fails only when there was
// something to fetch and nothing came back.
func (s *marketService) Refresh(ctx context.Context) (*RefreshResult, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	tickers, err := s.openTickers()
	if err != nil {
		return nil, err
	}

	result := &RefreshResult{Prices: map[string]float64{}, Failed: []string{}}

	apiKey := settings.FinnhubAPIKey
	if apiKey == "" {
		apiKey = s.fallbackKey
	}
	if len(tickers) > 0 && s.quotes != nil {
		quotes, failed := s.quotes(apiKey).FetchQuotes(ctx, tickers)
		for _, q := range quotes {
			result.Prices[q.Ticker] = q.Price
		}
		for _, f := range failed {
			logger.Get().Warnw("quote fetch failed", "ticker", f.Ticker, "error", f.Err)
			result.Failed = append(result.Failed, f.Ticker)
		}
	}

	if s.vix != nil {
		vix, err := s.vix.FetchVix(ctx)
		if err != nil {
			logger.Get().Warnw("vix fetch failed", "error", err)
		} else {
			result.Vix = &vix
		}
	}

	if len(result.Prices) == 0 && result.Vix == nil {
		if len(tickers) == 0 && s.vix == nil {
			return result, nil
		}
		return nil, apperrors.ErrMarketDataUnavailable
	}

	if _, err := s.settings.RecordMarketData(result.Prices, result.Vix); err != nil {
		return nil, err
	}
	s.activity.Log(models.ActionMarket, "", map[string]interface{}{
		"quotes": len(result.Prices),
		"failed": result.Failed,
		"vix":    result.Vix,
	})
	return result, nil
}

// openTickers returns the distinct tickers of open trades.
func (s *marketService) openTickers() ([]string, error) {
	trades, err := s.trades.AllTrades()
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var tickers []string
	for i := range trades {
		if !trades[i].Status.IsOpen() {
			continue
		}
		if _, ok := seen[trades[i].Ticker]; ok {
			continue
		}
		seen[trades[i].Ticker] = struct{}{}
		tickers = append(tickers, trades[i].Ticker)
	}
	return tickers, nil
}
