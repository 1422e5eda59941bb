package services

import (
	"fmt"
	"sync"
	"time"

	"wheeltradr/internal/cycles"
	apperrors "wheeltradr/internal/errors"
	"wheeltradr/internal/metrics"
	"wheeltradr/internal/models"
)

// memoKey identifies the inputs a cached projection was computed from.
type memoKey struct {
	trades   uint64
	settings uint64
	day      models.Date
}

// analyticsService computes the read-side projections over the whole journal.
// The dashboard and the cycle list are cached until a write or a new day.
type analyticsService struct {
	trades   TradeServicer
	settings SettingsServicer

	mu        sync.Mutex
	dashKey   memoKey
	dashboard *metrics.Snapshot
	cycleKey  memoKey
	cycleList []cycles.Cycle
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(trades TradeServicer, settings SettingsServicer) AnalyticsServicer {
	return &analyticsService{trades: trades, settings: settings}
}

func (s *analyticsService) key(t time.Time) memoKey {
	return memoKey{
		trades:   s.trades.Version(),
		settings: s.settings.Version(),
		day:      models.DateOf(t),
	}
}

// Dashboard returns the portfolio snapshot.
func (s *analyticsService) Dashboard() (*metrics.Snapshot, error) {
	current := now()
	key := s.key(current)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dashboard != nil && s.dashKey == key {
		return s.dashboard, nil
	}

	trades, err := s.trades.AllTrades()
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}

	snapshot := metrics.Compute(metrics.Input{
		Trades:       trades,
		Prices:       settings.Prices(),
		Vix:          settings.EffectiveVix(),
		AccountValue: settings.TotalAccountValue,
		MonthlyGoal:  settings.MonthlyGoal,
		Now:          current,
	})
	s.dashboard, s.dashKey = &snapshot, key
	return s.dashboard, nil
}

// Cycles returns every wheel cycle, most recently active first.
func (s *analyticsService) Cycles() ([]cycles.Cycle, error) {
	key := s.key(now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cycleList != nil && s.cycleKey == key {
		return s.cycleList, nil
	}

	trades, err := s.trades.AllTrades()
	if err != nil {
		return nil, err
	}
	s.cycleList, s.cycleKey = cycles.Group(trades), key
	return s.cycleList, nil
}

// Cycle returns one cycle by id.
func (s *analyticsService) Cycle(id string) (*cycles.Cycle, error) {
	trades, err := s.trades.AllTrades()
	if err != nil {
		return nil, err
	}
	c, ok := cycles.Find(trades, id)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, fmt.Sprintf("Cycle %q not found", id))
	}
	return &c, nil
}

// CycleOptions lists the cycles a new trade can be linked to.
func (s *analyticsService) CycleOptions(ticker string) ([]cycles.Option, error) {
	trades, err := s.trades.AllTrades()
	if err != nil {
		return nil, err
	}
	return cycles.Options(trades, ticker), nil
}

// Summary returns the gain/loss summary for a date range.
func (s *analyticsService) Summary(req SummaryRequest) (*metrics.Summary, error) {
	window, err := metrics.ResolveRange(req.Range, now(), req.Params)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	trades, err := s.trades.AllTrades()
	if err != nil {
		return nil, err
	}
	summary := metrics.Summarize(trades, window, req.Ticker)
	return &summary, nil
}

// Calendar returns per-day realized P&L for a month.
func (s *analyticsService) Calendar(year, month int) (*metrics.Calendar, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Month must be between 1 and 12")
	}
	if year < 1900 || year > 9999 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Year is out of range")
	}
	trades, err := s.trades.AllTrades()
	if err != nil {
		return nil, err
	}
	cal := metrics.BuildCalendar(trades, year, time.Month(month))
	return &cal, nil
}
