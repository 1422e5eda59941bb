package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"wheeltradr/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TradeOption customises a fixture trade before it is stored.
type TradeOption func(*models.Trade)

// WithTicker sets the ticker.
func WithTicker(ticker string) TradeOption {
	return func(t *models.Trade) { t.Ticker = ticker }
}

// WithCycle links the trade to a cycle.
func WithCycle(cycleID string) TradeOption {
	return func(t *models.Trade) { t.CycleID = cycleID }
}

// WithEntry sets the entry date from a YYYY-MM-DD literal.
func WithEntry(date string) TradeOption {
	return func(t *models.Trade) { t.EntryDate = models.MustParseDate(date) }
}

// WithStrategy sets the strategy.
func WithStrategy(s models.StrategyType) TradeOption {
	return func(t *models.Trade) { t.Strategy = s }
}

// Closed marks the trade closed on the given date with the given P&L.
func Closed(closeDate string, realized float64) TradeOption {
	return func(t *models.Trade) {
		t.Status = models.StatusClosed
		t.CloseDate = models.MustParseDate(closeDate)
		zero := 0.0
		t.ClosePrice = &zero
		t.PnL = &realized
	}
}

// NewTestTrade returns an unsaved open cash-secured put with a unique ticker.
func NewTestTrade(opts ...TradeOption) models.Trade {
	trade := models.Trade{
		Ticker:          fmt.Sprintf("T%d", nextID()),
		Strategy:        models.StrategyCSP,
		Status:          models.StatusOpen,
		EntryDate:       models.MustParseDate("2024-01-02"),
		ExpirationDate:  models.MustParseDate("2024-02-16"),
		StrikePrice:     50,
		Premium:         1,
		Contracts:       1,
		UnderlyingPrice: 52,
		Fees:            0.65,
		Tags:            []string{},
	}
	for _, opt := range opts {
		opt(&trade)
	}
	return trade
}

// CreateTestTrade stores a fixture trade.
func CreateTestTrade(t *testing.T, db *gorm.DB, opts ...TradeOption) *models.Trade {
	t.Helper()

	trade := NewTestTrade(opts...)
	if err := db.Create(&trade).Error; err != nil {
		t.Fatalf("failed to create test trade: %v", err)
	}
	return &trade
}

// CreateTestSettings stores the default settings with the given changes.
func CreateTestSettings(t *testing.T, db *gorm.DB, modify func(*models.Settings)) *models.Settings {
	t.Helper()

	settings := models.DefaultSettings()
	if modify != nil {
		modify(&settings)
	}
	if err := db.Save(&settings).Error; err != nil {
		t.Fatalf("failed to create test settings: %v", err)
	}
	return &settings
}
