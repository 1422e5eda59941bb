package models

import (
	"math"
	"strings"
)

// StrategyType classifies a trade. The values are the labels the journal has
// always exported, so older backups import unchanged.
type StrategyType string

const (
	StrategyCSP       StrategyType = "Cash-Secured Put"
	StrategyCC        StrategyType = "Covered Call"
	StrategyPCS       StrategyType = "Put Credit Spread"
	StrategyStockBuy  StrategyType = "Stock Purchase (Assignment)"
	StrategyStockSell StrategyType = "Stock Sale (Called Away)"
	StrategyLongStock StrategyType = "Long-Term Stock"
	StrategyLEAPS     StrategyType = "LEAPS"
)

// Strategies lists every known strategy in display order.
var Strategies = []StrategyType{
	StrategyCSP, StrategyCC, StrategyPCS, StrategyStockBuy, StrategyStockSell, StrategyLongStock, StrategyLEAPS,
}

// Valid reports whether s is a known strategy.
func (s StrategyType) Valid() bool {
	for _, known := range Strategies {
		if s == known {
			return true
		}
	}
	return false
}

// SellsPremium reports whether premium on this strategy is a credit received.
// Equity strategies and LEAPS carry a cost, not income.
func (s StrategyType) SellsPremium() bool {
	switch s {
	case StrategyStockBuy, StrategyLongStock, StrategyLEAPS:
		return false
	}
	return true
}

// IsEquity reports whether the strategy is a share position.
func (s StrategyType) IsEquity() bool {
	return s == StrategyStockBuy || s == StrategyLongStock
}

// TradeStatus is the lifecycle state of a trade.
type TradeStatus string

const (
	StatusOpen     TradeStatus = "Open"
	StatusClosed   TradeStatus = "Closed"
	StatusAssigned TradeStatus = "Assigned"
	StatusExpired  TradeStatus = "Expired Worthless"
	StatusRolled   TradeStatus = "Rolled"
)

// Statuses lists every known status.
var Statuses = []TradeStatus{StatusOpen, StatusClosed, StatusAssigned, StatusExpired, StatusRolled}

// Valid reports whether s is a known status.
func (s TradeStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsOpen reports whether the status is Open. Every other status is closed-like
// and carries a realized P&L.
func (s TradeStatus) IsOpen() bool { return s == StatusOpen }

// SharesPerContract is the option contract multiplier.
const SharesPerContract = 100

// legacyLotThreshold marks STOCK_BUY records written when contracts held a raw
// share count instead of lots of 100.
const legacyLotThreshold = 100

// Trade is the unit of record in the journal.
//
// Several fields are overloaded by strategy; Position gives the typed view.
// contracts is lots of 100 shares for STOCK_BUY, raw shares for LONG_STOCK and
// option contracts otherwise. strikePrice holds the entry price for LONG_STOCK.
// premium is a credit for short options and a debit for LEAPS.
type Trade struct {
	Base
	Ticker          string       `gorm:"not null;index" json:"ticker"`
	Strategy        StrategyType `gorm:"not null" json:"strategy"`
	Status          TradeStatus  `gorm:"not null;index" json:"status"`
	EntryDate       Date         `gorm:"not null" json:"entryDate"`
	ExpirationDate  Date         `json:"expirationDate"`
	CloseDate       Date         `json:"closeDate,omitempty"`
	StrikePrice     float64      `gorm:"not null;default:0" json:"strikePrice"`
	Premium         float64      `gorm:"not null;default:0" json:"premium"`
	Contracts       float64      `gorm:"not null;default:1" json:"contracts"`
	UnderlyingPrice float64      `gorm:"not null;default:0" json:"underlyingPrice"`
	Fees            float64      `gorm:"not null;default:0" json:"fees"`
	ClosePrice      *float64     `json:"closePrice,omitempty"`
	PnL             *float64     `gorm:"column:pnl" json:"pnl,omitempty"`
	Notes           string       `json:"notes"`
	Tags            []string     `gorm:"serializer:json" json:"tags"`
	CycleID         string       `gorm:"index" json:"cycleId,omitempty"`
}

// RealizedPnL returns the stored P&L, or 0 when unset.
func (t *Trade) RealizedPnL() float64 {
	if t.PnL == nil {
		return 0
	}
	return *t.PnL
}

// ClosePriceOrZero returns the close price, or 0 when unset.
func (t *Trade) ClosePriceOrZero() float64 {
	if t.ClosePrice == nil {
		return 0
	}
	return *t.ClosePrice
}

// AttributionDate is the date realized P&L is booked on: the close date, or
// the entry date for records closed without one.
func (t *Trade) AttributionDate() Date {
	if t.CloseDate.IsSet() {
		return t.CloseDate
	}
	return t.EntryDate
}

// LastActivity is the latest date the trade touches.
func (t *Trade) LastActivity() Date {
	switch {
	case t.CloseDate.IsSet():
		return t.CloseDate
	case t.ExpirationDate.IsSet():
		return t.ExpirationDate
	default:
		return t.EntryDate
	}
}

// Normalize coerces user input into the invariants the calculators rely on:
// finite non-negative numbers, contracts > 0, an upper-case ticker and a
// non-nil tag slice.
func (t *Trade) Normalize() {
	t.Ticker = strings.ToUpper(strings.TrimSpace(t.Ticker))
	t.StrikePrice = finiteOrZero(t.StrikePrice)
	t.Premium = finiteOrZero(t.Premium)
	t.UnderlyingPrice = finiteOrZero(t.UnderlyingPrice)
	t.Fees = finiteOrZero(t.Fees)
	t.Contracts = finiteOrZero(t.Contracts)
	if t.Contracts <= 0 {
		t.Contracts = 1
	}
	if t.ClosePrice != nil {
		v := finiteOrZero(*t.ClosePrice)
		t.ClosePrice = &v
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
}

// MigrateLegacyLots converts a STOCK_BUY record that stores raw shares into
// lots of 100. It reports whether the record changed.
func (t *Trade) MigrateLegacyLots() bool {
	if t.Strategy == StrategyStockBuy && t.Contracts >= legacyLotThreshold {
		t.Contracts /= SharesPerContract
		return true
	}
	return false
}

// HasTag reports whether the trade carries the given label.
func (t *Trade) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
