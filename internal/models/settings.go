package models

import (
	"math"
	"strings"
	"time"
)

// SettingsID is the primary key of the single settings row.
const SettingsID = 1

// Settings defaults.
const (
	DefaultMonthlyGoal         = 1000
	DefaultTotalAccountValue   = 33000
	DefaultIncomeTargetPercent = 3
	DefaultManualVix           = 15
)

// Settings holds the user's goals and the market inputs the dashboard consumes.
type Settings struct {
	ID                  uint               `gorm:"primaryKey" json:"-"`
	MonthlyGoal         float64            `gorm:"not null" json:"monthlyGoal"`
	TotalAccountValue   float64            `gorm:"not null" json:"totalAccountValue"`
	IncomeTargetPercent float64            `gorm:"not null" json:"incomeTargetPercent"`
	TickerPrices        map[string]float64 `gorm:"serializer:json" json:"tickerPrices"`
	FinnhubAPIKey       string             `gorm:"column:finnhub_api_key" json:"finnhubApiKey"`
	LastVix             float64            `gorm:"not null;default:0" json:"lastVix"`
	ManualVix           float64            `gorm:"not null" json:"manualVix"`
	UpdatedAt           time.Time          `json:"-"`
}

// DefaultSettings returns the settings a fresh journal starts with.
func DefaultSettings() Settings {
	return Settings{
		ID:                  SettingsID,
		MonthlyGoal:         DefaultMonthlyGoal,
		TotalAccountValue:   DefaultTotalAccountValue,
		IncomeTargetPercent: DefaultIncomeTargetPercent,
		TickerPrices:        map[string]float64{},
		ManualVix:           DefaultManualVix,
	}
}

// EffectiveVix is the fetched VIX when one exists, else the manual reading.
func (s *Settings) EffectiveVix() float64 {
	if s.LastVix > 0 {
		return s.LastVix
	}
	return s.ManualVix
}

// SetAccountValue updates the account value and re-derives the monthly goal.
func (s *Settings) SetAccountValue(value float64) {
	s.TotalAccountValue = value
	s.MonthlyGoal = math.Round(value * s.IncomeTargetPercent / 100)
}

// SetIncomeTargetPercent updates the percent and re-derives the monthly goal.
func (s *Settings) SetIncomeTargetPercent(percent float64) {
	s.IncomeTargetPercent = percent
	s.MonthlyGoal = math.Round(s.TotalAccountValue * percent / 100)
}

// SetMonthlyGoal updates the goal and re-derives the percent when an account
// value is known.
func (s *Settings) SetMonthlyGoal(goal float64) {
	s.MonthlyGoal = goal
	if s.TotalAccountValue > 0 {
		s.IncomeTargetPercent = math.Round(goal/s.TotalAccountValue*100*100) / 100
	}
}

// SetManualVix records a manually entered VIX. It clears any fetched value so
// the manual entry takes effect.
func (s *Settings) SetManualVix(vix float64) {
	s.ManualVix = vix
	s.LastVix = 0
}

// SetTickerPrice stores a current price for ticker.
func (s *Settings) SetTickerPrice(ticker string, price float64) {
	if s.TickerPrices == nil {
		s.TickerPrices = map[string]float64{}
	}
	s.TickerPrices[strings.ToUpper(ticker)] = price
}

// Prices returns a copy of the ticker price map.
func (s *Settings) Prices() map[string]float64 {
	out := make(map[string]float64, len(s.TickerPrices))
	for k, v := range s.TickerPrices {
		out[k] = v
	}
	return out
}

// Normalize fills unset fields with defaults.
func (s *Settings) Normalize() {
	s.ID = SettingsID
	if s.TickerPrices == nil {
		s.TickerPrices = map[string]float64{}
	}
	s.MonthlyGoal = finiteOrZero(s.MonthlyGoal)
	s.TotalAccountValue = finiteOrZero(s.TotalAccountValue)
	s.IncomeTargetPercent = finiteOrZero(s.IncomeTargetPercent)
	s.LastVix = finiteOrZero(s.LastVix)
	s.ManualVix = finiteOrZero(s.ManualVix)
}
