package metrics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wheeltradr/internal/models"
	"wheeltradr/internal/pnl"

	"github.com/shopspring/decimal"
)

// Range names a reporting window.
type Range string

const (
	RangeToday        Range = "today"
	RangeCurrentMonth Range = "current_month"
	RangeLast3Months  Range = "last_3_months"
	RangeLast6Months  Range = "last_6_months"
	RangePrevYear     Range = "prev_year"
	RangeCustom       Range = "custom"
	RangeTrailing     Range = "trailing_months"
)

// Ranges lists the accepted range names.
var Ranges = []Range{RangeToday, RangeCurrentMonth, RangeLast3Months, RangeLast6Months, RangePrevYear, RangeCustom, RangeTrailing}

// Valid reports whether r is a known range.
func (r Range) Valid() bool {
	for _, known := range Ranges {
		if r == known {
			return true
		}
	}
	return false
}

// longTermDays is the holding period past which a result is long term.
const longTermDays = 365

var (
	// ErrUnknownRange is returned for a range name that is not recognised.
	ErrUnknownRange = errors.New("unknown range")
	// ErrInvalidWindow is returned when a window ends before it starts or a
	// trailing window spans no months.
	ErrInvalidWindow = errors.New("invalid window")
)

// Window is an inclusive span of whole days.
type Window struct {
	Start models.Date `json:"start"`
	End   models.Date `json:"end"`
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d models.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// RangeParams carries the inputs of the custom and trailing ranges.
type RangeParams struct {
	Months int
	Start  models.Date
	End    models.Date
}

// ResolveRange turns a named range into a concrete window as of now. Custom
// ranges default either missing bound to today.
func ResolveRange(r Range, now time.Time, p RangeParams) (Window, error) {
	today := models.DateOf(now)
	monthsBack := func(n int) models.Date {
		return models.NewDate(today.Year(), today.Month()-time.Month(n), 1)
	}

	switch r {
	case RangeToday:
		return Window{Start: today, End: today}, nil
	case RangeCurrentMonth:
		return Window{Start: monthsBack(0), End: today}, nil
	case RangeLast3Months:
		return Window{Start: monthsBack(3), End: today}, nil
	case RangeLast6Months:
		return Window{Start: monthsBack(6), End: today}, nil
	case RangeTrailing:
		if p.Months <= 0 {
			return Window{}, fmt.Errorf("%w: months must be positive", ErrInvalidWindow)
		}
		return Window{Start: monthsBack(p.Months), End: today}, nil
	case RangePrevYear:
		year := today.Year() - 1
		return Window{Start: models.NewDate(year, time.January, 1), End: models.NewDate(year, time.December, 31)}, nil
	case RangeCustom:
		w := Window{Start: p.Start, End: p.End}
		if !w.Start.IsSet() {
			w.Start = today
		}
		if !w.End.IsSet() {
			w.End = today
		}
		if w.End.Before(w.Start) {
			return Window{}, fmt.Errorf("%w: end %s is before start %s", ErrInvalidWindow, w.End, w.Start)
		}
		return w, nil
	}
	return Window{}, fmt.Errorf("%w: %q", ErrUnknownRange, r)
}

// Summary is realized gain and loss over a window.
type Summary struct {
	Window          Window  `json:"window"`
	Ticker          string  `json:"ticker,omitempty"`
	TradeCount      int     `json:"trade_count"`
	LongTermGains   float64 `json:"long_term_gains"`
	ShortTermGains  float64 `json:"short_term_gains"`
	LongTermLosses  float64 `json:"long_term_losses"`
	ShortTermLosses float64 `json:"short_term_losses"`
	TotalGains      float64 `json:"total_gains"`
	TotalLosses     float64 `json:"total_losses"`
	Net             float64 `json:"net"`
	TotalCollateral float64 `json:"total_collateral"`
	ReturnPercent   float64 `json:"return_percent"`
	GainRatio       float64 `json:"gain_ratio"`
}

// Summarize folds closed trades whose close date falls in w and whose ticker
// contains the filter into a Summary. Zero P&L counts as a gain.
func Summarize(trades []models.Trade, w Window, ticker string) Summary {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	var ltGain, stGain, ltLoss, stLoss, collateral decimal.Decimal
	count := 0

	for i := range trades {
		t := &trades[i]
		if t.Status.IsOpen() || !t.CloseDate.IsSet() || !w.Contains(t.CloseDate) {
			continue
		}
		if ticker != "" && !strings.Contains(t.Ticker, ticker) {
			continue
		}
		count++

		realized := decimal.NewFromFloat(t.RealizedPnL())
		longTerm := t.EntryDate.IsSet() && t.EntryDate.DaysUntil(t.CloseDate) > longTermDays
		switch {
		case realized.Sign() >= 0 && longTerm:
			ltGain = ltGain.Add(realized)
		case realized.Sign() >= 0:
			stGain = stGain.Add(realized)
		case longTerm:
			ltLoss = ltLoss.Add(realized)
		default:
			stLoss = stLoss.Add(realized)
		}
		collateral = collateral.Add(decimal.NewFromFloat(pnl.Collateral(t)))
	}

	gains := ltGain.Add(stGain)
	losses := ltLoss.Add(stLoss)
	net := gains.Add(losses)

	s := Summary{
		Window:          w,
		Ticker:          ticker,
		TradeCount:      count,
		LongTermGains:   ltGain.InexactFloat64(),
		ShortTermGains:  stGain.InexactFloat64(),
		LongTermLosses:  ltLoss.InexactFloat64(),
		ShortTermLosses: stLoss.InexactFloat64(),
		TotalGains:      gains.InexactFloat64(),
		TotalLosses:     losses.InexactFloat64(),
		Net:             net.InexactFloat64(),
		TotalCollateral: collateral.InexactFloat64(),
	}
	if collateral.IsPositive() {
		s.ReturnPercent = net.Div(collateral).Mul(hundred).InexactFloat64()
	}
	if volume := gains.Add(losses.Abs()); volume.IsPositive() {
		s.GainRatio = gains.Div(volume).Mul(hundred).InexactFloat64()
	}
	return s
}
