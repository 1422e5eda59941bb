// Package metrics folds a trade collection into the figures the dashboard,
// performance summary and calendar display. Every function is pure: the same
// trades and inputs always give the same output.
package metrics

import (
	"sort"
	"time"

	"wheeltradr/internal/models"
	"wheeltradr/internal/pnl"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// chartMonths is how many calendar months the monthly series covers, the
// current month included.
const chartMonths = 12

// Asset classes for open exposure.
const (
	AssetCSP   = "CSP"
	AssetStock = "STOCK"
	AssetLEAPS = "LEAPS"
)

// Input is everything a dashboard snapshot depends on.
type Input struct {
	Trades       []models.Trade
	Prices       map[string]float64
	Vix          float64
	AccountValue float64
	MonthlyGoal  float64
	Now          time.Time
}

// Exposure is open capital split by asset class.
type Exposure struct {
	CashSecured float64 `json:"cash_secured"`
	Stock       float64 `json:"stock"`
	LEAPS       float64 `json:"leaps"`
	Total       float64 `json:"total"`
}

// Allocation is a named slice of deployed capital.
type Allocation struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MonthlyPnL is realized P&L booked in one calendar month.
type MonthlyPnL struct {
	Month string  `json:"month"`
	PnL   float64 `json:"pnl"`
}

// EquityPoint is cumulative realized P&L as of a date.
type EquityPoint struct {
	Date  models.Date `json:"date"`
	Value float64     `json:"value"`
}

// Snapshot is the dashboard view of the journal.
type Snapshot struct {
	TotalPnL           float64       `json:"total_pnl"`
	Wins               int           `json:"wins"`
	Losses             int           `json:"losses"`
	WinRate            float64       `json:"win_rate"`
	PremiumCollected   float64       `json:"premium_collected"`
	OpenPositions      int           `json:"open_positions"`
	Exposure           Exposure      `json:"exposure"`
	AllocationByTicker []Allocation  `json:"allocation_by_ticker"`
	AssetAllocation    []Allocation  `json:"asset_allocation"`
	Monthly            []MonthlyPnL  `json:"monthly"`
	EquityCurve        []EquityPoint `json:"equity_curve"`
	CurrentMonthIncome float64       `json:"current_month_income"`
	MonthlyGoal        float64       `json:"monthly_goal"`
	GoalProgress       float64       `json:"goal_progress"`
	ActiveTickers      []string      `json:"active_tickers"`
	Vix                VixAllocation `json:"vix"`
}

// Compute folds the input into a Snapshot.
func Compute(in Input) Snapshot {
	var (
		total, premium, monthIncome decimal.Decimal
		cashSecured, stock, leaps   decimal.Decimal
		wins, losses, open          int
	)
	now := in.Now
	currentMonth := models.DateOf(now).MonthKey()
	cutoff := models.NewDate(now.Year(), now.Month()-(chartMonths-1), 1).MonthKey()

	byTicker := map[string]decimal.Decimal{}
	byMonth := map[string]decimal.Decimal{}
	active := map[string]struct{}{}

	for i := range in.Trades {
		t := &in.Trades[i]

		if t.Status.IsOpen() {
			open++
			active[t.Ticker] = struct{}{}
			class, amount := exposure(t, in.Prices)
			switch class {
			case AssetCSP:
				cashSecured = cashSecured.Add(amount)
			case AssetStock:
				stock = stock.Add(amount)
			case AssetLEAPS:
				leaps = leaps.Add(amount)
			}
			if amount.IsPositive() {
				byTicker[t.Ticker] = byTicker[t.Ticker].Add(amount)
			}
		} else {
			realized := decimal.NewFromFloat(t.RealizedPnL())
			total = total.Add(realized)
			switch realized.Sign() {
			case 1:
				wins++
			case -1:
				losses++
			}
			if t.CloseDate.IsSet() && t.CloseDate.MonthKey() == currentMonth {
				monthIncome = monthIncome.Add(realized)
			}
			if key := t.AttributionDate().MonthKey(); key != "" {
				byMonth[key] = byMonth[key].Add(realized)
			}
		}

		premium = premium.Add(decimal.NewFromFloat(pnl.PremiumCollected(t)))
	}

	deployed := cashSecured.Add(stock).Add(leaps)
	return Snapshot{
		TotalPnL:         total.InexactFloat64(),
		Wins:             wins,
		Losses:           losses,
		WinRate:          winRate(wins, losses),
		PremiumCollected: premium.InexactFloat64(),
		OpenPositions:    open,
		Exposure: Exposure{
			CashSecured: cashSecured.InexactFloat64(),
			Stock:       stock.InexactFloat64(),
			LEAPS:       leaps.InexactFloat64(),
			Total:       deployed.InexactFloat64(),
		},
		AllocationByTicker: allocations(byTicker),
		AssetAllocation: allocations(map[string]decimal.Decimal{
			AssetCSP:   cashSecured,
			AssetStock: stock,
			AssetLEAPS: leaps,
		}),
		Monthly:            monthlySeries(byMonth, cutoff),
		EquityCurve:        EquityCurve(in.Trades),
		CurrentMonthIncome: monthIncome.InexactFloat64(),
		MonthlyGoal:        in.MonthlyGoal,
		GoalProgress:       GoalProgress(monthIncome.InexactFloat64(), in.MonthlyGoal),
		ActiveTickers:      sortedKeys(active),
		Vix:                Allocate(in.Vix, in.AccountValue),
	}
}

// exposure classifies the capital an open trade ties up. Equity is marked at
// the live price when one is known, else at the stored underlying price.
func exposure(t *models.Trade, prices map[string]float64) (string, decimal.Decimal) {
	price := prices[t.Ticker]
	if price <= 0 {
		price = t.UnderlyingPrice
	}
	mark := decimal.NewFromFloat(price)

	switch p := t.Position().(type) {
	case models.ShortPut:
		return AssetCSP, decimal.NewFromFloat(p.Strike).Mul(decimal.NewFromFloat(p.Contracts)).Mul(hundred)
	case models.AssignedStock:
		return AssetStock, mark.Mul(decimal.NewFromFloat(p.Lots)).Mul(hundred)
	case models.LongEquity:
		return AssetStock, mark.Mul(decimal.NewFromFloat(p.Shares))
	case models.Leaps:
		return AssetLEAPS, decimal.NewFromFloat(p.Debit).Mul(decimal.NewFromFloat(p.Contracts)).Mul(hundred)
	}
	return "", decimal.Zero
}

// winRate is wins over decided trades in percent, or 0 when nothing is decided.
func winRate(wins, losses int) float64 {
	decided := wins + losses
	if decided == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(wins)).Div(decimal.NewFromInt(int64(decided))).Mul(hundred).InexactFloat64()
}

// GoalProgress is income over goal in percent, clamped to [0,100]. Goals below
// 1 are treated as 1.
func GoalProgress(income, goal float64) float64 {
	if goal < 1 {
		goal = 1
	}
	p := income / goal * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// EquityCurve is the running total of realized P&L in booking order, prefixed
// with a zero point the day before the first booking.
func EquityCurve(trades []models.Trade) []EquityPoint {
	realized := make([]*models.Trade, 0, len(trades))
	for i := range trades {
		if !trades[i].Status.IsOpen() && trades[i].AttributionDate().IsSet() {
			realized = append(realized, &trades[i])
		}
	}
	if len(realized) == 0 {
		return []EquityPoint{}
	}
	sort.SliceStable(realized, func(i, j int) bool {
		return realized[i].AttributionDate().Before(realized[j].AttributionDate())
	})

	curve := make([]EquityPoint, 0, len(realized)+1)
	curve = append(curve, EquityPoint{Date: realized[0].AttributionDate().AddDays(-1)})
	running := decimal.Zero
	for _, t := range realized {
		running = running.Add(decimal.NewFromFloat(t.RealizedPnL()))
		curve = append(curve, EquityPoint{Date: t.AttributionDate(), Value: running.InexactFloat64()})
	}
	return curve
}

func monthlySeries(byMonth map[string]decimal.Decimal, cutoff string) []MonthlyPnL {
	out := make([]MonthlyPnL, 0, len(byMonth))
	for month, v := range byMonth {
		if month < cutoff {
			continue
		}
		out = append(out, MonthlyPnL{Month: month, PnL: v.InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// allocations drops empty buckets and sorts by value descending, then name.
func allocations(m map[string]decimal.Decimal) []Allocation {
	out := make([]Allocation, 0, len(m))
	for name, v := range m {
		if !v.IsPositive() {
			continue
		}
		out = append(out, Allocation{Name: name, Value: v.InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
