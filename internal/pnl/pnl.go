// Package pnl computes realized profit and loss and the per-trade return
// figures derived from it. Every currency fold runs through decimal so results
// match what a calculator would print.
package pnl

import (
	"math"

	"wheeltradr/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(models.SharesPerContract)

// Multiplier is the share count per unit of contracts: 1 for raw-share
// positions, 100 otherwise.
func Multiplier(s models.StrategyType) float64 {
	if s == models.StrategyLongStock {
		return 1
	}
	return models.SharesPerContract
}

// TotalFees adds an exit fee to the fee already stored on a trade.
func TotalFees(stored, exit float64) float64 {
	return d(stored).Add(d(exit)).InexactFloat64()
}

// Realized returns the P&L of t when closed at t.ClosePrice with t.Fees as the
// total fee paid over the trade's life. Missing inputs count as zero.
//
//	short premium  premium*M*c - close*M*c - fees
//	LEAPS          close*M*c - premium*M*c - fees
//	long stock     (close - entry)*shares - fees
//	assigned stock 0
//
// An assigned stock lot never realizes anything, fees included: its result is
// booked on the covered call or stock sale that ends the cycle.
func Realized(t *models.Trade) float64 {
	closePrice := d(t.ClosePriceOrZero())
	fees := d(t.Fees)
	m := d(Multiplier(t.Strategy))

	switch p := t.Position().(type) {
	case models.ShortPut:
		return credit(p.Credit, closePrice, p.Contracts, m, fees)
	case models.CoveredCall:
		return credit(p.Credit, closePrice, p.Contracts, m, fees)
	case models.PutCreditSpread:
		return credit(p.Credit, closePrice, p.Contracts, m, fees)
	case models.StockSale:
		return credit(p.Credit, closePrice, p.Contracts, m, fees)
	case models.Leaps:
		paid := d(p.Debit).Mul(m).Mul(d(p.Contracts))
		received := closePrice.Mul(m).Mul(d(p.Contracts))
		return received.Sub(paid).Sub(fees).InexactFloat64()
	case models.LongEquity:
		return closePrice.Sub(d(p.EntryPrice)).Mul(d(p.Shares)).Sub(fees).InexactFloat64()
	case models.AssignedStock:
		return 0
	}
	return 0
}

func credit(premium float64, closePrice decimal.Decimal, contracts float64, m, fees decimal.Decimal) float64 {
	received := d(premium).Mul(m).Mul(d(contracts))
	paid := closePrice.Mul(m).Mul(d(contracts))
	return received.Sub(paid).Sub(fees).InexactFloat64()
}

// Collateral is the capital a trade ties up, used as the denominator of return
// figures. Put credit spreads and unknown strategies fall back to the strike.
func Collateral(t *models.Trade) float64 {
	switch p := t.Position().(type) {
	case models.ShortPut:
		return lot(p.Strike, p.Contracts)
	case models.CoveredCall:
		price := p.Strike
		if p.HasBasis {
			price = p.CostBasis
		}
		return lot(price, p.Contracts)
	case models.AssignedStock:
		return lot(p.CostBasis, p.Lots)
	case models.Leaps:
		return lot(p.Debit, p.Contracts)
	case models.LongEquity:
		return d(p.EntryPrice).Mul(d(p.Shares)).InexactFloat64()
	case models.PutCreditSpread:
		return lot(p.ShortStrike, p.Contracts)
	case models.StockSale:
		return lot(p.SalePrice, p.Contracts)
	}
	return 0
}

// CostOrCollateral is the cash figure shown against a trade in the trade list.
// It reports false for strategies that have no meaningful figure.
func CostOrCollateral(t *models.Trade) (float64, bool) {
	switch t.Strategy {
	case models.StrategyCSP:
		return lot(t.StrikePrice, t.Contracts), true
	case models.StrategyStockBuy:
		price := t.UnderlyingPrice
		if price <= 0 {
			price = t.StrikePrice
		}
		return lot(price, t.Contracts), true
	case models.StrategyLEAPS:
		return lot(t.Premium, t.Contracts), true
	}
	return 0, false
}

// ExitValue is the cash that changed hands on close. It reports false while the
// trade has no close price or did not end in a Closed or Rolled status.
func ExitValue(t *models.Trade) (float64, bool) {
	if t.ClosePrice == nil {
		return 0, false
	}
	if t.Status != models.StatusClosed && t.Status != models.StatusRolled {
		return 0, false
	}
	return lot(*t.ClosePrice, t.Contracts), true
}

// NetPremium is the credit received net of fees. LEAPS and trades without a
// premium have none.
func NetPremium(t *models.Trade) float64 {
	if t.Premium <= 0 || t.Strategy == models.StrategyLEAPS {
		return 0
	}
	return d(t.Premium).Mul(hundred).Mul(d(t.Contracts)).Sub(d(t.Fees)).InexactFloat64()
}

// PremiumCollected is premium*contracts*100 for premium-selling strategies.
func PremiumCollected(t *models.Trade) float64 {
	if t.Premium <= 0 || !t.Strategy.SellsPremium() {
		return 0
	}
	return lot(t.Premium, t.Contracts)
}

// DisplayQuantity is shares for assigned stock and contracts otherwise.
func DisplayQuantity(t *models.Trade) float64 {
	if t.Strategy == models.StrategyStockBuy {
		return d(t.Contracts).Mul(hundred).InexactFloat64()
	}
	return t.Contracts
}

// BreakEven returns the per-share break-even price for a short put or a covered
// call.
func BreakEven(t *models.Trade) (float64, bool) {
	switch t.Strategy {
	case models.StrategyCSP:
		return d(t.StrikePrice).Sub(d(t.Premium)).InexactFloat64(), true
	case models.StrategyCC:
		return d(t.UnderlyingPrice).Sub(d(t.Premium)).InexactFloat64(), true
	}
	return 0, false
}

// EntryROR is the return on risk at entry: premium over the per-share capital
// at stake, in percent.
func EntryROR(t *models.Trade) float64 {
	var basis float64
	switch t.Strategy {
	case models.StrategyCSP, models.StrategyStockBuy, models.StrategyLongStock:
		basis = t.StrikePrice
	case models.StrategyCC:
		basis = t.UnderlyingPrice
	}
	if basis <= 0 || t.Premium <= 0 {
		return 0
	}
	return percent(d(t.Premium), d(basis))
}

// ROR is realized P&L over collateral, in percent. Zero collateral yields 0.
func ROR(t *models.Trade) float64 {
	collateral := Collateral(t)
	if collateral <= 0 {
		return 0
	}
	return percent(d(t.RealizedPnL()), d(collateral))
}

// DaysHeld is the number of days between entry and close, floored at 1.
func DaysHeld(t *models.Trade) float64 {
	if !t.CloseDate.IsSet() || !t.EntryDate.IsSet() {
		return 1
	}
	return math.Max(t.EntryDate.DaysUntil(t.CloseDate), 1)
}

// APY annualises ROR over the holding period.
func APY(t *models.Trade) float64 {
	ror := ROR(t)
	if ror == 0 {
		return 0
	}
	return d(ror).Mul(decimal.NewFromInt(365)).Div(d(DaysHeld(t))).InexactFloat64()
}

// DTE is the number of days from today to expiration for an open trade. It
// reports false when the trade is closed or has no expiration.
func DTE(t *models.Trade, today models.Date) (int, bool) {
	if !t.Status.IsOpen() || !t.ExpirationDate.IsSet() {
		return 0, false
	}
	return int(math.Ceil(today.DaysUntil(t.ExpirationDate))), true
}

// Ratio returns num/den*100, or 0 when den is not positive.
func Ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return percent(d(num), d(den))
}

func lot(price, contracts float64) float64 {
	return d(price).Mul(d(contracts)).Mul(hundred).InexactFloat64()
}

func percent(num, den decimal.Decimal) float64 {
	return num.Div(den).Mul(hundred).InexactFloat64()
}

func d(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
