package models

// Position is the typed view of a Trade's strategy-dependent fields. Use a type
// switch on the concrete variants.
type Position interface {
	// Quantity is the number of contracts or lots the position spans.
	Quantity() float64
	position()
}

// ShortPut is a cash-secured put.
type ShortPut struct {
	Strike    float64
	Credit    float64
	Contracts float64
}

// CoveredCall is a call written against held shares.
type CoveredCall struct {
	Strike    float64
	Credit    float64
	Contracts float64
	CostBasis float64
	HasBasis  bool
}

// PutCreditSpread is a short put spread. The width is not recorded, so the short
// strike stands in for the risk.
type PutCreditSpread struct {
	ShortStrike float64
	Credit      float64
	Contracts   float64
}

// AssignedStock is a block of shares received on assignment, in lots of 100.
type AssignedStock struct {
	CostBasis float64
	Lots      float64
}

// StockSale is shares called away at the strike.
type StockSale struct {
	SalePrice float64
	Credit    float64
	Contracts float64
}

// LongEquity is a raw share position held outside the wheel.
type LongEquity struct {
	EntryPrice float64
	Shares     float64
}

// Leaps is a long-dated long option bought for a debit.
type Leaps struct {
	Strike    float64
	Debit     float64
	Contracts float64
}

func (p ShortPut) Quantity() float64        { return p.Contracts }
func (p CoveredCall) Quantity() float64     { return p.Contracts }
func (p PutCreditSpread) Quantity() float64 { return p.Contracts }
func (p AssignedStock) Quantity() float64   { return p.Lots }
func (p StockSale) Quantity() float64       { return p.Contracts }
func (p LongEquity) Quantity() float64      { return p.Shares }
func (p Leaps) Quantity() float64           { return p.Contracts }

func (ShortPut) position()        {}
func (CoveredCall) position()     {}
func (PutCreditSpread) position() {}
func (AssignedStock) position()   {}
func (StockSale) position()       {}
func (LongEquity) position()      {}
func (Leaps) position()           {}

// Position returns the typed variant for the trade's strategy. Unknown
// strategies are treated as short puts, which matches how collateral is
// computed for them.
func (t *Trade) Position() Position {
	switch t.Strategy {
	case StrategyCC:
		basis := t.UnderlyingPrice
		return CoveredCall{Strike: t.StrikePrice, Credit: t.Premium, Contracts: t.Contracts, CostBasis: basis, HasBasis: basis > 0}
	case StrategyPCS:
		return PutCreditSpread{ShortStrike: t.StrikePrice, Credit: t.Premium, Contracts: t.Contracts}
	case StrategyStockBuy:
		basis := t.UnderlyingPrice
		if basis <= 0 {
			basis = t.Premium
		}
		return AssignedStock{CostBasis: basis, Lots: t.Contracts}
	case StrategyStockSell:
		return StockSale{SalePrice: t.StrikePrice, Credit: t.Premium, Contracts: t.Contracts}
	case StrategyLongStock:
		return LongEquity{EntryPrice: t.StrikePrice, Shares: t.Contracts}
	case StrategyLEAPS:
		return Leaps{Strike: t.StrikePrice, Debit: t.Premium, Contracts: t.Contracts}
	default:
		return ShortPut{Strike: t.StrikePrice, Credit: t.Premium, Contracts: t.Contracts}
	}
}
