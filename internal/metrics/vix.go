package metrics

import "github.com/shopspring/decimal"

// VixBand is a recommended cash range for a volatility regime. MinCash and
// MaxCash are fractions of the account.
type VixBand struct {
	UpTo    float64
	MinCash float64
	MaxCash float64
	Label   string
}

// vixBands is ordered by ascending upper bound. The last band is open ended.
var vixBands = []VixBand{
	{UpTo: 12, MinCash: 0.40, MaxCash: 0.50, Label: "Extreme Greed"},
	{UpTo: 15, MinCash: 0.30, MaxCash: 0.40, Label: "Greed"},
	{UpTo: 20, MinCash: 0.20, MaxCash: 0.25, Label: "Slight Fear"},
	{UpTo: 25, MinCash: 0.10, MaxCash: 0.15, Label: "Fear"},
	{UpTo: 30, MinCash: 0.05, MaxCash: 0.10, Label: "Very Fearful"},
	{MinCash: 0.00, MaxCash: 0.05, Label: "Extreme Fear"},
}

// BandFor returns the cash band for a VIX reading. Boundaries belong to the
// lower band, so 12 is Extreme Greed and 12.01 is Greed.
func BandFor(vix float64) VixBand {
	for _, b := range vixBands[:len(vixBands)-1] {
		if vix <= b.UpTo {
			return b
		}
	}
	return vixBands[len(vixBands)-1]
}

// VixAllocation is the advisory cash split for an account at a VIX reading.
type VixAllocation struct {
	Vix              float64 `json:"vix"`
	Label            string  `json:"label"`
	MinCashPercent   float64 `json:"min_cash_percent"`
	MaxCashPercent   float64 `json:"max_cash_percent"`
	MinCashAmount    float64 `json:"min_cash_amount"`
	MaxCashAmount    float64 `json:"max_cash_amount"`
	InvestedMidpoint float64 `json:"invested_midpoint_percent"`
}

// Allocate maps a VIX reading and account value to a recommended cash range.
func Allocate(vix, accountValue float64) VixAllocation {
	b := BandFor(vix)
	minCash := decimal.NewFromFloat(b.MinCash)
	maxCash := decimal.NewFromFloat(b.MaxCash)
	value := decimal.NewFromFloat(accountValue)
	mid := minCash.Add(maxCash).Div(decimal.NewFromInt(2))

	return VixAllocation{
		Vix:              vix,
		Label:            b.Label,
		MinCashPercent:   minCash.Mul(hundred).InexactFloat64(),
		MaxCashPercent:   maxCash.Mul(hundred).InexactFloat64(),
		MinCashAmount:    value.Mul(minCash).InexactFloat64(),
		MaxCashAmount:    value.Mul(maxCash).InexactFloat64(),
		InvestedMidpoint: decimal.NewFromInt(1).Sub(mid).Mul(hundred).InexactFloat64(),
	}
}
