// Package transition applies the save-time rules of a trade: input
// normalisation, close-date and P&L stamping, cycle id generation and the
// stock position spawned when a put is assigned.
package transition

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"wheeltradr/internal/models"
	"wheeltradr/internal/pnl"

	"github.com/shopspring/decimal"
)

// ExitFeePerContract is the commission assumed on close when none is given.
const ExitFeePerContract = 0.65

// AssignmentTag labels stock positions created by an assignment.
const AssignmentTag = "assignment"

// Result is a prepared trade plus the stock position its save spawned, if any.
type Result struct {
	Trade   models.Trade
	Spawned *models.Trade
}

// Prepare readies next for saving. prev is the stored version of the trade, or
// nil when next is new.
//
// A put that moves into Assigned from any other status spawns exactly one
// open stock position in the same cycle. Re-saving an already assigned put
// spawns nothing.
func Prepare(prev *models.Trade, next models.Trade, now time.Time) Result {
	today := models.DateOf(now)
	next.Normalize()

	if !next.Status.IsOpen() && !next.CloseDate.IsSet() {
		next.CloseDate = today
	}
	stampPnL(&next)

	if prev == nil && next.CycleID == "" && next.Strategy == models.StrategyCSP {
		next.CycleID = NewCycleID(next.Ticker, now)
	}

	res := Result{Trade: next}
	if assigned(prev, &next) {
		spawned := AssignmentStock(&next, today)
		res.Spawned = &spawned
	}
	return res
}

// NewCycleID derives a cycle id from a ticker and a timestamp.
func NewCycleID(ticker string, now time.Time) string {
	return fmt.Sprintf("cycle_%s_%d", strings.ToLower(ticker), now.UnixMilli())
}

func assigned(prev, next *models.Trade) bool {
	if next.Strategy != models.StrategyCSP || next.Status != models.StatusAssigned {
		return false
	}
	return prev == nil || prev.Status != models.StatusAssigned
}

// AssignmentStock builds the open share position created when put is assigned.
// The strike becomes the cost basis and the lot count carries over.
func AssignmentStock(put *models.Trade, today models.Date) models.Trade {
	entry := put.CloseDate
	if !entry.IsSet() {
		entry = put.ExpirationDate
	}
	if !entry.IsSet() {
		entry = today
	}

	tags := make([]string, 0, len(put.Tags)+1)
	tags = append(tags, put.Tags...)
	tags = append(tags, AssignmentTag)

	return models.Trade{
		Ticker:          put.Ticker,
		Strategy:        models.StrategyStockBuy,
		Status:          models.StatusOpen,
		EntryDate:       entry,
		Contracts:       put.Contracts,
		UnderlyingPrice: put.StrikePrice,
		Notes:           fmt.Sprintf("Auto-generated from CSP Assignment (Strike $%s)", strconv.FormatFloat(put.StrikePrice, 'f', -1, 64)),
		Tags:            tags,
		CycleID:         put.CycleID,
	}
}

// DefaultExitFee is the exit commission for a trade's contract count.
func DefaultExitFee(t *models.Trade) float64 {
	contracts := t.Contracts
	if contracts <= 0 {
		contracts = 1
	}
	return decimal.NewFromFloat(contracts).Mul(decimal.NewFromFloat(ExitFeePerContract)).InexactFloat64()
}

// CanQuickClose reports whether t can be closed in one step: an open short put
// or covered call bought back, or an open LEAPS sold.
func CanQuickClose(t *models.Trade) bool {
	if !t.Status.IsOpen() {
		return false
	}
	switch t.Strategy {
	case models.StrategyCSP, models.StrategyCC, models.StrategyLEAPS:
		return true
	}
	return false
}

// QuickClose closes t at closePrice today. The exit fee, or the default fee
// when exitFee is nil, is added to the stored fees before P&L is computed.
// Callers check CanQuickClose first.
func QuickClose(t models.Trade, closePrice float64, exitFee *float64, now time.Time) models.Trade {
	t.Normalize()
	fee := DefaultExitFee(&t)
	if exitFee != nil {
		fee = *exitFee
	}

	t.Fees = pnl.TotalFees(t.Fees, fee)
	t.ClosePrice = &closePrice
	t.Status = models.StatusClosed
	t.CloseDate = models.DateOf(now)
	stampPnL(&t)
	return t
}

func stampPnL(t *models.Trade) {
	if t.Status.IsOpen() {
		t.PnL = nil
		return
	}
	v := pnl.Realized(t)
	t.PnL = &v
}
