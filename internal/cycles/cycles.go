// Package cycles groups trades that share a cycle id into wheel cycles. A
// cycle is never stored; it is rebuilt from the trades on every call.
package cycles

import (
	"sort"
	"strings"

	"wheeltradr/internal/models"
	"wheeltradr/internal/pnl"

	"github.com/shopspring/decimal"
)

// Status is the inferred state of a cycle.
type Status string

const (
	StatusActive   Status = "Active"
	StatusComplete Status = "Complete"
)

// assignmentKeyword marks a closed put whose notes say it was assigned. The
// match is case-sensitive.
const assignmentKeyword = "Assigned"

// Cycle is the timeline of one wheel.
type Cycle struct {
	ID        string         `json:"id"`
	Ticker    string         `json:"ticker"`
	Trades    []models.Trade `json:"trades"`
	StartDate models.Date    `json:"start_date"`
	LastDate  models.Date    `json:"last_date"`
	TotalPnL  float64        `json:"total_pnl"`
	ROI       float64        `json:"roi"`
	Status    Status         `json:"status"`
	Steps     int            `json:"steps"`
}

// Option identifies an existing cycle a new trade can be linked to.
type Option struct {
	ID     string      `json:"id"`
	Ticker string      `json:"ticker"`
	Label  models.Date `json:"label"`
}

// Group builds one Cycle per distinct non-empty cycle id. Members are ordered
// by entry date, cycles by most recent activity first.
func Group(trades []models.Trade) []Cycle {
	index := map[string]int{}
	var out []Cycle

	for i := range trades {
		t := trades[i]
		if t.CycleID == "" {
			continue
		}
		pos, ok := index[t.CycleID]
		if !ok {
			pos = len(out)
			index[t.CycleID] = pos
			out = append(out, Cycle{ID: t.CycleID, Ticker: t.Ticker, StartDate: t.EntryDate, LastDate: t.EntryDate})
		}
		c := &out[pos]
		c.Trades = append(c.Trades, t)
		c.Steps++
		if t.EntryDate.Before(c.StartDate) {
			c.StartDate = t.EntryDate
		}
		if last := t.LastActivity(); last.After(c.LastDate) {
			c.LastDate = last
		}
	}

	for i := range out {
		finish(&out[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastDate.After(out[j].LastDate)
	})
	if out == nil {
		return []Cycle{}
	}
	return out
}

// Find returns the cycle with the given id.
func Find(trades []models.Trade, id string) (Cycle, bool) {
	members := make([]models.Trade, 0)
	for i := range trades {
		if trades[i].CycleID == id {
			members = append(members, trades[i])
		}
	}
	if id == "" || len(members) == 0 {
		return Cycle{}, false
	}
	return Group(members)[0], true
}

func finish(c *Cycle) {
	sort.SliceStable(c.Trades, func(i, j int) bool {
		return c.Trades[i].EntryDate.Before(c.Trades[j].EntryDate)
	})

	total := decimal.Zero
	var largest float64
	for i := range c.Trades {
		total = total.Add(decimal.NewFromFloat(c.Trades[i].RealizedPnL()))
		if collateral := pnl.Collateral(&c.Trades[i]); collateral > largest {
			largest = collateral
		}
	}
	c.TotalPnL = total.InexactFloat64()
	c.ROI = pnl.Ratio(c.TotalPnL, largest)

	c.Status = StatusActive
	if IsComplete(&c.Trades[len(c.Trades)-1]) {
		c.Status = StatusComplete
	}
}

// IsComplete reports whether last, the chronologically final trade of a
// cycle, ends the wheel: shares were called away, or a put was closed without
// its notes mentioning an assignment. The notes check is a best-effort
// heuristic over free text.
func IsComplete(last *models.Trade) bool {
	if last.Strategy == models.StrategyStockSell {
		return true
	}
	return last.Strategy == models.StrategyCSP &&
		last.Status == models.StatusClosed &&
		!strings.Contains(last.Notes, assignmentKeyword)
}

// Options lists existing cycles in first-seen order, optionally restricted to
// a ticker. The label is the entry date of the first trade seen.
func Options(trades []models.Trade, ticker string) []Option {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	seen := map[string]struct{}{}
	out := make([]Option, 0)
	for i := range trades {
		t := &trades[i]
		if t.CycleID == "" {
			continue
		}
		if _, ok := seen[t.CycleID]; ok {
			continue
		}
		seen[t.CycleID] = struct{}{}
		if ticker != "" && t.Ticker != ticker {
			continue
		}
		out = append(out, Option{ID: t.CycleID, Ticker: t.Ticker, Label: t.EntryDate})
	}
	return out
}
