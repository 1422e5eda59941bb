package metrics

import (
	"sort"
	"time"

	"wheeltradr/internal/models"

	"github.com/shopspring/decimal"
)

// CalendarDay is realized P&L booked on one day of a month.
type CalendarDay struct {
	Day int     `json:"day"`
	PnL float64 `json:"pnl"`
}

// Calendar is a month of daily realized P&L.
type Calendar struct {
	Year         int           `json:"year"`
	Month        int           `json:"month"`
	DaysInMonth  int           `json:"days_in_month"`
	FirstWeekday int           `json:"first_weekday"`
	Days         []CalendarDay `json:"days"`
	Total        float64       `json:"total"`
	Wins         int           `json:"wins"`
	Losses       int           `json:"losses"`
}

// BuildCalendar books closed trades with a close date in year/month onto their
// close day. Days without bookings are omitted.
func BuildCalendar(trades []models.Trade, year int, month time.Month) Calendar {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	cal := Calendar{
		Year:         year,
		Month:        int(month),
		DaysInMonth:  first.AddDate(0, 1, -1).Day(),
		FirstWeekday: int(first.Weekday()),
	}

	daily := map[int]decimal.Decimal{}
	total := decimal.Zero
	for i := range trades {
		t := &trades[i]
		if t.Status.IsOpen() || !t.CloseDate.IsSet() {
			continue
		}
		if t.CloseDate.Year() != year || t.CloseDate.Month() != month {
			continue
		}
		realized := decimal.NewFromFloat(t.RealizedPnL())
		daily[t.CloseDate.Day()] = daily[t.CloseDate.Day()].Add(realized)
		total = total.Add(realized)
		switch realized.Sign() {
		case 1:
			cal.Wins++
		case -1:
			cal.Losses++
		}
	}

	cal.Days = make([]CalendarDay, 0, len(daily))
	for day, v := range daily {
		cal.Days = append(cal.Days, CalendarDay{Day: day, PnL: v.InexactFloat64()})
	}
	sort.Slice(cal.Days, func(i, j int) bool { return cal.Days[i].Day < cal.Days[j].Day })
	cal.Total = total.InexactFloat64()
	return cal
}
