package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "wheeltradr/internal/errors"
	"wheeltradr/internal/metrics"
	"wheeltradr/internal/services"
)

// AnalyticsHandler serves the read-side projections of the journal.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
	clock            func() time.Time
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, clock: time.Now}
}

// SummaryQuery selects the window of a performance summary.
type SummaryQuery struct {
	Range  string `form:"range" binding:"omitempty,date_range"`
	Months int    `form:"months" binding:"omitempty,min=1,max=120"`
	Start  string `form:"start"`
	End    string `form:"end"`
	Ticker string `form:"ticker" binding:"max=20"`
}

// Dashboard returns the dashboard snapshot
// @Summary     Dashboard
// @Description Realized P&L, win rate, exposure, allocations, monthly series and VIX guidance
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} metrics.Snapshot
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	snapshot, err := h.analyticsService.Dashboard()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// Cycles lists wheel cycles, or a single cycle when cycle_id is given
// @Summary     Wheel cycles
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       cycle_id query    string false "Return only this cycle"
// @Success     200 {array}  cycles.Cycle
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Cycle not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cycles [get]
func (h *AnalyticsHandler) Cycles(c *gin.Context) {
	if id := c.Query("cycle_id"); id != "" {
		cycle, err := h.analyticsService.Cycle(id)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, cycle)
		return
	}

	list, err := h.analyticsService.Cycles()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CycleOptions lists cycles a new trade can be linked to
// @Summary     Cycle options
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       ticker query    string false "Only cycles of this ticker"
// @Success     200 {array}  cycles.Option
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cycles/options [get]
func (h *AnalyticsHandler) CycleOptions(c *gin.Context) {
	options, err := h.analyticsService.CycleOptions(c.Query("ticker"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// Summary returns realized gains and losses over a date range
// @Summary     Performance summary
// @Description Ranges: today, current_month, last_3_months, last_6_months, prev_year, custom, trailing_months
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       range  query    string false "Range name (default current_month)"
// @Param       months query    int    false "Months for trailing_months"
// @Param       start  query    string false "Custom range start (YYYY-MM-DD)"
// @Param       end    query    string false "Custom range end (YYYY-MM-DD)"
// @Param       ticker query    string false "Ticker substring"
// @Success     200 {object} metrics.Summary
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /performance/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	var query SummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	start, err := parseDateQuery(c, "start")
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rng := metrics.Range(query.Range)
	if rng == "" {
		rng = metrics.RangeCurrentMonth
	}
	summary, err := h.analyticsService.Summary(services.SummaryRequest{
		Range:  rng,
		Params: metrics.RangeParams{Months: query.Months, Start: start, End: end},
		Ticker: query.Ticker,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Calendar returns daily realized P&L for a month
// @Summary     Performance calendar
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       year  query    int false "Year (default current)"
// @Param       month query    int false "Month 1-12 (default current)"
// @Success     200 {object} metrics.Calendar
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /performance/calendar [get]
func (h *AnalyticsHandler) Calendar(c *gin.Context) {
	now := h.clock()
	year, err := parseIntQuery(c, "year", now.Year())
	if err != nil {
		respondWithError(c, err)
		return
	}
	month, err := parseIntQuery(c, "month", int(now.Month()))
	if err != nil {
		respondWithError(c, err)
		return
	}

	calendar, err := h.analyticsService.Calendar(year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, calendar)
}
