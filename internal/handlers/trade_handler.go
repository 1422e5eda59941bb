package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "wheeltradr/internal/errors"
	"wheeltradr/internal/models"
	"wheeltradr/internal/pagination"
	"wheeltradr/internal/pnl"
	"wheeltradr/internal/services"
)

// TradeHandler handles trade-related requests
type TradeHandler struct {
	tradeService services.TradeServicer
	clock        func() time.Time
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradeService services.TradeServicer) *TradeHandler {
	return &TradeHandler{tradeService: tradeService, clock: time.Now}
}

// TradeRequest is the body of a create or update. Field names follow the
// trade resource so a fetched trade can be sent back unchanged. Negative or
// malformed amounts are coerced to zero on save.
type TradeRequest struct {
	Ticker          string              `json:"ticker" binding:"required,ticker"`
	Strategy        models.StrategyType `json:"strategy" binding:"required,strategy"`
	Status          models.TradeStatus  `json:"status" binding:"omitempty,trade_status"`
	EntryDate       models.Date         `json:"entryDate"`
	ExpirationDate  models.Date         `json:"expirationDate"`
	CloseDate       models.Date         `json:"closeDate"`
	StrikePrice     float64             `json:"strikePrice"`
	Premium         float64             `json:"premium"`
	Contracts       float64             `json:"contracts"`
	UnderlyingPrice float64             `json:"underlyingPrice"`
	Fees            float64             `json:"fees"`
	ClosePrice      *float64            `json:"closePrice"`
	PnL             *float64            `json:"pnl"`
	Notes           string              `json:"notes" binding:"max=2000"`
	Tags            []string            `json:"tags" binding:"max=20,dive,max=50"`
	CycleID         string              `json:"cycleId" binding:"max=100"`
}

func (r *TradeRequest) toModel(today models.Date) models.Trade {
	status := r.Status
	if status == "" {
		status = models.StatusOpen
	}
	entry := r.EntryDate
	if !entry.IsSet() {
		entry = today
	}
	return models.Trade{
		Ticker:          r.Ticker,
		Strategy:        r.Strategy,
		Status:          status,
		EntryDate:       entry,
		ExpirationDate:  r.ExpirationDate,
		CloseDate:       r.CloseDate,
		StrikePrice:     r.StrikePrice,
		Premium:         r.Premium,
		Contracts:       r.Contracts,
		UnderlyingPrice: r.UnderlyingPrice,
		Fees:            r.Fees,
		ClosePrice:      r.ClosePrice,
		PnL:             r.PnL,
		Notes:           r.Notes,
		Tags:            r.Tags,
		CycleID:         r.CycleID,
	}
}

// QuickCloseRequest closes an open trade at a price. A missing exit fee
// defaults to 0.65 per contract.
type QuickCloseRequest struct {
	ClosePrice *float64 `json:"close_price" binding:"required,gte=0"`
	ExitFee    *float64 `json:"exit_fee" binding:"omitempty,gte=0"`
}

// TradeListQuery holds the trade list filters.
type TradeListQuery struct {
	Ticker   string `form:"ticker" binding:"max=20"`
	Status   string `form:"status" binding:"omitempty,trade_status"`
	Strategy string `form:"strategy" binding:"omitempty,strategy_filter"`
	CycleID  string `form:"cycle_id"`
}

// TradeAnalytics are the derived figures shown next to a trade.
type TradeAnalytics struct {
	CostOrCollateral *float64 `json:"cost_or_collateral,omitempty"`
	ExitValue        *float64 `json:"exit_value,omitempty"`
	NetPremium       float64  `json:"net_premium"`
	DisplayQuantity  float64  `json:"display_quantity"`
	BreakEven        *float64 `json:"break_even,omitempty"`
	EntryROR         float64  `json:"entry_ror"`
	ROR              float64  `json:"ror"`
	APY              float64  `json:"apy"`
	DTE              *int     `json:"dte,omitempty"`
}

// TradeView is a stored trade with its analytics.
type TradeView struct {
	models.Trade
	Analytics TradeAnalytics `json:"analytics"`
}

// TradeSaveResponse is the result of a create, update or quick close.
type TradeSaveResponse struct {
	Trade   TradeView  `json:"trade"`
	Spawned *TradeView `json:"spawned,omitempty"`
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

func viewOf(t models.Trade, today models.Date) TradeView {
	a := TradeAnalytics{
		CostOrCollateral: optional(pnl.CostOrCollateral(&t)),
		ExitValue:        optional(pnl.ExitValue(&t)),
		NetPremium:       pnl.NetPremium(&t),
		DisplayQuantity:  pnl.DisplayQuantity(&t),
		BreakEven:        optional(pnl.BreakEven(&t)),
		EntryROR:         pnl.EntryROR(&t),
	}
	if !t.Status.IsOpen() {
		a.ROR = pnl.ROR(&t)
		a.APY = pnl.APY(&t)
	}
	if dte, ok := pnl.DTE(&t, today); ok {
		a.DTE = &dte
	}
	return TradeView{Trade: t, Analytics: a}
}

func (h *TradeHandler) today() models.Date {
	return models.DateOf(h.clock())
}

func (h *TradeHandler) saveResponse(res *services.SaveResult) TradeSaveResponse {
	today := h.today()
	out := TradeSaveResponse{Trade: viewOf(*res.Trade, today)}
	if res.Spawned != nil {
		spawned := viewOf(*res.Spawned, today)
		out.Spawned = &spawned
	}
	return out
}

// ListTrades lists trades
// @Summary     List trades
// @Description Trades sorted by entry date, newest first, with per-trade analytics
// @Tags        trades
// @Produce     json
// @Security    BearerAuth
// @Param       ticker    query    string false "Ticker substring"
// @Param       status    query    string false "Trade status"
// @Param       strategy  query    string false "Strategy label, or STOCK for both stock legs"
// @Param       cycle_id  query    string false "Cycle id"
// @Param       page      query    int    false "Page number (default 1)"
// @Param       page_size query    int    false "Items per page (default 50, max 200)"
// @Success     200 {object} pagination.PageResponse[TradeView]
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /trades [get]
func (h *TradeHandler) ListTrades(c *gin.Context) {
	var query TradeListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TradeFilter{
		Ticker:   query.Ticker,
		Status:   models.TradeStatus(query.Status),
		Strategy: query.Strategy,
		CycleID:  query.CycleID,
	}
	result, err := h.tradeService.ListTrades(filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	today := h.today()
	views := make([]TradeView, 0, len(result.Data))
	for _, t := range result.Data {
		views = append(views, viewOf(t, today))
	}
	c.JSON(http.StatusOK, pagination.NewPageResponse(views, result.Page, result.PageSize, result.TotalItems))
}

// GetTrade returns a single trade
// @Summary     Get trade
// @Tags        trades
// @Produce     json
// @Security    BearerAuth
// @Param       id  path     string true "Trade ID"
// @Success     200 {object} TradeView
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Trade not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /trades/{id} [get]
func (h *TradeHandler) GetTrade(c *gin.Context) {
	trade, err := h.tradeService.GetTrade(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(*trade, h.today()))
}

// CreateTrade records a new trade
// @Summary     Create trade
// @Description Saves a trade. A put saved as Assigned also opens the assigned stock position.
// @Tags        trades
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     TradeRequest true "Trade"
// @Success     201 {object} TradeSaveResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /trades [post]
func (h *TradeHandler) CreateTrade(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	res, err := h.tradeService.CreateTrade(req.toModel(h.today()))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.saveResponse(res))
}

// UpdateTrade replaces a stored trade
// @Summary     Update trade
// @Description Saves a trade. Moving a put into Assigned opens the assigned stock position once.
// @Tags        trades
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path     string       true "Trade ID"
// @Param       request body     TradeRequest true "Trade"
// @Success     200 {object} TradeSaveResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Trade not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /trades/{id} [put]
func (h *TradeHandler) UpdateTrade(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	res, err := h.tradeService.UpdateTrade(c.Param("id"), req.toModel(h.today()))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if res == nil {
		respondWithError(c, apperrors.ErrTradeNotFound)
		return
	}
	c.JSON(http.StatusOK, h.saveResponse(res))
}

// DeleteTrade removes a trade
// @Summary     Delete trade
// @Description Deleting an unknown id succeeds without effect.
// @Tags        trades
// @Security    BearerAuth
// @Param       id path string true "Trade ID"
// @Success     204
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /trades/{id} [delete]
func (h *TradeHandler) DeleteTrade(c *gin.Context) {
	if err := h.tradeService.DeleteTrade(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// QuickClose closes a trade at a price
// @Summary     Quick close
// @Description Closes an open put, covered call or LEAPS today at the given price. The exit fee is added to the stored fees. Other trades are rejected with INVALID_INPUT.
// @Tags        trades
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path     string            true "Trade ID"
// @Param       request body     QuickCloseRequest true "Close price and optional exit fee"
// @Success     200 {object} TradeSaveResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Trade not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /trades/{id}/close [post]
func (h *TradeHandler) QuickClose(c *gin.Context) {
	var req QuickCloseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	res, err := h.tradeService.QuickClose(c.Param("id"), *req.ClosePrice, req.ExitFee)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if res == nil {
		respondWithError(c, apperrors.ErrTradeNotFound)
		return
	}
	c.JSON(http.StatusOK, h.saveResponse(res))
}
