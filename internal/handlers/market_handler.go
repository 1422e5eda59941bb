package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wheeltradr/internal/services"
)

// MarketHandler triggers market data refreshes.
type MarketHandler struct {
	marketService services.MarketServicer
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketService services.MarketServicer) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// Refresh fetches quotes for open tickers and the VIX
// @Summary     Refresh market data
// @Description Fetches quotes for the tickers of open trades and the current VIX, and stores them in settings.
// @Tags        market
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.RefreshResult
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Market data unavailable"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /market/refresh [post]
func (h *MarketHandler) Refresh(c *gin.Context) {
	result, err := h.marketService.Refresh(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
