package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "wheeltradr/internal/errors"
	"wheeltradr/internal/services"
)

// SettingsHandler handles the journal settings.
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// TickerPriceRequest sets the current price of a ticker.
type TickerPriceRequest struct {
	Price *float64 `json:"price" binding:"required,gte=0"`
}

// ManualVixRequest records a manually read VIX.
type ManualVixRequest struct {
	Vix *float64 `json:"vix" binding:"required,gte=0"`
}

// GetSettings returns the settings
// @Summary     Get settings
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Settings
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings applies a partial settings update
// @Summary     Update settings
// @Description Account value and income percent re-derive the monthly goal. An explicit goal re-derives the percent.
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     services.SettingsUpdate true "Fields to change"
// @Success     200 {object} models.Settings
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req services.SettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := h.settingsService.Update(req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SetTickerPrice records the current price of a ticker
// @Summary     Set ticker price
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       ticker  path     string             true "Ticker"
// @Param       request body     TickerPriceRequest true "Price"
// @Success     200 {object} models.Settings
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings/prices/{ticker} [put]
func (h *SettingsHandler) SetTickerPrice(c *gin.Context) {
	var req TickerPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := h.settingsService.SetTickerPrice(c.Param("ticker"), *req.Price)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SetManualVix records a manual VIX reading
// @Summary     Set manual VIX
// @Description Clears any fetched VIX so the manual reading takes effect.
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     ManualVixRequest true "VIX"
// @Success     200 {object} models.Settings
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings/vix [put]
func (h *SettingsHandler) SetManualVix(c *gin.Context) {
	var req ManualVixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := h.settingsService.SetManualVix(*req.Vix)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
