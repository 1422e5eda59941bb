package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "wheeltradr/internal/errors"
	"wheeltradr/internal/middleware"
	"wheeltradr/internal/services"
)

// AuthHandler exchanges the journal passphrase for a bearer token
type AuthHandler struct {
	authService services.AuthServicer
	jwtSecret   string
	tokenTTL    time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthServicer, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// TokenRequest represents the token request payload
type TokenRequest struct {
	Passphrase string `json:"passphrase" binding:"required,max=256"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Token handles passphrase login
// @Summary     Issue token
// @Description Exchange the journal passphrase for a bearer token. Only available when a passphrase is configured.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body     TokenRequest true "Passphrase"
// @Success     200 {object} TokenResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid passphrase"
// @Failure     404 {object} ErrorResponse "Authentication is disabled"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.authService.VerifyPassphrase(req.Passphrase); err != nil {
		respondWithError(c, err)
		return
	}

	token, expiresAt, err := middleware.GenerateAccessToken(h.jwtSecret, h.tokenTTL)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt})
}
