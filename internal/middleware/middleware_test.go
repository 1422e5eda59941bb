package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "wheeltradr/internal/errors"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogging(), ErrorHandler())
	r.GET("/", handlers...)
	return r
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body %q: %v", w.Body.String(), err)
	}
	return body.Error.Code
}

func TestAuthMiddleware(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	t.Run("disabled_lets_requests_through", func(t *testing.T) {
		r := newEngine(AuthMiddleware(testSecret, false), ok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", w.Code)
		}
	})

	t.Run("missing_header", func(t *testing.T) {
		r := newEngine(AuthMiddleware(testSecret, true), ok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if code := errorCode(t, w); code != "UNAUTHORIZED" {
			t.Errorf("expected UNAUTHORIZED, got %s", code)
		}
	})

	t.Run("valid_token", func(t *testing.T) {
		token, expiresAt, err := GenerateAccessToken(testSecret, time.Hour)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if time.Until(expiresAt) <= 0 {
			t.Error("expected future expiry")
		}

		r := newEngine(AuthMiddleware(testSecret, true), ok)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", w.Code)
		}
	})

	t.Run("wrong_secret", func(t *testing.T) {
		token, _, _ := GenerateAccessToken("other-secret", time.Hour)
		r := newEngine(AuthMiddleware(testSecret, true), ok)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("expired_token", func(t *testing.T) {
		token, _, _ := GenerateAccessToken(testSecret, -time.Minute)
		if _, err := ValidateAccessToken(testSecret, token); err == nil {
			t.Error("expected expired token to be rejected")
		}
	})
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"app_error", apperrors.ErrTradeNotFound, http.StatusNotFound, "TRADE_NOT_FOUND"},
		{"wrapped_app_error", apperrors.Wrap(apperrors.ErrInternalServer, errors.New("disk full")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"plain_error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(func(c *gin.Context) { _ = c.Error(tt.err) })
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			if w.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, w.Code)
			}
			if code := errorCode(t, w); code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, code)
			}
		})
	}

	t.Run("bind_error", func(t *testing.T) {
		r := newEngine(func(c *gin.Context) { _ = c.Error(errors.New("bad field")).SetType(gin.ErrorTypeBind) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestRequestLoggingSetsRequestID(t *testing.T) {
	var seen string
	r := newEngine(func(c *gin.Context) {
		seen = RequestID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || w.Header().Get("X-Request-ID") != seen {
		t.Errorf("expected request id header to match context, got %q vs %q", w.Header().Get("X-Request-ID"), seen)
	}

	incoming := "0190a3c4-1234-7abc-8def-0123456789ab"
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", incoming)
	r.ServeHTTP(w, req)
	if seen != incoming {
		t.Errorf("expected incoming id to be reused, got %q", seen)
	}
}
