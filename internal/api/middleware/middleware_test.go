package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quejas/backend/internal/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPingRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSecurityHeaders(t *testing.T) {
	r := newPingRouter(middleware.SecurityHeaders())
	w := get(r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

// TestGlobalRateLimitDenialEnvelope verifies the middleware 429 carries the
// same envelope fields as the handler-layer denial: retry_after hint,
// timestamp and responseTime.
func TestGlobalRateLimitDenialEnvelope(t *testing.T) {
	r := newPingRouter(middleware.GlobalRateLimit(1, 1))

	first := get(r)
	assert.Equal(t, http.StatusOK, first.Code)

	second := get(r)
	require.Equal(t, http.StatusTooManyRequests, second.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Demasiadas solicitudes. Intente de nuevo más tarde.", body["message"])
	assert.GreaterOrEqual(t, body["retry_after"], float64(1), "denial carries a retry-after hint")
	assert.NotEmpty(t, body["timestamp"])
	assert.Contains(t, body, "responseTime")
}
