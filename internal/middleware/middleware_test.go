package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/whoami", func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		c.String(http.StatusOK, userID)
	})
	return r
}

func serve(r http.Handler, header string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_AcceptsSignedToken(t *testing.T) {
	r := newTestRouter(AuthMiddleware(testSecret))
	token, err := SignToken(testSecret, "cashier-7", time.Hour)
	require.NoError(t, err)

	w := serve(r, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cashier-7", w.Body.String())
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	r := newTestRouter(AuthMiddleware(testSecret))

	expired, err := SignToken(testSecret, "cashier-7", -time.Minute)
	require.NoError(t, err)
	otherSecret, err := SignToken("another-secret", "cashier-7", time.Hour)
	require.NoError(t, err)
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "cashier-7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"missing header":    "",
		"not bearer":        "Basic abc",
		"expired":           "Bearer " + expired,
		"wrong secret":      "Bearer " + otherSecret,
		"subject missing":   "Bearer " + noSubject,
		"unexpected method": "Bearer " + hs512,
		"garbage":           "Bearer not-a-jwt",
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, serve(r, header).Code)
		})
	}
}

func TestStructuredLoggingMiddleware_RequestScopedLogger(t *testing.T) {
	base := slog.New(slog.NewTextHandler(httptest.NewRecorder(), nil))
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(base))

	var got *slog.Logger
	r.GET("/ping", func(c *gin.Context) {
		got = GetLoggerFromCtx(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	require.NotNil(t, got)
	assert.NotSame(t, base, got)

	req, _ = http.NewRequest(http.MethodGet, "/ping", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, slog.Default(), GetLoggerFromCtx(req.Context()))
}

func TestRateLimit(t *testing.T) {
	limiter, err := NewRateLimiter("2-M")
	require.NoError(t, err)
	r := newTestRouter(RateLimit(limiter))

	assert.Equal(t, http.StatusOK, serve(r, "").Code)
	assert.Equal(t, http.StatusOK, serve(r, "").Code)
	w := serve(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	_, err = NewRateLimiter("lots")
	assert.Error(t, err)
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	r := newTestRouter(m.Middleware())
	r.GET("/metrics", m.Handler())

	serve(r, "")
	serve(r, "")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/whoami", http.MethodGet, "200")))

	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ledger_http_requests_total")
}
