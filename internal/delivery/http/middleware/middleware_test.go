package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.POST("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func do(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitInMemory(t *testing.T) {
	cfg := GlobalRateLimitConfig(2, time.Minute)
	cfg.Client = func() *goredis.Client { return nil }
	r := newEngine(RateLimitMiddleware(cfg))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", nil).Code)
	w := do(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = do(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestMemoryCounterWindow(t *testing.T) {
	m := newMemoryCounter()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	n, reset := m.hit("k", time.Minute, now)
	assert.Equal(t, 1, n)
	assert.Equal(t, now.Add(time.Minute), reset)
	n, _ = m.hit("k", time.Minute, now.Add(30*time.Second))
	assert.Equal(t, 2, n)
	n, _ = m.hit("k", time.Minute, now.Add(61*time.Second))
	assert.Equal(t, 1, n)

	m.hit("other", time.Minute, now.Add(61*time.Second))
	m.hit("k", time.Minute, now.Add(10*time.Minute))
	assert.Len(t, m.entries, 1)
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	w := do(r, http.MethodGet, "/ping", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = do(r, http.MethodGet, "/ping", map[string]string{RequestIDHeader: "bad id\n"})
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestCORS(t *testing.T) {
	r := newEngine(CORSMiddleware("https://portfolio.example.com/", false))

	w := do(r, http.MethodGet, "/ping", map[string]string{"Origin": "https://portfolio.example.com"})
	assert.Equal(t, "https://portfolio.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodOptions, "/ping", map[string]string{"Origin": "https://evil.example.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodOptions, "/ping", map[string]string{"Origin": "http://localhost:5173"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	dev := newEngine(CORSMiddleware("", true))
	w = do(dev, http.MethodOptions, "/ping", map[string]string{"Origin": "http://localhost:5173"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	r := newEngine(SecurityHeadersMiddleware())
	w := do(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperror.Validation("Invalid experience", map[string]string{"title": "Title is required"}))
	})
	r.GET("/internal", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection refused"))
	})

	w := do(r, http.MethodGet, "/app", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Title is required"`)
	assert.Contains(t, w.Body.String(), `"request_id"`)

	w = do(r, http.MethodGet, "/internal", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
