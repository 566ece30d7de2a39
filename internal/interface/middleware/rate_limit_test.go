package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(allow AllowFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RealIP())
	r.GET("/ping", RateLimit(nil, 2, time.Minute, KeyByIPAndPath(), allow), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func hit(r http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Real-IP", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_LocalFallback(t *testing.T) {
	r := newLimitedRouter(nil)

	require.Equal(t, http.StatusOK, hit(r, "203.0.113.7").Code)
	require.Equal(t, http.StatusOK, hit(r, "203.0.113.7").Code)

	w := hit(r, "203.0.113.7")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	require.NotEmpty(t, w.Header().Get("Retry-After"))
	require.JSONEq(t, `{"msg":"Too many requests, please try again later."}`, w.Body.String())

	// other callers have their own bucket
	require.Equal(t, http.StatusOK, hit(r, "203.0.113.8").Code)
}

func TestRateLimit_AllowPrivateIPBypasses(t *testing.T) {
	r := newLimitedRouter(AllowPrivateIP())

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, hit(r, "10.0.0.5").Code)
	}
}

func TestRateLimit_DisabledWhenMisconfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RateLimit(nil, 0, time.Minute, KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}
}
