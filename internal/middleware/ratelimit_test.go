package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewClientLimiter_Disabled(t *testing.T) {
	assert.Nil(t, NewClientLimiter(0, 10, time.Minute))
	assert.Nil(t, NewClientLimiter(5, 0, time.Minute))

	var l *ClientLimiter
	ok, wait := l.Reserve("10.0.0.1", time.Now())
	assert.True(t, ok)
	assert.Zero(t, wait)
}

func TestClientLimiter_Reserve(t *testing.T) {
	l := NewClientLimiter(0.5, 2, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	ok, _ := l.Reserve("10.0.0.1", now)
	assert.True(t, ok)
	ok, _ = l.Reserve("10.0.0.1", now)
	assert.True(t, ok)

	ok, wait := l.Reserve("10.0.0.1", now)
	assert.False(t, ok)
	assert.Equal(t, 2, wait)

	ok, _ = l.Reserve("10.0.0.2", now)
	assert.True(t, ok, "keys are limited independently")

	ok, _ = l.Reserve("10.0.0.1", now.Add(2*time.Second))
	assert.True(t, ok, "bucket refills over time")

	ok, _ = l.Reserve("  ", now)
	assert.True(t, ok)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimit(NewClientLimiter(0.1, 1, time.Minute)))
	r.GET("/suggest", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/suggest", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, serve().Code)

	w := serve()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "10", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, w.Body.String())
}
