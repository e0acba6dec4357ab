package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"jusho-client/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Handler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := gin.New()
	r.Use(m.Handler())
	r.GET("/postal/:code", func(c *gin.Context) {
		if c.Param("code") == "9999999" {
			c.Set(handler.ErrorKindKey, "not_found")
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/postal/1500002", "/postal/1000001", "/postal/9999999", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/postal/:code", "200", "none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/postal/:code", "404", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "404", "none")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}
