package handler

import (
	"errors"
	"net/http"
	"strconv"

	"jusho-client/internal/apierror"
	"jusho-client/internal/models"

	"github.com/gin-gonic/gin"
)

// ErrorKindKey is the gin context key under which the failure kind is recorded for metrics.
const ErrorKindKey = "jusho.error_kind"

// writeError maps a failure from the service layer onto an HTTP response.
func writeError(c *gin.Context, err error) {
	var amb *models.AmbiguousMatch
	if errors.As(err, &amb) {
		c.Set(ErrorKindKey, "ambiguous")
		c.JSON(http.StatusConflict, gin.H{"detail": amb})
		return
	}

	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		c.Set(ErrorKindKey, "internal")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Set(ErrorKindKey, apiErr.Kind.String())

	status := http.StatusBadGateway
	switch apiErr.Kind {
	case apierror.KindNotFound:
		status = http.StatusNotFound
	case apierror.KindValidation:
		status = http.StatusUnprocessableEntity
	case apierror.KindRateLimit:
		status = http.StatusTooManyRequests
		if apiErr.RetryAfter != nil {
			c.Header("Retry-After", strconv.Itoa(*apiErr.RetryAfter))
		}
	case apierror.KindTimeout:
		status = http.StatusGatewayTimeout
	case apierror.KindHTTP:
		if apiErr.StatusCode >= 400 {
			status = apiErr.StatusCode
		}
	}

	c.JSON(status, gin.H{"error": apiErr.Message})
}
