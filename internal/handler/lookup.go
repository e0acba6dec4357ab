package handler

import (
	"context"
	"net/http"

	"jusho-client/internal/models"

	"github.com/gin-gonic/gin"
)

// LookupHandler handles postal code and reverse lookup requests
type LookupHandler struct {
	service LookupService
}

// Service interface for dependency injection
type LookupService interface {
	Postal(context.Context, string) (models.PostalResult, error)
	Reverse(context.Context, string) (models.ReverseResult, error)
}

// NewLookupHandler creates a new lookup handler
func NewLookupHandler(svc LookupService) *LookupHandler {
	return &LookupHandler{service: svc}
}

// Postal handles GET /postal/:code requests
//
//	@Summary	Look up an address by postal code
//	@Produce	json
//	@Param		code	path		string	true	"postal code, hyphen optional"
//	@Success	200		{object}	models.PostalResult
//	@Failure	404		{object}	map[string]string
//	@Router		/postal/{code} [get]
func (h *LookupHandler) Postal(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required path parameter 'code'"})
		return
	}

	result, err := h.service.Postal(c.Request.Context(), code)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Reverse handles GET /reverse requests
//
//	@Summary	Resolve the postal code of an address
//	@Produce	json
//	@Param		address	query		string	true	"address"
//	@Success	200		{object}	models.ReverseResult
//	@Failure	404		{object}	map[string]string
//	@Router		/reverse [get]
func (h *LookupHandler) Reverse(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'address'"})
		return
	}

	result, err := h.service.Reverse(c.Request.Context(), address)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
