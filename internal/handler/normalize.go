package handler

import (
	"context"
	"net/http"

	"jusho-client/internal/models"

	"github.com/gin-gonic/gin"
)

// NormalizeHandler handles normalization, validation and suggestion requests
type NormalizeHandler struct {
	service NormalizeService
}

// Service interface for dependency injection
type NormalizeService interface {
	Normalize(context.Context, string) (models.NormalizationResult, error)
	NormalizeBatch(context.Context, []string) (models.BatchSummary, error)
	Validate(context.Context, string) (models.ValidationResult, error)
	Suggest(context.Context, string) (models.SuggestResult, error)
}

// NewNormalizeHandler creates a new normalize handler
func NewNormalizeHandler(svc NormalizeService) *NormalizeHandler {
	return &NormalizeHandler{service: svc}
}

// Normalize handles POST /normalize requests
//
//	@Summary	Normalize a single address
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.NormalizeRequest	true	"address to normalize"
//	@Success	200		{object}	models.NormalizationResult
//	@Failure	409		{object}	models.AmbiguousMatch
//	@Router		/normalize [post]
func (h *NormalizeHandler) Normalize(c *gin.Context) {
	var req models.NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required field 'address'"})
		return
	}

	result, err := h.service.Normalize(c.Request.Context(), req.Address)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// NormalizeBatch handles POST /normalize/batch requests
//
//	@Summary	Normalize up to 100 addresses
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.BatchRequest	true	"addresses to normalize"
//	@Success	200		{object}	models.BatchSummary
//	@Router		/normalize/batch [post]
func (h *NormalizeHandler) NormalizeBatch(c *gin.Context) {
	var req models.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required field 'addresses'"})
		return
	}

	summary, err := h.service.NormalizeBatch(c.Request.Context(), req.Addresses)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Validate handles GET /validate requests
//
//	@Summary	Validate an address
//	@Produce	json
//	@Param		address	query		string	true	"address to validate"
//	@Success	200		{object}	models.ValidationResult
//	@Router		/validate [get]
func (h *NormalizeHandler) Validate(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'address'"})
		return
	}

	result, err := h.service.Validate(c.Request.Context(), address)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Suggest handles GET /suggest requests
//
//	@Summary	Suggest addresses for a partial input
//	@Produce	json
//	@Param		q	query		string	true	"partial address"
//	@Success	200	{object}	models.SuggestResult
//	@Router		/suggest [get]
func (h *NormalizeHandler) Suggest(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	result, err := h.service.Suggest(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
