package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/address-parser/app/responses"
	"github.com/address-parser/internal/search"
)

// SuggestController serves the city/state typeahead endpoint. It never
// feeds the core match strategies.
type SuggestController struct {
	index  *search.SuggestionIndex
	logger *zap.Logger
}

// NewSuggestController wires a controller against a suggestion index.
func NewSuggestController(index *search.SuggestionIndex, logger *zap.Logger) *SuggestController {
	return &SuggestController{index: index, logger: logger}
}

// Suggest handles GET /v1/suggest?q=&limit=.
func (sc *SuggestController) Suggest(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "MISSING_QUERY", Message: "q is required"})
		return
	}

	limit := int64(10)
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	docs, err := sc.index.Suggest(q, limit)
	if err != nil {
		sc.logger.Error("suggest query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{Error: "SUGGEST_FAILED", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, responses.SuggestResponse{Suggestions: docs})
}
