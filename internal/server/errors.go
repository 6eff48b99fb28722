package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrivoice/nutrivoice/internal/common"
	"github.com/nutrivoice/nutrivoice/internal/llm"
	"github.com/nutrivoice/nutrivoice/internal/pipeline"
)

// statusForCategory maps the pipeline error taxonomy onto HTTP. Content
// problems (no food, malformed, unclassified) are the caller's 422; the rest
// describe upstream or local conditions.
func statusForCategory(cat llm.ErrorCategory) int {
	switch cat {
	case llm.CategoryTimedOut:
		return http.StatusGatewayTimeout
	case llm.CategoryNetworkUnreachable:
		return http.StatusBadGateway
	case llm.CategoryServiceOverloaded:
		return http.StatusServiceUnavailable
	case llm.CategoryConfigurationError:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

// writeError translates any error from the lower layers into a JSON body
// with a stable category and a user-facing message.
func writeError(c *gin.Context, err error) {
	var perr *pipeline.Error
	if errors.As(err, &perr) {
		c.JSON(statusForCategory(perr.Category), gin.H{
			"category": string(perr.Category),
			"message":  perr.Category.Message(),
		})
		return
	}

	switch {
	case errors.Is(err, common.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
