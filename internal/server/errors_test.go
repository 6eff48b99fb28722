package server

import (
	"net/http"
	"testing"

	"github.com/nutrivoice/nutrivoice/internal/llm"
)

func TestStatusForCategory(t *testing.T) {
	tests := []struct {
		cat  llm.ErrorCategory
		want int
	}{
		{llm.CategoryTimedOut, http.StatusGatewayTimeout},
		{llm.CategoryNetworkUnreachable, http.StatusBadGateway},
		{llm.CategoryServiceOverloaded, http.StatusServiceUnavailable},
		{llm.CategoryConfigurationError, http.StatusInternalServerError},
		{llm.CategoryNoFoodDetected, http.StatusUnprocessableEntity},
		{llm.CategoryMalformedOutput, http.StatusUnprocessableEntity},
		{llm.CategoryUnclassified, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		if got := statusForCategory(tt.cat); got != tt.want {
			t.Errorf("statusForCategory(%s) = %d, want %d", tt.cat, got, tt.want)
		}
	}
}
