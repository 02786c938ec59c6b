package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WithMessageDoesNotMutateSentinel(t *testing.T) {
	custom := ErrValidationFailed.WithMessage("Missing/invalid: email")

	assert.Equal(t, "Missing/invalid: email", custom.Message)
	assert.Equal(t, "Missing/invalid fields", ErrValidationFailed.Message)
	assert.Equal(t, http.StatusBadRequest, custom.StatusCode)
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("estimate: %w", ErrRouteNotFound.WithDetails(map[string]interface{}{"tier": 8}))

	assert.True(t, stderrors.Is(wrapped, ErrRouteNotFound))
	assert.False(t, stderrors.Is(wrapped, ErrPricingNotFound))
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "ROUTE_NOT_FOUND: No matching route found.", ErrRouteNotFound.Error())
}
