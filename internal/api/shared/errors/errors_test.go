package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err  *APIError
		want int
	}{
		{NewBadRequestError("bad"), http.StatusBadRequest},
		{NewInvalidArgumentError("missing"), http.StatusBadRequest},
		{NewValidationError("invalid"), http.StatusUnprocessableEntity},
		{NewNotFoundError("missing"), http.StatusNotFound},
		{NewUnauthorizedError("who"), http.StatusUnauthorized},
		{NewForbiddenError("no"), http.StatusForbidden},
		{NewServiceError("upstream"), http.StatusBadGateway},
		{NewDatabaseError("db"), http.StatusInternalServerError},
		{NewInternalError("oops"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestAsAPIError(t *testing.T) {
	notFound := NewNotFoundError("User not found")
	assert.Same(t, notFound, AsAPIError(fmt.Errorf("lookup: %w", notFound)))

	generic := AsAPIError(fmt.Errorf("connection refused"))
	assert.Equal(t, ErrCodeInternalError, generic.Code)
	assert.NotContains(t, generic.Message, "connection refused")
}

func TestAPIError_Error(t *testing.T) {
	err := NewValidationError("name is required", "symbol is required")

	assert.JSONEq(t, `{"code":"validation_failed","message":"Validation failed","details":"name is required, symbol is required"}`, err.Error())
}
