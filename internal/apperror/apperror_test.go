package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NewUnauthorized("no identity"), http.StatusUnauthorized},
		{NewNotFoundOrUnauthorized("Product not found or unauthorized"), http.StatusNotFound},
		{NewNotFound("Category not found"), http.StatusNotFound},
		{NewDuplicateName("Category name already exists", nil), http.StatusBadRequest},
		{NewValidation("rating must be between 1 and 5"), http.StatusBadRequest},
		{NewConflict("email already registered", nil), http.StatusConflict},
		{NewUpstream("database unavailable", errors.New("timeout")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Message, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestFromErrorUnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("update product: %w", NewNotFoundOrUnauthorized("Product not found or unauthorized"))

	appErr := FromError(wrapped)
	assert.Equal(t, NotFoundOrUnauthorizedError, appErr.Type)
	assert.True(t, IsNotFoundOrUnauthorized(wrapped))
	assert.False(t, IsNotFound(wrapped))
}

func TestFromErrorDefaultsToUpstream(t *testing.T) {
	cause := errors.New("connection reset")

	appErr := FromError(cause)
	assert.Equal(t, UpstreamError, appErr.Type)
	assert.ErrorIs(t, appErr, cause)
	assert.Equal(t, ErrorResponse{Error: "internal server error"}, appErr.ToResponse())
	assert.Nil(t, FromError(nil))
}
