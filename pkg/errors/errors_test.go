package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFoundError("record"), http.StatusNotFound},
		{"validation", NewValidationError("bad"), http.StatusBadRequest},
		{"method", NewMethodNotAllowedError("PATCH"), http.StatusMethodNotAllowed},
		{"database", NewDatabaseError("put", fmt.Errorf("boom")), http.StatusInternalServerError},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("get: %w", NewNotFoundError("record")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("app error keeps its type", func(t *testing.T) {
		err := Wrap(NewNotFoundError("record"), "get")
		assert.True(t, IsNotFound(err))
		assert.Contains(t, err.Error(), "get: record not found")
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		cause := fmt.Errorf("boom")
		err := Wrap(cause, "scan")
		assert.True(t, IsType(err, ErrorTypeInternal))
		assert.ErrorIs(t, err, cause)
	})
}
