package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAs(t *testing.T) {
	cause := errors.New("store down")

	t.Run("wrapped app error", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", BadGateway("content unavailable", cause))
		got := As(err)
		assert.Equal(t, http.StatusBadGateway, got.Code)
		assert.Equal(t, "content unavailable", got.Message)
		assert.ErrorIs(t, got, cause)
	})

	t.Run("plain error", func(t *testing.T) {
		got := As(cause)
		assert.Equal(t, http.StatusInternalServerError, got.Code)
		assert.Equal(t, "Internal Server Error", got.Error())
	})

	t.Run("validation details", func(t *testing.T) {
		got := As(Validation("invalid experience", map[string]string{"title": "Title is required"}))
		assert.Equal(t, http.StatusBadRequest, got.Code)
		assert.Equal(t, "Title is required", got.Details["title"])
	})
}
