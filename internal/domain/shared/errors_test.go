package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("matches sentinel through wrapping", func(t *testing.T) {
		err := fmt.Errorf("add to cart: %w", ErrUnauthorized)
		assert.True(t, errors.Is(err, ErrUnauthorized))
	})

	t.Run("matches re-created error with same code", func(t *testing.T) {
		err := NewDomainError("EMPTY_CART", "nothing to order")
		assert.True(t, errors.Is(err, ErrEmptyCart))
		assert.Equal(t, "nothing to order", err.Error())
	})

	t.Run("does not match different code", func(t *testing.T) {
		assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
	})

	t.Run("errors.As extracts code", func(t *testing.T) {
		var de *DomainError
		err := fmt.Errorf("wrapped: %w", ErrForbidden)
		assert.True(t, errors.As(err, &de))
		assert.Equal(t, "FORBIDDEN", de.Code)
	})
}
