package order

import (
	"errors"
	"testing"

	"github.com/canteen/client/internal/domain/cart"
	"github.com/canteen/client/internal/domain/menu"
	"github.com/canteen/client/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryOf(t *testing.T, adds ...string) cart.Summary {
	t.Helper()
	catalog := menu.NewCatalog([]menu.Food{
		{ID: "1", Name: "Chips", Price: decimal.NewFromInt(20)},
		{ID: "2", Name: "Samosa", Price: decimal.NewFromInt(15)},
	})
	c := cart.New()
	for _, id := range adds {
		c.Add(id, "")
	}
	c.UpdateNotes("2", "spicy")
	return cart.Summarize(c, catalog)
}

func TestIsComplementary(t *testing.T) {
	assert.False(t, IsComplementary(0))
	assert.False(t, IsComplementary(4))
	assert.True(t, IsComplementary(5))
	assert.False(t, IsComplementary(6))
	assert.True(t, IsComplementary(11))
}

func TestNewPlacement(t *testing.T) {
	t.Run("builds items in catalog order", func(t *testing.T) {
		p, err := NewPlacement(summaryOf(t, "2", "1", "1"), 7, "", 0)
		require.NoError(t, err)
		assert.Equal(t, PaymentCash, p.PaymentMethod)
		assert.Equal(t, 7, p.TableNumber)
		assert.NotEmpty(t, p.IdempotencyKey)
		assert.False(t, p.Complementary)
		assert.Equal(t, []PlacementItem{
			{FoodID: "1", Quantity: 2},
			{FoodID: "2", Quantity: 1, Notes: "spicy"},
		}, p.Items)
	})

	t.Run("sixth order is complementary", func(t *testing.T) {
		p, err := NewPlacement(summaryOf(t, "1"), 1, PaymentOnline, 5)
		require.NoError(t, err)
		assert.True(t, p.Complementary)
	})

	t.Run("requires table number", func(t *testing.T) {
		_, err := NewPlacement(summaryOf(t, "1"), 0, PaymentCash, 0)
		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "INVALID_TABLE", de.Code)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		_, err := NewPlacement(summaryOf(t, "1"), 3, "card", 0)
		assert.Error(t, err)
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		_, err := NewPlacement(summaryOf(t), 3, PaymentCash, 0)
		assert.ErrorIs(t, err, shared.ErrEmptyCart)
	})
}
