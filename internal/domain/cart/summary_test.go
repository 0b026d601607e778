package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	t.Run("lines follow catalog order with fee", func(t *testing.T) {
		c := New()
		c.Add("8", "less sugar")
		c.Add("1", "")
		c.Add("1", "")
		c.Add("gone", "")

		s := Summarize(c, testCatalog())
		require.Len(t, s.Lines, 2)
		assert.Equal(t, "1", s.Lines[0].Food.ID)
		assert.Equal(t, "8", s.Lines[1].Food.ID)
		assert.Equal(t, "less sugar", s.Lines[1].Notes)
		assert.True(t, s.Lines[0].LineTotal.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, 4, s.ItemCount)
		assert.True(t, s.Subtotal.Equal(decimal.RequireFromString("52.5")))
		assert.True(t, s.PlatformFee.Equal(PlatformFee))
		assert.True(t, s.GrandTotal.Equal(decimal.RequireFromString("54.5")))
		assert.False(t, s.IsEmpty())
	})

	t.Run("empty cart has no fee", func(t *testing.T) {
		s := Summarize(New(), testCatalog())
		assert.True(t, s.IsEmpty())
		assert.True(t, s.PlatformFee.IsZero())
		assert.True(t, s.GrandTotal.IsZero())
	})
}
