package menu

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func food(id, name string, price int64, category string) Food {
	return Food{ID: id, Name: name, Price: decimal.NewFromInt(price), Category: category}
}

func TestNewFood(t *testing.T) {
	t.Run("valid food", func(t *testing.T) {
		f, err := NewFood("1", "Chai", decimal.NewFromInt(15), "Beverges")
		require.NoError(t, err)
		assert.Equal(t, "Chai", f.Name)
		assert.True(t, f.Price.Equal(decimal.NewFromInt(15)))
	})

	t.Run("rejects empty id", func(t *testing.T) {
		_, err := NewFood(" ", "Chai", decimal.Zero, "")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewFood("1", "", decimal.Zero, "")
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewFood("1", "Chai", decimal.NewFromInt(-1), "")
		assert.Error(t, err)
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		_, err := NewFood("1", "Water", decimal.Zero, "")
		assert.NoError(t, err)
	})
}

func TestCatalog_Find(t *testing.T) {
	c := NewCatalog([]Food{food("1", "Chips", 20, "Snacks"), food("1", "Dup", 99, "X"), food("2", "Chai", 15, "Beverges")})

	assert.Equal(t, 2, c.Len())
	f, ok := c.Find("1")
	require.True(t, ok)
	assert.Equal(t, "Chips", f.Name, "first occurrence wins")

	_, ok = c.Find("missing")
	assert.False(t, ok)

	price, ok := c.PriceOf("2")
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(15)))
}

func TestCatalog_NilIsEmpty(t *testing.T) {
	var c *Catalog
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Items())
	_, ok := c.Find("1")
	assert.False(t, ok)
	_, ok = c.SpecialOfTheDay()
	assert.False(t, ok)
	assert.Empty(t, c.Filter(CategoryAll, ""))
}

func TestCatalog_Filter(t *testing.T) {
	c := NewCatalog([]Food{
		food("1", "Cheese Pizza", 65, "Pizza"),
		food("2", "Coffee", 30, "Beverges"),
		food("3", "Corn Pizza", 75, "Pizza"),
		food("4", "Chai", 15, "Beverges"),
	})

	tests := []struct {
		name     string
		category string
		query    string
		want     []string
	}{
		{"all no query", CategoryAll, "", []string{"1", "2", "3", "4"}},
		{"empty category means all", "", "", []string{"1", "2", "3", "4"}},
		{"by category", "Pizza", "", []string{"1", "3"}},
		{"query by name ignores case", CategoryAll, "cOfF", []string{"2"}},
		{"query matches category", CategoryAll, "bever", []string{"2", "4"}},
		{"category and query", "Pizza", "corn", []string{"3"}},
		{"no match", "Pizza", "chai", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, f := range c.Filter(tt.category, tt.query) {
				got = append(got, f.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalog_Categories(t *testing.T) {
	c := SeedCatalog()
	assert.Equal(t, []string{"Snacks", "Salad", "Beverges", "Sandwich", "Noodles", "Pizza", "Special"}, c.Categories())
}

func TestCatalog_SpecialOfTheDay(t *testing.T) {
	plain := food("1", "Chips", 20, "Snacks")
	special := food("2", "Rajma Chawal", 50, "Special")
	special.SpecialToday = true
	special.OriginalPrice = decimal.NewFromInt(55)
	special.Discount = decimal.NewFromInt(15)

	c := NewCatalog([]Food{plain, special})
	got, ok := c.SpecialOfTheDay()
	require.True(t, ok)
	assert.Equal(t, "2", got.ID)
	// 55 - 8.25 = 46.75 rounds to 47
	assert.True(t, got.EffectivePrice().Equal(decimal.NewFromInt(47)), got.EffectivePrice().String())
}

func TestFood_EffectivePrice(t *testing.T) {
	t.Run("explicit special price wins", func(t *testing.T) {
		f := food("1", "X", 50, "")
		f.SpecialPrice = decimal.NewFromInt(40)
		f.Discount = decimal.NewFromInt(50)
		assert.True(t, f.EffectivePrice().Equal(decimal.NewFromInt(40)))
	})

	t.Run("discount applies to base price without original", func(t *testing.T) {
		f := food("1", "X", 50, "")
		f.Discount = decimal.NewFromInt(10)
		assert.True(t, f.EffectivePrice().Equal(decimal.NewFromInt(45)))
	})

	t.Run("no discount returns original", func(t *testing.T) {
		f := food("1", "X", 50, "")
		f.OriginalPrice = decimal.NewFromInt(60)
		assert.True(t, f.EffectivePrice().Equal(decimal.NewFromInt(60)))
	})
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "perifries", NormalizeName("Peri-Fries!"))
	assert.Equal(t, "colddrinks", NormalizeName("  Cold Drinks "))
	assert.Equal(t, "", NormalizeName("???"))
}

func TestCatalog_MatchByName(t *testing.T) {
	c := SeedCatalog()

	f, ok := c.MatchByName("peri peri FRIES")
	require.True(t, ok)
	assert.Equal(t, "7", f.ID)

	_, ok = c.MatchByName("")
	assert.False(t, ok)

	_, ok = c.MatchByName("sushi")
	assert.False(t, ok)
}
