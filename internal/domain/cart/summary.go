package cart

import (
	"github.com/canteen/client/internal/domain/menu"
	"github.com/shopspring/decimal"
)

// PlatformFee is charged once per non-empty order
var PlatformFee = decimal.NewFromInt(2)

// SummaryLine is a cart line joined with its catalog entry
type SummaryLine struct {
	Food      menu.Food
	Quantity  int
	Notes     string
	LineTotal decimal.Decimal
}

// Summary is the checkout view of a cart
type Summary struct {
	Lines       []SummaryLine
	ItemCount   int
	Subtotal    decimal.Decimal
	PlatformFee decimal.Decimal
	GrandTotal  decimal.Decimal
}

// IsEmpty reports whether there is nothing billable
func (s Summary) IsEmpty() bool {
	return s.Subtotal.IsZero()
}

// Summarize joins the cart to catalog in catalog order. Lines for items
// the catalog no longer lists are left out of Lines and the subtotal but
// still count toward ItemCount.
func Summarize(c *Cart, catalog *menu.Catalog) Summary {
	s := Summary{
		ItemCount:   c.TotalItems(),
		Subtotal:    decimal.Zero,
		PlatformFee: decimal.Zero,
	}
	for _, f := range catalog.Items() {
		q := c.Quantity(f.ID)
		if q <= 0 {
			continue
		}
		lt := f.Price.Mul(decimal.NewFromInt(int64(q)))
		s.Lines = append(s.Lines, SummaryLine{
			Food:      f,
			Quantity:  q,
			Notes:     c.Notes(f.ID),
			LineTotal: lt,
		})
		s.Subtotal = s.Subtotal.Add(lt)
	}
	if s.Subtotal.IsPositive() {
		s.PlatformFee = PlatformFee
	}
	s.GrandTotal = s.Subtotal.Add(s.PlatformFee)
	return s
}
