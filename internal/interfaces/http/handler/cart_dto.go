package handler

import (
	"github.com/canteen/client/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest adds one unit of an item
type AddCartItemRequest struct {
	ItemID string `json:"itemId" binding:"required,max=64"`
	Notes  string `json:"notes" binding:"max=500"`
}

// UpdateNotesRequest replaces an item's notes
type UpdateNotesRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

// CartLineResponse is one priced cart line
type CartLineResponse struct {
	ItemID    string          `json:"itemId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Notes     string          `json:"notes"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartResponse is the checkout view of the cart
type CartResponse struct {
	Lines       []CartLineResponse `json:"lines"`
	ItemCount   int                `json:"itemCount"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	PlatformFee decimal.Decimal    `json:"platformFee"`
	GrandTotal  decimal.Decimal    `json:"grandTotal"`
}

func toCartResponse(s cart.Summary) CartResponse {
	lines := make([]CartLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, CartLineResponse{
			ItemID:    l.Food.ID,
			Name:      l.Food.Name,
			Price:     l.Food.Price,
			Quantity:  l.Quantity,
			Notes:     l.Notes,
			LineTotal: l.LineTotal,
		})
	}
	return CartResponse{
		Lines:       lines,
		ItemCount:   s.ItemCount,
		Subtotal:    s.Subtotal,
		PlatformFee: s.PlatformFee,
		GrandTotal:  s.GrandTotal,
	}
}
