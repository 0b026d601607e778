package order

import (
	"github.com/canteen/client/internal/domain/cart"
	"github.com/canteen/client/internal/domain/shared"
	"github.com/google/uuid"
)

// ComplementaryEvery is the loyalty cycle: every Nth order earns a free item
const ComplementaryEvery = 6

// IsComplementary reports whether the next order, after previousOrders
// orders, is a free-item order
func IsComplementary(previousOrders int) bool {
	return previousOrders%ComplementaryEvery == ComplementaryEvery-1
}

// PlacementItem is one line of an order request
type PlacementItem struct {
	FoodID   string
	Quantity int
	Notes    string
}

// Placement is a validated order request built from a cart
type Placement struct {
	IdempotencyKey string
	Items          []PlacementItem
	TableNumber    int
	PaymentMethod  PaymentMethod
	Complementary  bool
}

// NewPlacement validates checkout input against a cart summary. An empty
// payment method defaults to cash.
func NewPlacement(summary cart.Summary, tableNumber int, method PaymentMethod, previousOrders int) (*Placement, error) {
	if tableNumber <= 0 {
		return nil, shared.NewDomainError("INVALID_TABLE", "Please enter a table number")
	}
	if method == "" {
		method = PaymentCash
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be cash or online")
	}
	if summary.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}

	p := &Placement{
		IdempotencyKey: uuid.NewString(),
		TableNumber:    tableNumber,
		PaymentMethod:  method,
		Complementary:  IsComplementary(previousOrders),
	}
	for _, l := range summary.Lines {
		if l.Quantity <= 0 {
			continue
		}
		p.Items = append(p.Items, PlacementItem{
			FoodID:   l.Food.ID,
			Quantity: l.Quantity,
			Notes:    l.Notes,
		})
	}
	return p, nil
}
