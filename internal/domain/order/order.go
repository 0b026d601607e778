package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer settles at the counter
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

// IsValid checks if the method is supported
func (m PaymentMethod) IsValid() bool {
	return m == PaymentCash || m == PaymentOnline
}

// Item is one ordered food
type Item struct {
	FoodID   string
	Name     string
	Quantity int
	Price    decimal.Decimal
	Notes    string
}

// Order is a placed order as reported by the backend
type Order struct {
	ID            string
	UserID        string
	CustomerName  string
	Items         []Item
	Amount        decimal.Decimal
	TableNumber   int
	PaymentMethod PaymentMethod
	Paid          bool
	Status        Status
	CreatedAt     time.Time
}

// ItemCount sums item quantities
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// ComputedAmount sums price × quantity over items, for backends that omit
// the amount field
func (o Order) ComputedAmount() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
