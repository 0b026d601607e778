package menu

import (
	"strings"

	"github.com/canteen/client/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CategoryAll selects every category in a catalog filter
const CategoryAll = "All"

var hundred = decimal.NewFromInt(100)

// Food is one purchasable catalog entry. It is reference data owned by the
// backend; the client never mutates it.
type Food struct {
	ID           string
	Name         string
	Description  string
	Price        decimal.Decimal
	Category     string
	ImageRef     string
	SpecialToday bool
	// Discount is a percentage (0-100) applied to OriginalPrice for specials
	Discount      decimal.Decimal
	OriginalPrice decimal.Decimal
	SpecialPrice  decimal.Decimal
}

// NewFood creates a validated food entry
func NewFood(id, name string, price decimal.Decimal, category string) (*Food, error) {
	if strings.TrimSpace(id) == "" {
		return nil, shared.NewDomainError("INVALID_FOOD_ID", "Food ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_FOOD_NAME", "Food name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return &Food{
		ID:       id,
		Name:     name,
		Price:    price,
		Category: category,
	}, nil
}

// Validate checks the invariants NewFood enforces, for entries decoded
// straight from the wire.
func (f Food) Validate() error {
	_, err := NewFood(f.ID, f.Name, f.Price, f.Category)
	return err
}

// EffectivePrice returns the price shown for a special: SpecialPrice when
// set, otherwise OriginalPrice less Discount percent rounded to a whole
// amount, otherwise the base price.
func (f Food) EffectivePrice() decimal.Decimal {
	if f.SpecialPrice.IsPositive() {
		return f.SpecialPrice
	}
	original := f.OriginalPrice
	if !original.IsPositive() {
		original = f.Price
	}
	if f.Discount.IsPositive() {
		off := original.Mul(f.Discount).Div(hundred)
		return original.Sub(off).Round(0)
	}
	return original
}

// MatchesQuery reports whether name or category contains query, ignoring case
func (f Food) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(f.Name), q) ||
		strings.Contains(strings.ToLower(f.Category), q)
}

// NormalizeName lowercases name and keeps only ASCII letters and digits.
// Recommendation services return free-form names; this is the join key.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
