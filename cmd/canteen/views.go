package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/canteen/client/internal/domain/cart"
	"github.com/canteen/client/internal/domain/menu"
	"github.com/canteen/client/internal/domain/order"
	"github.com/canteen/client/internal/domain/recommend"
	"github.com/shopspring/decimal"
)

type foodView struct {
	ID       string          `json:"id" yaml:"id"`
	Name     string          `json:"name" yaml:"name"`
	Category string          `json:"category" yaml:"category"`
	Price    decimal.Decimal `json:"price" yaml:"price"`
	Special  bool            `json:"special,omitempty" yaml:"special,omitempty"`
}

func toFoodViews(foods []menu.Food) []foodView {
	out := make([]foodView, 0, len(foods))
	for _, f := range foods {
		out = append(out, foodView{
			ID:       f.ID,
			Name:     f.Name,
			Category: f.Category,
			Price:    f.EffectivePrice(),
			Special:  f.SpecialToday,
		})
	}
	return out
}

type cartLineView struct {
	ItemID    string          `json:"itemId" yaml:"item_id"`
	Name      string          `json:"name" yaml:"name"`
	Quantity  int             `json:"quantity" yaml:"quantity"`
	Notes     string          `json:"notes,omitempty" yaml:"notes,omitempty"`
	LineTotal decimal.Decimal `json:"lineTotal" yaml:"line_total"`
}

type cartView struct {
	Lines       []cartLineView  `json:"lines" yaml:"lines"`
	ItemCount   int             `json:"itemCount" yaml:"item_count"`
	Subtotal    decimal.Decimal `json:"subtotal" yaml:"subtotal"`
	PlatformFee decimal.Decimal `json:"platformFee" yaml:"platform_fee"`
	GrandTotal  decimal.Decimal `json:"grandTotal" yaml:"grand_total"`
	Currency    string          `json:"currency" yaml:"currency"`
}

func toCartView(s cart.Summary) cartView {
	v := cartView{
		Lines:       make([]cartLineView, 0, len(s.Lines)),
		ItemCount:   s.ItemCount,
		Subtotal:    s.Subtotal,
		PlatformFee: s.PlatformFee,
		GrandTotal:  s.GrandTotal,
		Currency:    currencyCode,
	}
	for _, l := range s.Lines {
		v.Lines = append(v.Lines, cartLineView{
			ItemID:    l.Food.ID,
			Name:      l.Food.Name,
			Quantity:  l.Quantity,
			Notes:     l.Notes,
			LineTotal: l.LineTotal,
		})
	}
	return v
}

type orderItemView struct {
	Name     string `json:"name" yaml:"name"`
	Quantity int    `json:"quantity" yaml:"quantity"`
	Notes    string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type orderView struct {
	ID            string          `json:"id" yaml:"id"`
	Customer      string          `json:"customer,omitempty" yaml:"customer,omitempty"`
	Status        string          `json:"status" yaml:"status"`
	TableNumber   int             `json:"tableNumber" yaml:"table_number"`
	PaymentMethod string          `json:"paymentMethod" yaml:"payment_method"`
	Amount        decimal.Decimal `json:"amount" yaml:"amount"`
	Items         []orderItemView `json:"items" yaml:"items"`
	CreatedAt     *time.Time      `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
}

func toOrderView(o order.Order) orderView {
	v := orderView{
		ID:            o.ID,
		Customer:      o.CustomerName,
		Status:        o.Status.String(),
		TableNumber:   o.TableNumber,
		PaymentMethod: string(o.PaymentMethod),
		Amount:        o.Amount,
		Items:         make([]orderItemView, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		v.Items = append(v.Items, orderItemView{Name: it.Name, Quantity: it.Quantity, Notes: it.Notes})
	}
	if !o.CreatedAt.IsZero() {
		t := o.CreatedAt
		v.CreatedAt = &t
	}
	return v
}

func toOrderViews(orders []order.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderView(o))
	}
	return out
}

type suggestionView struct {
	Name       string          `json:"name" yaml:"name"`
	OrderCount int             `json:"orderCount,omitempty" yaml:"order_count,omitempty"`
	ItemID     string          `json:"itemId,omitempty" yaml:"item_id,omitempty"`
	Price      decimal.Decimal `json:"price,omitempty" yaml:"price,omitempty"`
	Available  bool            `json:"available" yaml:"available"`
}

func toSuggestionViews(items []recommend.Suggestion) []suggestionView {
	out := make([]suggestionView, 0, len(items))
	for _, s := range items {
		v := suggestionView{Name: s.Name, OrderCount: s.OrderCount, Available: s.Available()}
		if s.Food != nil {
			v.ItemID = s.Food.ID
			v.Price = s.Food.EffectivePrice()
		}
		out = append(out, v)
	}
	return out
}

// itemSummary renders order items as "2x Chai, 1x Samosa"
func itemSummary(items []orderItemView) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, strconv.Itoa(it.Quantity)+"x "+it.Name)
	}
	return strings.Join(parts, ", ")
}
