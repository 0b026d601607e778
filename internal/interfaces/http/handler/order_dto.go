package handler

import (
	"time"

	"github.com/canteen/client/internal/domain/order"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest is the checkout form
type PlaceOrderRequest struct {
	TableNumber   int    `json:"tableNumber" binding:"required,gt=0"`
	PaymentMethod string `json:"paymentMethod" binding:"omitempty,oneof=cash online"`
}

// AdvanceResponse reports a board status change
type AdvanceResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// KitchenStatusRequest sets an order status from the kitchen display
type KitchenStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse is one ordered food
type OrderItemResponse struct {
	FoodID   string          `json:"foodId"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Notes    string          `json:"notes,omitempty"`
}

// OrderResponse is a placed order
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerName  string              `json:"customerName,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	Amount        decimal.Decimal     `json:"amount"`
	TableNumber   int                 `json:"tableNumber"`
	PaymentMethod string              `json:"paymentMethod"`
	Paid          bool                `json:"paid"`
	Status        string              `json:"status"`
	Stage         int                 `json:"stage"`
	NextAction    string              `json:"nextAction,omitempty"`
	CreatedAt     *time.Time          `json:"createdAt,omitempty"`
}

// PlaceOrderResponse is the order confirmation
type PlaceOrderResponse struct {
	Order         OrderResponse   `json:"order"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	Complementary bool            `json:"complementary"`
}

// BoardResponse is one tab of the admin board
type BoardResponse struct {
	Filter string          `json:"filter"`
	Counts map[string]int  `json:"counts"`
	Orders []OrderResponse `json:"orders"`
}

func toOrderResponse(o order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			FoodID:   it.FoodID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Notes:    it.Notes,
		})
	}
	resp := OrderResponse{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		Items:         items,
		Amount:        o.Amount,
		TableNumber:   o.TableNumber,
		PaymentMethod: string(o.PaymentMethod),
		Paid:          o.Paid,
		Status:        o.Status.String(),
		Stage:         o.Status.Stage(),
		NextAction:    o.Status.NextAction(),
	}
	if !o.CreatedAt.IsZero() {
		t := o.CreatedAt
		resp.CreatedAt = &t
	}
	return resp
}

func toOrderResponses(orders []order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}
