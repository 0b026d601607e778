package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/canteen/client/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderGateway is the backend's order API
type OrderGateway struct {
	c *Client
}

// NewOrderGateway creates an order gateway on the backend client
func NewOrderGateway(c *Client) *OrderGateway {
	return &OrderGateway{c: c}
}

// foodRef is a food id given either as a string or as a populated document
type foodRef struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

func (r *foodRef) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		var doc struct {
			ID    string          `json:"_id"`
			Name  string          `json:"name"`
			Price decimal.Decimal `json:"price"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		r.ID, r.Name, r.Price = doc.ID, doc.Name, doc.Price
		return nil
	}
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &r.ID)
}

// flexTime accepts RFC 3339 strings and unix milliseconds
type flexTime time.Time

func (t *flexTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*t = flexTime(time.UnixMilli(ms))
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	*t = flexTime(parsed)
	return nil
}

type orderItemDTO struct {
	FoodID   foodRef         `json:"foodId"`
	Food     *foodRef        `json:"food"`
	Name     string          `json:"name"`
	ItemName string          `json:"itemName"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Notes    string          `json:"notes"`
}

type addressDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type orderDTO struct {
	ID            string          `json:"_id"`
	UserID        string          `json:"userId"`
	Items         []orderItemDTO  `json:"items"`
	Amount        decimal.Decimal `json:"amount"`
	TableNumber   int             `json:"tableNumber"`
	PaymentMethod string          `json:"paymentMethod"`
	Payment       bool            `json:"payment"`
	Status        string          `json:"status"`
	CreatedAt     flexTime        `json:"createdAt"`
	Date          flexTime        `json:"date"`
	Address       *addressDTO     `json:"address"`
	UserName      string          `json:"userName"`
}

func (d orderDTO) toDomain() order.Order {
	o := order.Order{
		ID:            d.ID,
		UserID:        d.UserID,
		Amount:        d.Amount,
		TableNumber:   d.TableNumber,
		PaymentMethod: order.PaymentMethod(strings.ToLower(d.PaymentMethod)),
		Paid:          d.Payment,
		Status:        order.ParseStatus(d.Status),
		CreatedAt:     time.Time(d.CreatedAt),
		CustomerName:  d.UserName,
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Time(d.Date)
	}
	if d.Address != nil && o.CustomerName == "" {
		o.CustomerName = strings.TrimSpace(d.Address.FirstName + " " + d.Address.LastName)
	}
	for _, it := range d.Items {
		item := order.Item{
			FoodID:   it.FoodID.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Notes:    it.Notes,
		}
		if item.Name == "" {
			item.Name = it.ItemName
		}
		if item.Name == "" {
			item.Name = it.FoodID.Name
		}
		if it.Food != nil {
			if item.FoodID == "" {
				item.FoodID = it.Food.ID
			}
			if item.Name == "" {
				item.Name = it.Food.Name
			}
			if item.Price.IsZero() {
				item.Price = it.Food.Price
			}
		}
		if item.Price.IsZero() {
			item.Price = it.FoodID.Price
		}
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		o.Items = append(o.Items, item)
	}
	if o.Amount.IsZero() {
		o.Amount = o.ComputedAmount()
	}
	return o
}

func toOrders(dtos []orderDTO) []order.Order {
	out := make([]order.Order, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out
}

type placeItemDTO struct {
	FoodID   string `json:"foodId"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

type placeRequest struct {
	Items         []placeItemDTO `json:"items"`
	TableNumber   int            `json:"tableNumber"`
	PaymentMethod string         `json:"paymentMethod"`
}

// Place creates an order from a validated placement
func (g *OrderGateway) Place(ctx context.Context, token string, p *order.Placement) (*order.Order, error) {
	body := placeRequest{
		TableNumber:   p.TableNumber,
		PaymentMethod: string(p.PaymentMethod),
	}
	for _, it := range p.Items {
		body.Items = append(body.Items, placeItemDTO{FoodID: it.FoodID, Quantity: it.Quantity, Notes: it.Notes})
	}
	headers := bearer(token)
	headers["Idempotency-Key"] = p.IdempotencyKey

	resp, err := g.c.Post(ctx, "/api/order/createOrder", body, headers)
	if err != nil {
		return nil, err
	}
	var dto orderDTO
	if err := decodeData(resp, &dto); err != nil {
		return nil, err
	}
	o := dto.toDomain()
	return &o, nil
}

// UserOrders lists the signed-in user's orders
func (g *OrderGateway) UserOrders(ctx context.Context, token string) ([]order.Order, error) {
	resp, err := g.c.Post(ctx, "/api/order/userorders", struct{}{}, tokenHeader(token))
	if err != nil {
		return nil, err
	}
	var dtos []orderDTO
	if err := decodeData(resp, &dtos); err != nil {
		return nil, err
	}
	return toOrders(dtos), nil
}

// Get returns one order
func (g *OrderGateway) Get(ctx context.Context, token, orderID string) (*order.Order, error) {
	resp, err := g.c.Get(ctx, "/api/order/"+url.PathEscape(orderID), nil, tokenHeader(token))
	if err != nil {
		return nil, err
	}
	var dto orderDTO
	if err := decodeData(resp, &dto); err != nil {
		return nil, err
	}
	o := dto.toDomain()
	return &o, nil
}

// All lists every order for the admin board
func (g *OrderGateway) All(ctx context.Context, token string) ([]order.Order, error) {
	resp, err := g.c.Get(ctx, "/api/order/all", nil, tokenHeader(token))
	if err != nil {
		return nil, err
	}
	var dtos []orderDTO
	if err := decodeData(resp, &dtos); err != nil {
		return nil, err
	}
	return toOrders(dtos), nil
}

type statusUpdate struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// UpdateStatus moves an order on the admin board
func (g *OrderGateway) UpdateStatus(ctx context.Context, token, orderID string, status order.Status) error {
	resp, err := g.c.Post(ctx, "/api/order/update-status",
		statusUpdate{OrderID: orderID, Status: string(status)}, tokenHeader(token))
	if err != nil {
		return err
	}
	_, err = parseEnvelope(resp)
	return err
}

// Kitchen lists orders for the kitchen display
func (g *OrderGateway) Kitchen(ctx context.Context, token string) ([]order.Order, error) {
	resp, err := g.c.Get(ctx, "/api/order/kds", nil, bearer(token))
	if err != nil {
		return nil, err
	}
	var dtos []orderDTO
	if err := decodeData(resp, &dtos); err != nil {
		return nil, err
	}
	return toOrders(dtos), nil
}

// SetKitchenStatus updates an order from the kitchen display
func (g *OrderGateway) SetKitchenStatus(ctx context.Context, token, orderID string, status order.Status) error {
	resp, err := g.c.Put(ctx, "/api/order/status/"+url.PathEscape(orderID),
		map[string]string{"status": string(status)}, bearer(token))
	if err != nil {
		return err
	}
	_, err = parseEnvelope(resp)
	return err
}

// Analytics returns the backend's sales summary unchanged
func (g *OrderGateway) Analytics(ctx context.Context, token string) (map[string]any, error) {
	resp, err := g.c.Get(ctx, "/api/order/analytics", nil, bearer(token))
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := decodeData(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}
