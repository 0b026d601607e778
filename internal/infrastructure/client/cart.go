package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/canteen/client/internal/domain/cart"
)

// CartGateway is the backend's per-user cart
type CartGateway struct {
	c *Client
}

// NewCartGateway creates a cart gateway on the backend client
func NewCartGateway(c *Client) *CartGateway {
	return &CartGateway{c: c}
}

type itemRequest struct {
	ItemID string `json:"itemId"`
}

// Add increments one unit remotely
func (g *CartGateway) Add(ctx context.Context, token, itemID string) error {
	return g.mutate(ctx, "/api/cart/add", token, itemRequest{ItemID: itemID})
}

// Remove decrements one unit remotely
func (g *CartGateway) Remove(ctx context.Context, token, itemID string) error {
	return g.mutate(ctx, "/api/cart/remove", token, itemRequest{ItemID: itemID})
}

// Delete drops an item remotely whatever its quantity
func (g *CartGateway) Delete(ctx context.Context, token, itemID string) error {
	return g.mutate(ctx, "/api/cart/delete", token, itemRequest{ItemID: itemID})
}

// Clear empties the remote cart
func (g *CartGateway) Clear(ctx context.Context, token string) error {
	return g.mutate(ctx, "/api/cart/clear", token, struct{}{})
}

func (g *CartGateway) mutate(ctx context.Context, path, token string, body any) error {
	resp, err := g.c.Post(ctx, path, body, tokenHeader(token))
	if err != nil {
		return err
	}
	_, err = parseEnvelope(resp)
	return err
}

type cartResponse struct {
	Success  *bool                      `json:"success"`
	Message  string                     `json:"message"`
	CartData map[string]json.RawMessage `json:"cartData"`
}

type cartEntry struct {
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// Fetch returns the remote cart lines sorted by item ID. Both the legacy
// {id: n} shape and {id: {quantity, notes}} are accepted; non-positive
// quantities are dropped.
func (g *CartGateway) Fetch(ctx context.Context, token string) ([]cart.Line, error) {
	resp, err := g.c.Post(ctx, "/api/cart/get", struct{}{}, tokenHeader(token))
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		_, err := parseEnvelope(resp)
		return nil, err
	}
	var body cartResponse
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}
	if body.Success != nil && !*body.Success {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: body.Message}
	}
	return DecodeCartData(body.CartData)
}

// DecodeCartData converts a backend cartData map into cart lines
func DecodeCartData(data map[string]json.RawMessage) ([]cart.Line, error) {
	lines := make([]cart.Line, 0, len(data))
	for id, raw := range data {
		line := cart.Line{ItemID: id}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			q, err := n.Float64()
			if err != nil || q != math.Trunc(q) || q > math.MaxInt32 || q < math.MinInt32 {
				return nil, fmt.Errorf("cart item %s: quantity %s is not a whole number", id, n)
			}
			line.Quantity = int(q)
		} else {
			var e cartEntry
			if err := json.Unmarshal(raw, &e); err != nil {
				return nil, fmt.Errorf("cart item %s: %w", id, err)
			}
			line.Quantity = e.Quantity
			line.Notes = e.Notes
		}
		if line.Quantity <= 0 {
			continue
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })
	return lines, nil
}
