package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/canteen/client/internal/domain/recommend"
)

// RecommendGateway is the recommendation service
type RecommendGateway struct {
	c *Client
}

// NewRecommendGateway creates a gateway on the recommendation client
func NewRecommendGateway(c *Client) *RecommendGateway {
	return &RecommendGateway{c: c}
}

type recommendedDTO struct {
	ItemName   string `json:"item_name"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
	OrderCount int    `json:"order_count"`
}

func (d recommendedDTO) toDomain() recommend.Item {
	it := recommend.Item{Name: d.ItemName, OrderCount: d.Count}
	if it.Name == "" {
		it.Name = d.Name
	}
	if it.OrderCount == 0 {
		it.OrderCount = d.OrderCount
	}
	return it
}

// Popular returns the most ordered items
func (g *RecommendGateway) Popular(ctx context.Context, q recommend.PopularQuery) ([]recommend.Item, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.WindowDays > 0 {
		params.Set("window_days", strconv.Itoa(q.WindowDays))
	}
	return g.list(ctx, "/recommend/popular", params, true)
}

// Similar returns items similar to the named one
func (g *RecommendGateway) Similar(ctx context.Context, q recommend.SimilarQuery) ([]recommend.Item, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("item_name", q.ItemName)
	params.Set("limit", strconv.Itoa(q.Limit))
	return g.list(ctx, "/recommend/similar", params, false)
}

func (g *RecommendGateway) list(ctx context.Context, path string, params url.Values, useMessage bool) ([]recommend.Item, error) {
	resp, err := g.c.Get(ctx, path, params, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		msg := fmt.Sprintf("Server error (%d)", resp.StatusCode)
		if useMessage {
			var body struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(resp.Body, &body) == nil && body.Message != "" {
				msg = body.Message
			}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	dtos, err := decodeRecommendations(resp.Body)
	if err != nil {
		return nil, err
	}
	items := make([]recommend.Item, 0, len(dtos))
	for _, d := range dtos {
		it := d.toDomain()
		if it.Name == "" {
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

// decodeRecommendations reads {recommendations: [...]} or a bare list
func decodeRecommendations(body []byte) ([]recommendedDTO, error) {
	var wrapped struct {
		Recommendations []recommendedDTO `json:"recommendations"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Recommendations != nil {
		return wrapped.Recommendations, nil
	}
	var list []recommendedDTO
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decoding recommendations: %w", err)
	}
	return list, nil
}
