// Package recommend models the answers of the external recommendation and
// chat services and joins them back onto the catalog.
package recommend

import (
	"context"

	"github.com/canteen/client/internal/domain/menu"
	"github.com/canteen/client/internal/domain/shared"
)

const (
	DefaultPopularLimit = 5
	DefaultSimilarLimit = 6
)

// Item is one recommended dish. OrderCount is only set for popularity
// results.
type Item struct {
	Name       string
	OrderCount int
}

// Suggestion is a recommended item joined with the catalog. Food is nil
// when the dish is not on today's menu.
type Suggestion struct {
	Item
	Food *menu.Food
}

// Available reports whether the suggestion can be added to the cart
func (s Suggestion) Available() bool {
	return s.Food != nil
}

// PopularQuery asks for the most ordered items
type PopularQuery struct {
	Limit int
	// WindowDays limits the lookback; zero means the service default
	WindowDays int
}

// Validate applies defaults and checks bounds
func (q *PopularQuery) Validate() error {
	if q.Limit <= 0 {
		q.Limit = DefaultPopularLimit
	}
	if q.WindowDays < 0 {
		return shared.NewDomainError("INVALID_WINDOW", "window_days must be at least 1")
	}
	return nil
}

// SimilarQuery asks for items similar to a named dish
type SimilarQuery struct {
	ItemName string
	Limit    int
}

// Validate applies defaults and checks the item name
func (q *SimilarQuery) Validate() error {
	if q.ItemName == "" {
		return shared.NewDomainError("INVALID_ITEM_NAME", "item_name is required")
	}
	if q.Limit <= 0 {
		q.Limit = DefaultSimilarLimit
	}
	return nil
}

// Join attaches catalog entries to recommended items by normalized name
func Join(items []Item, catalog *menu.Catalog) []Suggestion {
	out := make([]Suggestion, 0, len(items))
	for _, it := range items {
		s := Suggestion{Item: it}
		if f, ok := catalog.MatchByName(it.Name); ok {
			food := f
			s.Food = &food
		}
		out = append(out, s)
	}
	return out
}

// Gateway is the remote recommendation API
type Gateway interface {
	Popular(ctx context.Context, q PopularQuery) ([]Item, error)
	Similar(ctx context.Context, q SimilarQuery) ([]Item, error)
}
