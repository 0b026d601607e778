// Package cache keeps the last fetched catalog in memory or in Redis.
package cache

import (
	"encoding/json"
	"fmt"

	"github.com/canteen/client/internal/domain/menu"
	"github.com/shopspring/decimal"
)

type foodEntry struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	ImageRef      string          `json:"image,omitempty"`
	SpecialToday  bool            `json:"special_today,omitempty"`
	Discount      decimal.Decimal `json:"discount"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	SpecialPrice  decimal.Decimal `json:"special_price"`
}

func encodeCatalog(c *menu.Catalog) ([]byte, error) {
	items := c.Items()
	entries := make([]foodEntry, 0, len(items))
	for _, f := range items {
		entries = append(entries, foodEntry{
			ID:            f.ID,
			Name:          f.Name,
			Description:   f.Description,
			Price:         f.Price,
			Category:      f.Category,
			ImageRef:      f.ImageRef,
			SpecialToday:  f.SpecialToday,
			Discount:      f.Discount,
			OriginalPrice: f.OriginalPrice,
			SpecialPrice:  f.SpecialPrice,
		})
	}
	return json.Marshal(entries)
}

func decodeCatalog(data []byte) (*menu.Catalog, error) {
	var entries []foodEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding cached catalog: %w", err)
	}
	foods := make([]menu.Food, 0, len(entries))
	for _, e := range entries {
		foods = append(foods, menu.Food{
			ID:            e.ID,
			Name:          e.Name,
			Description:   e.Description,
			Price:         e.Price,
			Category:      e.Category,
			ImageRef:      e.ImageRef,
			SpecialToday:  e.SpecialToday,
			Discount:      e.Discount,
			OriginalPrice: e.OriginalPrice,
			SpecialPrice:  e.SpecialPrice,
		})
	}
	return menu.NewCatalog(foods), nil
}
