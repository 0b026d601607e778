package handler

import (
	"github.com/canteen/client/internal/domain/menu"
	"github.com/shopspring/decimal"
)

// FoodResponse is one catalog entry
type FoodResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	EffectivePrice decimal.Decimal `json:"effectivePrice"`
	Category       string          `json:"category"`
	Image          string          `json:"image,omitempty"`
	SpecialToday   bool            `json:"isSpecialToday"`
	Discount       decimal.Decimal `json:"discount"`
}

// MenuResponse is a filtered catalog page
type MenuResponse struct {
	Origin     string         `json:"origin"`
	Categories []string       `json:"categories"`
	Items      []FoodResponse `json:"items"`
}

func toFoodResponse(f menu.Food) FoodResponse {
	return FoodResponse{
		ID:             f.ID,
		Name:           f.Name,
		Description:    f.Description,
		Price:          f.Price,
		EffectivePrice: f.EffectivePrice(),
		Category:       f.Category,
		Image:          f.ImageRef,
		SpecialToday:   f.SpecialToday,
		Discount:       f.Discount,
	}
}

func toFoodResponses(foods []menu.Food) []FoodResponse {
	out := make([]FoodResponse, 0, len(foods))
	for _, f := range foods {
		out = append(out, toFoodResponse(f))
	}
	return out
}
