package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/canteen/client/internal/domain/menu"
	"github.com/canteen/client/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	foodListPath = "/api/food/list"
	menuPath     = "/api/menu/getMenu"
)

// MenuSource reads the catalog from the backend. The food list route is
// tried first and the menu route second.
type MenuSource struct {
	c *Client
}

// NewMenuSource creates a catalog source on the backend client
func NewMenuSource(c *Client) *MenuSource {
	return &MenuSource{c: c}
}

// flexBool accepts true, "true" and their false counterparts
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch string(bytes.Trim(data, `"`)) {
	case "true", "1":
		*b = true
	default:
		*b = false
	}
	return nil
}

type foodDTO struct {
	ID             string          `json:"_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Image          string          `json:"image"`
	Category       string          `json:"category"`
	IsSpecialToday flexBool        `json:"isSpecialToday"`
	Discount       decimal.Decimal `json:"discount"`
	OriginalPrice  decimal.Decimal `json:"originalPrice"`
	SpecialPrice   decimal.Decimal `json:"specialPrice"`
}

func (d foodDTO) toDomain() menu.Food {
	return menu.Food{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		Price:         d.Price,
		Category:      d.Category,
		ImageRef:      d.Image,
		SpecialToday:  bool(d.IsSpecialToday),
		Discount:      d.Discount,
		OriginalPrice: d.OriginalPrice,
		SpecialPrice:  d.SpecialPrice,
	}
}

// FetchCatalog returns the remote catalog
func (s *MenuSource) FetchCatalog(ctx context.Context) (*menu.Catalog, error) {
	cat, err := s.fetch(ctx, foodListPath)
	if err == nil {
		return cat, nil
	}
	logger.L(ctx).Warn("food list unavailable, trying menu", zap.Error(err))
	alt, altErr := s.fetch(ctx, menuPath)
	if altErr != nil {
		return nil, errors.Join(err, altErr)
	}
	return alt, nil
}

func (s *MenuSource) fetch(ctx context.Context, path string) (*menu.Catalog, error) {
	resp, err := s.c.Get(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var dtos []foodDTO
	if resp.OK() && bytes.HasPrefix(bytes.TrimSpace(resp.Body), []byte("[")) {
		err = resp.Decode(&dtos)
	} else {
		err = decodeData(resp, &dtos)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	foods := make([]menu.Food, 0, len(dtos))
	for _, d := range dtos {
		f := d.toDomain()
		if err := f.Validate(); err != nil {
			logger.L(ctx).Warn("skipping invalid food", zap.String("id", d.ID), zap.Error(err))
			continue
		}
		foods = append(foods, f)
	}
	if len(foods) == 0 {
		return nil, fmt.Errorf("%s: empty catalog", path)
	}
	return menu.NewCatalog(foods), nil
}
