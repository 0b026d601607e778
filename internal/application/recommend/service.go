package recommend

import (
	"context"

	"github.com/canteen/client/internal/domain/menu"
	"github.com/canteen/client/internal/domain/recommend"
	"go.uber.org/zap"
)

// CatalogProvider returns the catalog suggestions are joined against
type CatalogProvider interface {
	Catalog(ctx context.Context) (*menu.Catalog, error)
}

// Service fetches recommendations and joins them to catalog entries
type Service struct {
	gateway recommend.Gateway
	catalog CatalogProvider
	logger  *zap.Logger
}

// NewService creates a new recommendation Service
func NewService(gateway recommend.Gateway, catalog CatalogProvider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gateway: gateway, catalog: catalog, logger: logger}
}

// Popular returns the most ordered items
func (s *Service) Popular(ctx context.Context, q recommend.PopularQuery) ([]recommend.Suggestion, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	items, err := s.gateway.Popular(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, items)
}

// Similar returns items often ordered with itemName
func (s *Service) Similar(ctx context.Context, q recommend.SimilarQuery) ([]recommend.Suggestion, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	items, err := s.gateway.Similar(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, items)
}

func (s *Service) join(ctx context.Context, items []recommend.Item) ([]recommend.Suggestion, error) {
	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		s.logger.Warn("catalog unavailable for recommendation join", zap.Error(err))
		catalog = nil
	}
	return recommend.Join(items, catalog), nil
}
