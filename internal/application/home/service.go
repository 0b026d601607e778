// Package home assembles the landing screen: the menu, today's special and
// popular picks, loaded in parallel.
package home

import (
	"context"

	menuapp "github.com/canteen/client/internal/application/menu"
	"github.com/canteen/client/internal/domain/menu"
	"github.com/canteen/client/internal/domain/recommend"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CatalogLoader loads the catalog
type CatalogLoader interface {
	Load(ctx context.Context) (*menu.Catalog, menuapp.Origin, error)
}

// PopularSource returns popular suggestions
type PopularSource interface {
	Popular(ctx context.Context, q recommend.PopularQuery) ([]recommend.Suggestion, error)
}

// Screen is everything the landing screen shows
type Screen struct {
	Catalog    *menu.Catalog
	Origin     menuapp.Origin
	Categories []string
	Special    *menu.Food
	Popular    []recommend.Suggestion
	// PopularErr is set when the recommendation service failed; the rest
	// of the screen is still usable
	PopularErr error
}

// Service loads the landing screen
type Service struct {
	menu    CatalogLoader
	popular PopularSource
	logger  *zap.Logger
}

// NewService creates a new home Service. popular may be nil.
func NewService(menu CatalogLoader, popular PopularSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{menu: menu, popular: popular, logger: logger}
}

// Load fetches the catalog and popular items concurrently. Only a catalog
// failure fails the screen.
func (s *Service) Load(ctx context.Context) (*Screen, error) {
	screen := &Screen{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		catalog, origin, err := s.menu.Load(gctx)
		if err != nil {
			return err
		}
		screen.Catalog = catalog
		screen.Origin = origin
		return nil
	})

	if s.popular != nil {
		g.Go(func() error {
			items, err := s.popular.Popular(gctx, recommend.PopularQuery{})
			if err != nil {
				s.logger.Warn("popular items unavailable", zap.Error(err))
				screen.PopularErr = err
				return nil
			}
			screen.Popular = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	screen.Categories = screen.Catalog.Categories()
	if f, ok := screen.Catalog.SpecialOfTheDay(); ok {
		screen.Special = &f
	}
	return screen, nil
}
