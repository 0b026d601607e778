package menu

import (
	"context"
	"sync"

	"github.com/canteen/client/internal/domain/menu"
	"go.uber.org/zap"
)

// Origin says where a loaded catalog came from
type Origin string

const (
	OriginCache  Origin = "cache"
	OriginRemote Origin = "remote"
	OriginSeed   Origin = "seed"
)

// Service loads the catalog: cache first, then the backend, then the
// bundled seed menu.
type Service struct {
	source menu.Source
	cache  menu.Cache
	seed   func() *menu.Catalog
	logger *zap.Logger

	mu      sync.RWMutex
	current *menu.Catalog
	origin  Origin
}

// NewService creates a new menu Service. cache may be nil.
func NewService(source menu.Source, cache menu.Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source: source,
		cache:  cache,
		seed:   menu.SeedCatalog,
		logger: logger,
	}
}

// Load fetches a fresh catalog and remembers it. It only fails when the
// seed menu is empty, which never happens in a release build.
func (s *Service) Load(ctx context.Context) (*menu.Catalog, Origin, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("catalog cache read failed", zap.Error(err))
		}
		if cached != nil && cached.Len() > 0 {
			s.remember(cached, OriginCache)
			return cached, OriginCache, nil
		}
	}

	catalog, err := s.source.FetchCatalog(ctx)
	if err == nil && catalog.Len() > 0 {
		if s.cache != nil {
			if cerr := s.cache.Set(ctx, catalog); cerr != nil {
				s.logger.Warn("catalog cache write failed", zap.Error(cerr))
			}
		}
		s.remember(catalog, OriginRemote)
		return catalog, OriginRemote, nil
	}
	s.logger.Warn("backend catalog unavailable, using bundled menu", zap.Error(err))

	seed := s.seed()
	s.remember(seed, OriginSeed)
	return seed, OriginSeed, nil
}

// Catalog returns the last loaded catalog, loading one when none is held
func (s *Service) Catalog(ctx context.Context) (*menu.Catalog, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()
	if current != nil {
		return current, nil
	}
	catalog, _, err := s.Load(ctx)
	return catalog, err
}

// Origin reports where the held catalog came from, "" before the first load
func (s *Service) Origin() Origin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.origin
}

// Browse filters the catalog by category and a free-text query
func (s *Service) Browse(ctx context.Context, category, query string) ([]menu.Food, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Filter(category, query), nil
}

// Special returns today's special dish
func (s *Service) Special(ctx context.Context) (menu.Food, bool, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return menu.Food{}, false, err
	}
	f, ok := catalog.SpecialOfTheDay()
	return f, ok, nil
}

func (s *Service) remember(c *menu.Catalog, o Origin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
	s.origin = o
}
