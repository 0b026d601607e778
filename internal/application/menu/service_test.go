package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/canteen/client/internal/domain/menu"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSource is a mock implementation of menu.Source
type MockSource struct {
	mock.Mock
}

func (m *MockSource) FetchCatalog(ctx context.Context) (*menu.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Catalog), args.Error(1)
}

// MockCache is a mock implementation of menu.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context) (*menu.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Catalog), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, c *menu.Catalog) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func remoteCatalog() *menu.Catalog {
	return menu.NewCatalog([]menu.Food{
		{ID: "a1", Name: "Masala Dosa", Price: decimal.NewFromInt(60), Category: "South Indian"},
		{ID: "a2", Name: "Filter Coffee", Price: decimal.NewFromInt(20), Category: "Beverages", SpecialToday: true},
	})
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips backend", func(t *testing.T) {
		src, c := new(MockSource), new(MockCache)
		c.On("Get", ctx).Return(remoteCatalog(), nil)
		svc := NewService(src, c, nil)

		cat, origin, err := svc.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, OriginCache, origin)
		assert.Equal(t, 2, cat.Len())
		src.AssertNotCalled(t, "FetchCatalog", mock.Anything)
	})

	t.Run("miss fetches and fills cache", func(t *testing.T) {
		src, c := new(MockSource), new(MockCache)
		remote := remoteCatalog()
		c.On("Get", ctx).Return(nil, nil)
		src.On("FetchCatalog", ctx).Return(remote, nil)
		c.On("Set", ctx, remote).Return(nil)
		svc := NewService(src, c, nil)

		_, origin, err := svc.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, OriginRemote, origin)
		assert.Equal(t, OriginRemote, svc.Origin())
		c.AssertExpectations(t)
	})

	t.Run("backend failure falls back to seed", func(t *testing.T) {
		src := new(MockSource)
		src.On("FetchCatalog", ctx).Return(nil, errors.New("timeout"))
		svc := NewService(src, nil, nil)

		cat, origin, err := svc.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, OriginSeed, origin)
		assert.Equal(t, menu.SeedCatalog().Len(), cat.Len())
	})

	t.Run("cache errors are ignored", func(t *testing.T) {
		src, c := new(MockSource), new(MockCache)
		remote := remoteCatalog()
		c.On("Get", ctx).Return(nil, errors.New("redis down"))
		src.On("FetchCatalog", ctx).Return(remote, nil)
		c.On("Set", ctx, remote).Return(errors.New("redis down"))
		svc := NewService(src, c, nil)

		_, origin, err := svc.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, OriginRemote, origin)
	})
}

func TestService_CatalogLoadsOnce(t *testing.T) {
	ctx := context.Background()
	src := new(MockSource)
	src.On("FetchCatalog", ctx).Return(remoteCatalog(), nil).Once()
	svc := NewService(src, nil, nil)

	for i := 0; i < 3; i++ {
		cat, err := svc.Catalog(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, cat.Len())
	}
	src.AssertNumberOfCalls(t, "FetchCatalog", 1)
}

func TestService_BrowseAndSpecial(t *testing.T) {
	ctx := context.Background()
	src := new(MockSource)
	src.On("FetchCatalog", ctx).Return(remoteCatalog(), nil)
	svc := NewService(src, nil, nil)

	foods, err := svc.Browse(ctx, "All", "coffee")
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "a2", foods[0].ID)

	special, ok, err := svc.Special(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Filter Coffee", special.Name)
}
