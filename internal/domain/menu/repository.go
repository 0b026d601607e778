package menu

import "context"

// Source fetches the current catalog from wherever it lives: the backend,
// a cache, or the bundled seed.
type Source interface {
	FetchCatalog(ctx context.Context) (*Catalog, error)
}

// Cache holds a recently fetched catalog. Get reports a miss with a nil
// catalog and nil error.
type Cache interface {
	Get(ctx context.Context) (*Catalog, error)
	Set(ctx context.Context, c *Catalog) error
}
