package order

import "context"

// Gateway is the remote order API
type Gateway interface {
	Place(ctx context.Context, token string, p *Placement) (*Order, error)
	UserOrders(ctx context.Context, token string) ([]Order, error)
	Get(ctx context.Context, token, orderID string) (*Order, error)
	All(ctx context.Context, token string) ([]Order, error)
	UpdateStatus(ctx context.Context, token, orderID string, status Status) error
	Kitchen(ctx context.Context, token string) ([]Order, error)
	SetKitchenStatus(ctx context.Context, token, orderID string, status Status) error
	Analytics(ctx context.Context, token string) (map[string]any, error)
}
