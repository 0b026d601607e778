package order

import (
	"context"

	"github.com/canteen/client/internal/domain/cart"
	"github.com/canteen/client/internal/domain/identity"
	"github.com/canteen/client/internal/domain/menu"
	"github.com/canteen/client/internal/domain/order"
	"github.com/canteen/client/internal/domain/shared"
	"go.uber.org/zap"
)

// MsgComplementary is shown when an order earns the loyalty free item
const MsgComplementary = "Free complementary item added to your order!"

// SessionProvider returns the current session, nil when signed out
type SessionProvider interface {
	Session() *identity.Session
}

// CatalogProvider returns the catalog prices are taken from
type CatalogProvider interface {
	Catalog(ctx context.Context) (*menu.Catalog, error)
}

// Checkout is the slice of the cart service used at checkout
type Checkout interface {
	Summary(catalog *menu.Catalog) cart.Summary
	Reset(ctx context.Context)
}

// PlaceOrderRequest is the checkout form
type PlaceOrderRequest struct {
	TableNumber   int
	PaymentMethod order.PaymentMethod
}

// PlaceOrderResult reports a placed order
type PlaceOrderResult struct {
	Order         *order.Order
	Summary       cart.Summary
	Complementary bool
}

// PlacementService turns the cart into an order
type PlacementService struct {
	gateway  order.Gateway
	sessions SessionProvider
	catalog  CatalogProvider
	cart     Checkout
	logger   *zap.Logger
}

// NewPlacementService creates a new PlacementService
func NewPlacementService(gateway order.Gateway, sessions SessionProvider, catalog CatalogProvider, cart Checkout, logger *zap.Logger) *PlacementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlacementService{
		gateway:  gateway,
		sessions: sessions,
		catalog:  catalog,
		cart:     cart,
		logger:   logger,
	}
}

func token(sessions SessionProvider) (string, error) {
	sess := sessions.Session()
	if !sess.IsAuthenticated() {
		return "", shared.ErrUnauthorized
	}
	return sess.Token, nil
}

// PreviousOrders counts the customer's earlier orders. Failures count as
// zero so a flaky history call never blocks checkout.
func (s *PlacementService) PreviousOrders(ctx context.Context) int {
	tok, err := token(s.sessions)
	if err != nil {
		return 0
	}
	orders, err := s.gateway.UserOrders(ctx, tok)
	if err != nil {
		s.logger.Warn("could not fetch previous orders", zap.Error(err))
		return 0
	}
	return len(orders)
}

// Eligible reports whether the next order earns the free item
func (s *PlacementService) Eligible(ctx context.Context) bool {
	return order.IsComplementary(s.PreviousOrders(ctx))
}

// Place submits the cart as an order and empties the cart on success
func (s *PlacementService) Place(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	tok, err := token(s.sessions)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	summary := s.cart.Summary(catalog)
	placement, err := order.NewPlacement(summary, req.TableNumber, req.PaymentMethod, s.PreviousOrders(ctx))
	if err != nil {
		return nil, err
	}

	placed, err := s.gateway.Place(ctx, tok, placement)
	if err != nil {
		s.logger.Error("order placement failed",
			zap.String("idempotency_key", placement.IdempotencyKey),
			zap.Error(err),
		)
		return nil, err
	}
	s.cart.Reset(ctx)

	s.logger.Info("order placed",
		zap.String("order_id", placed.ID),
		zap.Int("table", placement.TableNumber),
		zap.Bool("complementary", placement.Complementary),
	)
	return &PlaceOrderResult{
		Order:         placed,
		Summary:       summary,
		Complementary: placement.Complementary,
	}, nil
}
