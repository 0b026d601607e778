package order

import (
	"context"
	"time"

	"github.com/canteen/client/internal/domain/order"
	"go.uber.org/zap"
)

// HistoryService lists and tracks the customer's own orders
type HistoryService struct {
	gateway       order.Gateway
	sessions      SessionProvider
	trackInterval time.Duration
	logger        *zap.Logger
}

// NewHistoryService creates a new HistoryService. A non-positive interval
// uses DefaultTrackInterval.
func NewHistoryService(gateway order.Gateway, sessions SessionProvider, trackInterval time.Duration, logger *zap.Logger) *HistoryService {
	if trackInterval <= 0 {
		trackInterval = DefaultTrackInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{
		gateway:       gateway,
		sessions:      sessions,
		trackInterval: trackInterval,
		logger:        logger,
	}
}

// MyOrders returns the customer's orders, newest first
func (s *HistoryService) MyOrders(ctx context.Context) ([]order.Order, error) {
	tok, err := token(s.sessions)
	if err != nil {
		return nil, err
	}
	orders, err := s.gateway.UserOrders(ctx, tok)
	if err != nil {
		return nil, err
	}
	return order.NewBoard(orders).Orders(), nil
}

// Get fetches one order
func (s *HistoryService) Get(ctx context.Context, orderID string) (*order.Order, error) {
	tok, err := token(s.sessions)
	if err != nil {
		return nil, err
	}
	return s.gateway.Get(ctx, tok, orderID)
}

// Track polls an order until it reaches a final status or ctx ends,
// calling onUpdate with every successful fetch. Fetch errors are logged and
// polling continues. It returns the last order seen.
func (s *HistoryService) Track(ctx context.Context, orderID string, onUpdate func(order.Order)) (*order.Order, error) {
	tok, err := token(s.sessions)
	if err != nil {
		return nil, err
	}

	var last *order.Order
	err = poll(ctx, s.trackInterval, func(ctx context.Context) bool {
		o, err := s.gateway.Get(ctx, tok, orderID)
		if err != nil {
			s.logger.Warn("error fetching order", zap.String("order_id", orderID), zap.Error(err))
			return false
		}
		last = o
		if onUpdate != nil {
			onUpdate(*o)
		}
		return o.Status.IsFinal()
	})
	return last, err
}
