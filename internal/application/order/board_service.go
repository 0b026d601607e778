package order

import (
	"context"
	"sync"
	"time"

	"github.com/canteen/client/internal/domain/order"
	"github.com/canteen/client/internal/domain/shared"
	"go.uber.org/zap"
)

// BoardView is one tab of the admin board
type BoardView struct {
	Filter order.Filter
	Orders []order.Order
	Counts map[order.Filter]int
}

// BoardService drives the admin order board and kitchen display. Every
// call requires an admin session.
type BoardService struct {
	gateway  order.Gateway
	sessions SessionProvider
	interval time.Duration
	logger   *zap.Logger

	mu    sync.RWMutex
	board *order.Board
}

// NewBoardService creates a new BoardService. A non-positive interval uses
// DefaultBoardInterval.
func NewBoardService(gateway order.Gateway, sessions SessionProvider, interval time.Duration, logger *zap.Logger) *BoardService {
	if interval <= 0 {
		interval = DefaultBoardInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoardService{
		gateway:  gateway,
		sessions: sessions,
		interval: interval,
		logger:   logger,
		board:    order.NewBoard(nil),
	}
}

func (s *BoardService) adminToken() (string, error) {
	sess := s.sessions.Session()
	if !sess.IsAuthenticated() {
		return "", shared.ErrUnauthorized
	}
	if !sess.IsAdmin() {
		return "", shared.ErrForbidden
	}
	return sess.Token, nil
}

// Refresh reloads every order from the backend
func (s *BoardService) Refresh(ctx context.Context) (*order.Board, error) {
	tok, err := s.adminToken()
	if err != nil {
		return nil, err
	}
	orders, err := s.gateway.All(ctx, tok)
	if err != nil {
		return nil, err
	}
	board := order.NewBoard(orders)

	s.mu.Lock()
	s.board = board
	s.mu.Unlock()
	return board, nil
}

// View returns the orders on tab f of the last loaded board
func (s *BoardService) View(f order.Filter) BoardView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BoardView{
		Filter: f,
		Orders: s.board.Filter(f),
		Counts: s.board.Counts(),
	}
}

// Advance moves an order one step along pending, accepted, preparing and
// ready. Only the local board entry is updated on success; the next
// refresh brings in everything else.
func (s *BoardService) Advance(ctx context.Context, orderID string) (order.Status, error) {
	tok, err := s.adminToken()
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	current, ok := s.board.Find(orderID)
	s.mu.RUnlock()
	if !ok {
		if _, err := s.Refresh(ctx); err != nil {
			return "", err
		}
		s.mu.RLock()
		current, ok = s.board.Find(orderID)
		s.mu.RUnlock()
		if !ok {
			return "", shared.ErrNotFound
		}
	}

	next, ok := current.Status.Next()
	if !ok {
		return "", shared.NewDomainError("INVALID_STATE", "Order cannot be advanced from "+current.Status.String())
	}
	if err := s.gateway.UpdateStatus(ctx, tok, orderID, next); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.board.SetStatus(orderID, next)
	s.mu.Unlock()
	s.logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("from", current.Status.String()),
		zap.String("to", next.String()),
	)
	return next, nil
}

// Watch refreshes the board on the service interval until the returned
// watcher is stopped. onUpdate receives every freshly loaded board.
func (s *BoardService) Watch(ctx context.Context, onUpdate func(*order.Board)) *Watcher {
	w := NewWatcher(s.interval, func(ctx context.Context) {
		board, err := s.Refresh(ctx)
		if err != nil {
			if ctx.Err() == nil {
				s.logger.Warn("board refresh failed", zap.Error(err))
			}
			return
		}
		if onUpdate != nil {
			onUpdate(board)
		}
	}, s.logger)
	w.Start(ctx)
	return w
}

// Kitchen returns the kitchen display queue
func (s *BoardService) Kitchen(ctx context.Context) ([]order.Order, error) {
	tok, err := s.adminToken()
	if err != nil {
		return nil, err
	}
	return s.gateway.Kitchen(ctx, tok)
}

// SetKitchenStatus sets any known status from the kitchen display
func (s *BoardService) SetKitchenStatus(ctx context.Context, orderID string, status order.Status) error {
	tok, err := s.adminToken()
	if err != nil {
		return err
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+status.String())
	}
	return s.gateway.SetKitchenStatus(ctx, tok, orderID, status)
}

// Analytics passes through the backend's order summary
func (s *BoardService) Analytics(ctx context.Context) (map[string]any, error) {
	tok, err := s.adminToken()
	if err != nil {
		return nil, err
	}
	return s.gateway.Analytics(ctx, tok)
}
