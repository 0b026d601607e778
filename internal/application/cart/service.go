package cart

import (
	"context"
	"strings"
	"sync"

	"github.com/canteen/client/internal/domain/cart"
	"github.com/canteen/client/internal/domain/identity"
	"github.com/canteen/client/internal/domain/menu"
	"github.com/canteen/client/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Toast messages shown after a confirmed remote change
const (
	MsgAdded   = "item Added to Cart"
	MsgRemoved = "item Removed from Cart"
)

// SessionProvider returns the current session, nil when signed out
type SessionProvider interface {
	Session() *identity.Session
}

// SessionFunc adapts a function to SessionProvider
type SessionFunc func() *identity.Session

// Session calls f
func (f SessionFunc) Session() *identity.Session {
	return f()
}

// Notifier shows short user-visible messages
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// Option configures a Service
type Option func(*Service)

// WithGuestStore persists the cart locally while signed out
func WithGuestStore(store cart.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithNotesStore keeps item notes locally while signed in, since the
// server cart does not hold them
func WithNotesStore(store cart.NotesStore) Option {
	return func(s *Service) {
		s.notes = store
	}
}

// WithNotifier sets where user-visible messages go
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service owns the cart container. Every mutation is applied locally
// first; with a signed-in session the matching remote call follows, and a
// failed call puts back the exact pre-call state.
type Service struct {
	mu       sync.Mutex
	cart     *cart.Cart
	gateway  cart.Gateway
	sessions SessionProvider
	store    cart.Store
	notes    cart.NotesStore
	notifier Notifier
	logger   *zap.Logger
}

// NewService creates a new cart Service with an empty cart
func NewService(gateway cart.Gateway, sessions SessionProvider, opts ...Option) *Service {
	s := &Service{
		cart:     cart.New(),
		gateway:  gateway,
		sessions: sessions,
		notifier: nopNotifier{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) token() string {
	if s.sessions == nil {
		return ""
	}
	sess := s.sessions.Session()
	if !sess.IsAuthenticated() {
		return ""
	}
	return sess.Token
}

// mutate applies change, then runs remote when signed in. On a remote error
// the cart is restored to its snapshot and the error surfaced.
func (s *Service) mutate(ctx context.Context, op string, change func(*cart.Cart), remote func(token string) error, okMsg string) error {
	snapshot := s.cart.Clone()
	change(s.cart)

	token := s.token()
	if token == "" {
		s.persistGuest(ctx)
		return nil
	}
	if err := remote(token); err != nil {
		s.cart.Restore(snapshot)
		s.logger.Warn("cart sync failed, rolled back",
			zap.String("op", op),
			zap.Error(err),
		)
		s.notifier.Error(shared.ErrRemoteFailed.Message)
		return err
	}
	s.persistNotes(ctx)
	if okMsg != "" {
		s.notifier.Success(okMsg)
	}
	return nil
}

func (s *Service) persistGuest(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveCart(ctx, s.cart.Lines()); err != nil {
		s.logger.Warn("failed to save guest cart", zap.Error(err))
	}
}

func (s *Service) persistNotes(ctx context.Context) {
	if s.notes == nil {
		return
	}
	notes := make(map[string]string)
	for _, l := range s.cart.Lines() {
		if l.Notes != "" {
			notes[l.ItemID] = l.Notes
		}
	}
	if err := s.notes.SaveNotes(ctx, notes); err != nil {
		s.logger.Warn("failed to save cart notes", zap.Error(err))
	}
}

// applyNotes puts saved notes back on the items of a freshly hydrated cart.
// Notes of items no longer in the cart are forgotten.
func (s *Service) applyNotes(ctx context.Context) {
	if s.notes == nil {
		return
	}
	saved, err := s.notes.LoadNotes(ctx)
	if err != nil {
		s.logger.Warn("failed to load cart notes", zap.Error(err))
		return
	}
	stale := false
	for id, n := range saved {
		l, ok := s.cart.Line(id)
		if !ok {
			stale = true
			continue
		}
		if l.Notes == "" {
			s.cart.UpdateNotes(id, n)
		}
	}
	if stale {
		s.persistNotes(ctx)
	}
}

func validItemID(itemID string) error {
	if strings.TrimSpace(itemID) == "" {
		return shared.NewDomainError("INVALID_ITEM_ID", "Item ID cannot be empty")
	}
	return nil
}

// Add puts one more unit of itemID in the cart. Notes replace existing
// notes only when non-empty.
func (s *Service) Add(ctx context.Context, itemID, notes string) error {
	if err := validItemID(itemID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, "add",
		func(c *cart.Cart) { c.Add(itemID, notes) },
		func(token string) error { return s.gateway.Add(ctx, token, itemID) },
		MsgAdded,
	)
}

// Remove takes one unit of itemID out of the cart. An absent item is a
// no-op and no remote call is made.
func (s *Service) Remove(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Quantity(itemID) <= 0 {
		return nil
	}
	return s.mutate(ctx, "remove",
		func(c *cart.Cart) { c.Remove(itemID) },
		func(token string) error { return s.gateway.Remove(ctx, token, itemID) },
		MsgRemoved,
	)
}

// RemoveCompletely drops every unit of itemID. It needs a signed-in
// session; without one nothing changes and ErrUnauthorized is returned.
func (s *Service) RemoveCompletely(ctx context.Context, itemID string) error {
	if err := validItemID(itemID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token() == "" {
		s.notifier.Error(shared.ErrUnauthorized.Message)
		return shared.ErrUnauthorized
	}
	if !s.cart.Has(itemID) {
		return nil
	}
	return s.mutate(ctx, "delete",
		func(c *cart.Cart) { c.Delete(itemID) },
		func(token string) error { return s.gateway.Delete(ctx, token, itemID) },
		MsgRemoved,
	)
}

// UpdateNotes changes the notes of an item already in the cart. It is
// local only and reports whether the item was present.
func (s *Service) UpdateNotes(ctx context.Context, itemID, notes string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.UpdateNotes(itemID, notes) {
		return false
	}
	if s.token() == "" {
		s.persistGuest(ctx)
	} else {
		s.persistNotes(ctx)
	}
	return true
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, "clear",
		func(c *cart.Cart) { c.Clear() },
		func(token string) error { return s.gateway.Clear(ctx, token) },
		"",
	)
}

// Hydrate replaces the cart with the server copy for token, then restores
// the notes saved for items still in it. On failure the cart is left empty
// and the error returned.
func (s *Service) Hydrate(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.gateway.Fetch(ctx, token)
	if err != nil {
		s.cart.Clear()
		s.logger.Warn("failed to load cart data", zap.Error(err))
		return err
	}
	s.cart.Replace(lines)
	s.applyNotes(ctx)
	s.logger.Debug("cart hydrated", zap.Int("lines", s.cart.Len()))
	return nil
}

// LoadGuest restores a signed-out cart saved by an earlier run
func (s *Service) LoadGuest(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.store.LoadCart(ctx)
	if err != nil {
		return err
	}
	s.cart.Replace(lines)
	return nil
}

// Reset empties the cart locally without any remote call, and forgets the
// saved guest cart and notes.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	if s.store != nil {
		if err := s.store.SaveCart(ctx, nil); err != nil {
			s.logger.Warn("failed to clear guest cart", zap.Error(err))
		}
	}
	if s.notes != nil {
		if err := s.notes.SaveNotes(ctx, nil); err != nil {
			s.logger.Warn("failed to clear cart notes", zap.Error(err))
		}
	}
}

// Quantity returns the quantity of itemID, 0 when absent
func (s *Service) Quantity(itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Quantity(itemID)
}

// Notes returns the notes of itemID, "" when absent
func (s *Service) Notes(itemID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Notes(itemID)
}

// TotalAmount prices the cart against a catalog
func (s *Service) TotalAmount(prices cart.PriceLookup) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalAmount(prices)
}

// TotalItems sums quantities
func (s *Service) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalItems()
}

// Lines returns the cart lines ordered by item ID
func (s *Service) Lines() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// Snapshot returns an independent copy of the cart
func (s *Service) Snapshot() *cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// Summary builds the checkout view against catalog
func (s *Service) Summary(catalog *menu.Catalog) cart.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.Summarize(s.cart, catalog)
}
