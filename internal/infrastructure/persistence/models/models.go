// Package models holds the GORM models of the local store
package models

import (
	"time"

	"github.com/canteen/client/internal/domain/cart"
	"github.com/canteen/client/internal/domain/identity"
)

// SessionRowID is the primary key of the single stored session
const SessionRowID = 1

// SessionModel is the signed-in session of this device
type SessionModel struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"not null"`
	Role      string `gorm:"size:16;not null"`
	UserID    string `gorm:"size:64"`
	ExpiresAt *time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}

// ToDomain converts the row to a session
func (m *SessionModel) ToDomain() *identity.Session {
	s := &identity.Session{
		Token:  m.Token,
		Role:   identity.ParseRole(m.Role),
		UserID: m.UserID,
	}
	if m.ExpiresAt != nil {
		s.ExpiresAt = *m.ExpiresAt
	}
	return s
}

// SessionModelFromDomain converts a session to its row
func SessionModelFromDomain(s *identity.Session) *SessionModel {
	m := &SessionModel{
		ID:     SessionRowID,
		Token:  s.Token,
		Role:   string(s.Role),
		UserID: s.UserID,
	}
	if !s.ExpiresAt.IsZero() {
		exp := s.ExpiresAt
		m.ExpiresAt = &exp
	}
	return m
}

// CartLineModel is one line of the guest cart
type CartLineModel struct {
	ItemID    string `gorm:"primaryKey;size:64"`
	Quantity  int    `gorm:"not null"`
	Notes     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (CartLineModel) TableName() string {
	return "guest_cart_lines"
}

// ToDomain converts the row to a cart line
func (m *CartLineModel) ToDomain() cart.Line {
	return cart.Line{ItemID: m.ItemID, Quantity: m.Quantity, Notes: m.Notes}
}

// CartLineModelFromDomain converts a cart line to its row
func CartLineModelFromDomain(l cart.Line) *CartLineModel {
	return &CartLineModel{ItemID: l.ItemID, Quantity: l.Quantity, Notes: l.Notes}
}

// CartNoteModel is the notes of one item in a signed-in cart
type CartNoteModel struct {
	ItemID    string `gorm:"primaryKey;size:64"`
	Notes     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (CartNoteModel) TableName() string {
	return "cart_notes"
}

// All returns every model for migration
func All() []any {
	return []any{&SessionModel{}, &CartLineModel{}, &CartNoteModel{}}
}
