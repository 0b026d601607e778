package persistence

import (
	"context"
	"errors"

	"github.com/canteen/client/internal/domain/identity"
	"github.com/canteen/client/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSessionStore implements identity.SessionStore using GORM
type GormSessionStore struct {
	db *gorm.DB
}

// NewGormSessionStore creates a new GormSessionStore
func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	return &GormSessionStore{db: db}
}

// Load returns the stored session, or nil when nobody is signed in
func (s *GormSessionStore) Load(ctx context.Context) (*identity.Session, error) {
	var m models.SessionModel
	err := s.db.WithContext(ctx).First(&m, models.SessionRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// Save stores the session, replacing any previous one
func (s *GormSessionStore) Save(ctx context.Context, sess *identity.Session) error {
	if !sess.IsAuthenticated() {
		return s.Clear(ctx)
	}
	m := models.SessionModelFromDomain(sess)
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(m).Error
}

// Clear removes the stored session
func (s *GormSessionStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Delete(&models.SessionModel{}, models.SessionRowID).Error
}
