package persistence

import (
	"context"

	"github.com/canteen/client/internal/domain/cart"
	"github.com/canteen/client/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCartStore implements cart.Store using GORM
type GormCartStore struct {
	db *gorm.DB
}

// NewGormCartStore creates a new GormCartStore
func NewGormCartStore(db *gorm.DB) *GormCartStore {
	return &GormCartStore{db: db}
}

// LoadCart returns the saved guest cart ordered by item ID
func (s *GormCartStore) LoadCart(ctx context.Context) ([]cart.Line, error) {
	var rows []models.CartLineModel
	if err := s.db.WithContext(ctx).Where("quantity > 0").Order("item_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	lines := make([]cart.Line, 0, len(rows))
	for i := range rows {
		lines = append(lines, rows[i].ToDomain())
	}
	return lines, nil
}

// SaveCart replaces the saved guest cart with lines
func (s *GormCartStore) SaveCart(ctx context.Context, lines []cart.Line) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CartLineModel{}).Error; err != nil {
			return err
		}
		rows := make([]*models.CartLineModel, 0, len(lines))
		for _, l := range lines {
			if l.Quantity <= 0 {
				continue
			}
			rows = append(rows, models.CartLineModelFromDomain(l))
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(rows).Error
	})
}

// LoadNotes returns the saved notes of a signed-in cart keyed by item ID
func (s *GormCartStore) LoadNotes(ctx context.Context) (map[string]string, error) {
	var rows []models.CartNoteModel
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	notes := make(map[string]string, len(rows))
	for _, r := range rows {
		notes[r.ItemID] = r.Notes
	}
	return notes, nil
}

// SaveNotes replaces the saved notes with notes. Empty values are not kept.
func (s *GormCartStore) SaveNotes(ctx context.Context, notes map[string]string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CartNoteModel{}).Error; err != nil {
			return err
		}
		rows := make([]*models.CartNoteModel, 0, len(notes))
		for id, n := range notes {
			if n == "" {
				continue
			}
			rows = append(rows, &models.CartNoteModel{ItemID: id, Notes: n})
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(rows).Error
	})
}
