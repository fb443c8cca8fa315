package store

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartStore is the gorm-backed cart repository
type CartStore struct {
	db *gorm.DB
}

// NewCartStore creates a CartStore
func NewCartStore(db *gorm.DB) *CartStore {
	return &CartStore{db: db}
}

// Upsert inserts the line or adds its quantity to the existing (user, item) row.
// The merge is a single INSERT .. ON CONFLICT statement, so concurrent adds never lose increments.
func (s *CartStore) Upsert(ctx context.Context, line domain.CartLine) (*domain.CartLine, error) {
	line.UpdatedAt = time.Now()
	db := s.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("cart_lines.quantity + ?", line.Quantity),
			"image_url":  line.ImageURL,
			"updated_at": line.UpdatedAt,
		}),
	}).Create(&line).Error
	if err != nil {
		return nil, fmt.Errorf("upsert cart line: %w", err)
	}
	return s.find(db, line.UserID, line.ItemID)
}

// ListByUser returns the user's lines joined with item details
func (s *CartStore) ListByUser(ctx context.Context, userID uint) ([]domain.CartEntry, error) {
	entries, err := listEntries(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return entries, nil
}

// Delete removes one cart line. ErrNotFound when the line does not exist.
func (s *CartStore) Delete(ctx context.Context, userID, itemID uint) error {
	res := s.db.WithContext(ctx).Where("user_id = ? AND item_id = ?", userID, itemID).Delete(&domain.CartLine{})
	if res.Error != nil {
		return fmt.Errorf("delete cart line: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateQuantity overwrites the quantity of an existing line
func (s *CartStore) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*domain.CartLine, error) {
	db := s.db.WithContext(ctx)
	res := db.Model(&domain.CartLine{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Updates(map[string]any{"quantity": quantity, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, fmt.Errorf("update cart line: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.find(db, userID, itemID)
}

// Clear removes every line of the user and returns what was removed
func (s *CartStore) Clear(ctx context.Context, userID uint) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Find(&lines).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&domain.CartLine{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}
	return lines, nil
}

func (s *CartStore) find(db *gorm.DB, userID, itemID uint) (*domain.CartLine, error) {
	var out domain.CartLine
	if err := db.Where("user_id = ? AND item_id = ?", userID, itemID).First(&out).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func listEntries(db *gorm.DB, userID uint) ([]domain.CartEntry, error) {
	entries := []domain.CartEntry{}
	err := db.Table("cart_lines AS c").
		Select("c.item_id, c.quantity, i.name, i.price, i.image_url").
		Joins("JOIN items i ON c.item_id = i.id").
		Where("c.user_id = ?", userID).
		Order("c.item_id").
		Scan(&entries).Error
	return entries, err
}
