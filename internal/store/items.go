package store

import (
	"context"
	"fmt"

	"storefront/internal/domain"

	"gorm.io/gorm"
)

// ItemStore is the gorm-backed catalog repository
type ItemStore struct {
	db *gorm.DB
}

// NewItemStore creates an ItemStore
func NewItemStore(db *gorm.DB) *ItemStore {
	return &ItemStore{db: db}
}

// Create inserts a new item
func (s *ItemStore) Create(ctx context.Context, item *domain.Item) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// FindByID retrieves an item by ID
func (s *ItemStore) FindByID(ctx context.Context, id uint) (*domain.Item, error) {
	var item domain.Item
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// List returns the whole catalog, newest first
func (s *ItemStore) List(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Latest returns the most recently inserted items by id
func (s *ItemStore) Latest(ctx context.Context, limit int) ([]domain.Item, error) {
	var items []domain.Item
	if err := s.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("latest items: %w", err)
	}
	return items, nil
}
