package store

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"gorm.io/gorm"
)

// ErrEmptyCart is returned by Checkout when the user has nothing in the cart
var ErrEmptyCart = errors.New("cart is empty")

// OrderStore is the gorm-backed order repository
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore creates an OrderStore
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Create inserts an order with its line snapshot
func (s *OrderStore) Create(ctx context.Context, order *domain.Order) error {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// ListByUser returns the user's orders, newest first
func (s *OrderStore) ListByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	orders := []domain.Order{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// DeleteByUser removes all of the user's orders and reports how many went
func (s *OrderStore) DeleteByUser(ctx context.Context, userID uint) (int64, error) {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Order{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete orders: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Checkout reads the cart, lets build turn it into an order, stores the order
// and empties the cart. All of it happens in one transaction.
func (s *OrderStore) Checkout(ctx context.Context, userID uint, build func([]domain.CartEntry) (*domain.Order, error)) (*domain.Order, error) {
	var order *domain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entries, err := listEntries(tx, userID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return ErrEmptyCart
		}
		order, err = build(entries)
		if err != nil {
			return err
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&domain.CartLine{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	return order, nil
}
