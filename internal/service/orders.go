package service

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"storefront/internal/store"
)

// OrderService places and lists orders
type OrderService struct {
	orders OrderRepository
}

// NewOrderService creates an OrderService
func NewOrderService(orders OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// Create stores the submitted lines as an order. Prices are taken as submitted.
func (s *OrderService) Create(ctx context.Context, userID uint, shipping domain.Shipping, items []domain.OrderItem) (*domain.Order, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, it := range items {
		if it.Quantity < 1 || it.Price.IsNegative() {
			return nil, ErrInvalidOrderItem
		}
	}
	order := newOrder(userID, shipping, items)
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Checkout turns the user's cart into an order at current catalog prices and
// empties the cart in the same transaction.
func (s *OrderService) Checkout(ctx context.Context, userID uint, shipping domain.Shipping) (*domain.Order, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	order, err := s.orders.Checkout(ctx, userID, func(entries []domain.CartEntry) (*domain.Order, error) {
		items := make([]domain.OrderItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, domain.OrderItem{
				ItemID:   e.ItemID,
				Name:     e.Name,
				Price:    e.Price,
				Quantity: e.Quantity,
				ImageURL: e.ImageURL,
			})
		}
		return newOrder(userID, shipping, items), nil
	})
	if errors.Is(err, store.ErrEmptyCart) {
		return nil, ErrEmptyOrder
	}
	return order, err
}

// ListForUser returns the user's orders, newest first
func (s *OrderService) ListForUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ClearForUser deletes every order of the user
func (s *OrderService) ClearForUser(ctx context.Context, userID uint) (int64, error) {
	return s.orders.DeleteByUser(ctx, userID)
}

func newOrder(userID uint, shipping domain.Shipping, items []domain.OrderItem) *domain.Order {
	lines := domain.OrderItems(items)
	return &domain.Order{
		UserID:      userID,
		Shipping:    shipping,
		TotalAmount: lines.Total(),
		Items:       lines,
	}
}
