package service

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"storefront/internal/store"
)

// CartService manages per-user shopping carts
type CartService struct {
	carts CartRepository
	items ItemRepository
}

// NewCartService creates a CartService
func NewCartService(carts CartRepository, items ItemRepository) *CartService {
	return &CartService{carts: carts, items: items}
}

// Add puts quantity units of an item in the cart, merging with an existing line
func (s *CartService) Add(ctx context.Context, userID, itemID uint, quantity int) (*domain.CartLine, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.items.FindByID(ctx, itemID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrItemNotFound
	} else if err != nil {
		return nil, err
	}
	return s.carts.Upsert(ctx, domain.CartLine{
		UserID:   userID,
		ItemID:   itemID,
		Quantity: quantity,
		ImageURL: item.ImageURL,
	})
}

// Get returns the user's cart lines joined with their items
func (s *CartService) Get(ctx context.Context, userID uint) ([]domain.CartEntry, error) {
	return s.carts.ListByUser(ctx, userID)
}

// Remove deletes one line from the cart
func (s *CartService) Remove(ctx context.Context, userID, itemID uint) error {
	return cartLineErr(s.carts.Delete(ctx, userID, itemID))
}

// Update sets the quantity of an existing line
func (s *CartService) Update(ctx context.Context, userID, itemID uint, quantity int) (*domain.CartLine, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	line, err := s.carts.UpdateQuantity(ctx, userID, itemID, quantity)
	if err != nil {
		return nil, cartLineErr(err)
	}
	return line, nil
}

// Clear empties the cart and returns the removed lines
func (s *CartService) Clear(ctx context.Context, userID uint) ([]domain.CartLine, error) {
	return s.carts.Clear(ctx, userID)
}

func cartLineErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrCartLineNotFound
	}
	return err
}
