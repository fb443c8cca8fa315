// Package service implements the storefront's business rules on top of the
// repositories in internal/store.
package service

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrAdminExists        = errors.New("admin already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetCode   = errors.New("invalid or expired code")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrInvalidItem        = errors.New("name and a non-negative price are required")
	ErrItemNotFound       = errors.New("product not found")
	ErrCartLineNotFound   = errors.New("item not found in cart")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrInvalidOrderItem   = errors.New("order items need a quantity of at least 1 and a non-negative price")
)

// UserRepository persists accounts
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	AdminExists(ctx context.Context) (bool, error)
	SetResetCode(ctx context.Context, userID uint, code string, expires time.Time) error
	ClearResetCode(ctx context.Context, userID uint) error
	UpdatePassword(ctx context.Context, userID uint, hash string) error
}

// ItemRepository persists catalog items
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	FindByID(ctx context.Context, id uint) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	Latest(ctx context.Context, limit int) ([]domain.Item, error)
}

// CartRepository persists cart lines
type CartRepository interface {
	Upsert(ctx context.Context, line domain.CartLine) (*domain.CartLine, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.CartEntry, error)
	Delete(ctx context.Context, userID, itemID uint) error
	UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*domain.CartLine, error)
	Clear(ctx context.Context, userID uint) ([]domain.CartLine, error)
}

// OrderRepository persists orders
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID uint) ([]domain.Order, error)
	DeleteByUser(ctx context.Context, userID uint) (int64, error)
	Checkout(ctx context.Context, userID uint, build func([]domain.CartEntry) (*domain.Order, error)) (*domain.Order, error)
}

// RatingRepository persists ratings
type RatingRepository interface {
	Upsert(ctx context.Context, rating *domain.Rating) error
	Average(ctx context.Context, itemID uint) (float64, error)
	ListByItem(ctx context.Context, itemID uint) ([]domain.RatingView, error)
	ListAll(ctx context.Context) ([]domain.RatingView, error)
}
