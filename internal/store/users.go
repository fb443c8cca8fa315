package store

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain"

	"gorm.io/gorm"
)

// UserStore is the gorm-backed account repository
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a UserStore
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new account. ErrDuplicate when the email is taken.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

// FindByID retrieves an account by ID
func (s *UserStore) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByEmail retrieves an account by email
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// AdminExists reports whether any account holds the admin role
func (s *UserStore) AdminExists(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("role = ?", domain.RoleAdmin).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return count > 0, nil
}

// SetResetCode stores a pending reset code for the user
func (s *UserStore) SetResetCode(ctx context.Context, userID uint, code string, expires time.Time) error {
	return s.updateFields(ctx, userID, map[string]any{"reset_code": code, "reset_expires": expires})
}

// ClearResetCode drops any pending reset code
func (s *UserStore) ClearResetCode(ctx context.Context, userID uint) error {
	return s.updateFields(ctx, userID, map[string]any{"reset_code": nil, "reset_expires": nil})
}

// UpdatePassword stores a new hash and clears the reset code in the same statement
func (s *UserStore) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	return s.updateFields(ctx, userID, map[string]any{"password": hash, "reset_code": nil, "reset_expires": nil})
}

func (s *UserStore) updateFields(ctx context.Context, userID uint, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update user %d: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
