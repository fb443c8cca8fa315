package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"storefront/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingStore is the gorm-backed rating repository
type RatingStore struct {
	db *gorm.DB
}

// NewRatingStore creates a RatingStore
func NewRatingStore(db *gorm.DB) *RatingStore {
	return &RatingStore{db: db}
}

// Upsert keeps one rating per (item, user); a re-rate replaces the value and the timestamp
func (s *RatingStore) Upsert(ctx context.Context, rating *domain.Rating) error {
	rating.CreatedAt = time.Now()
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "created_at"}),
	}).Create(rating).Error
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// Average returns the mean rating of an item, 0 when unrated
func (s *RatingStore) Average(ctx context.Context, itemID uint) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.WithContext(ctx).Model(&domain.Rating{}).
		Select("AVG(rating)").
		Where("item_id = ?", itemID).
		Row().Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	return avg.Float64, nil
}

// ListByItem returns an item's ratings joined with usernames
func (s *RatingStore) ListByItem(ctx context.Context, itemID uint) ([]domain.RatingView, error) {
	return s.list(s.db.WithContext(ctx).Where("r.item_id = ?", itemID))
}

// ListAll returns every rating joined with usernames
func (s *RatingStore) ListAll(ctx context.Context) ([]domain.RatingView, error) {
	return s.list(s.db.WithContext(ctx))
}

func (s *RatingStore) list(db *gorm.DB) ([]domain.RatingView, error) {
	rows := []domain.RatingView{}
	err := db.Table("ratings AS r").
		Select("r.id, r.item_id, r.user_id, r.rating, u.username").
		Joins("JOIN users u ON u.id = r.user_id").
		Order("r.item_id, r.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return rows, nil
}
