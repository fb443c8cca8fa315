package service

import (
	"context"
	"errors"
	"math"
	"time"

	"storefront/internal/domain"
	"storefront/internal/store"

	"github.com/redis/go-redis/v9"
)

const ratingsAllKey = "ratings:all"

// RatingService records ratings and aggregates them per item
type RatingService struct {
	ratings RatingRepository
	items   ItemRepository
	cache   *redis.Client
	ttl     time.Duration
}

// NewRatingService creates a RatingService. A nil cache disables caching.
func NewRatingService(ratings RatingRepository, items ItemRepository, cache *redis.Client, ttl time.Duration) *RatingService {
	return &RatingService{ratings: ratings, items: items, cache: cache, ttl: ttl}
}

// Submit records or replaces the user's rating of an item and returns the
// item's new average, rounded to one decimal.
func (s *RatingService) Submit(ctx context.Context, userID, itemID uint, rating int) (float64, error) {
	if rating < 1 || rating > 5 {
		return 0, ErrInvalidRating
	}
	if _, err := s.items.FindByID(ctx, itemID); errors.Is(err, store.ErrNotFound) {
		return 0, ErrItemNotFound
	} else if err != nil {
		return 0, err
	}
	if err := s.ratings.Upsert(ctx, &domain.Rating{ItemID: itemID, UserID: userID, Rating: rating}); err != nil {
		return 0, err
	}
	invalidate(ctx, s.cache, ratingsAllKey)
	avg, err := s.ratings.Average(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return roundTenth(avg), nil
}

// ListForItem returns the summary of one item, keyed by item id. Unrated items give an empty map.
func (s *RatingService) ListForItem(ctx context.Context, itemID uint) (map[uint]*domain.RatingSummary, error) {
	rows, err := s.ratings.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return Summarize(rows), nil
}

// ListAll returns summaries for every rated item
func (s *RatingService) ListAll(ctx context.Context) (map[uint]*domain.RatingSummary, error) {
	return cached(ctx, s.cache, ratingsAllKey, s.ttl, func() (map[uint]*domain.RatingSummary, error) {
		rows, err := s.ratings.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return Summarize(rows), nil
	})
}

// Summarize folds joined rating rows into per-item summaries. Averages are the
// unrounded mean; only Submit rounds.
func Summarize(rows []domain.RatingView) map[uint]*domain.RatingSummary {
	out := make(map[uint]*domain.RatingSummary)
	sums := make(map[uint]int)
	for _, r := range rows {
		sum, ok := out[r.ItemID]
		if !ok {
			sum = &domain.RatingSummary{Ratings: []domain.RatingEntry{}}
			out[r.ItemID] = sum
		}
		sum.Count++
		sum.Ratings = append(sum.Ratings, domain.RatingEntry{UserID: r.UserID, Username: r.Username, Rating: r.Rating})
		sums[r.ItemID] += r.Rating
	}
	for id, sum := range out {
		sum.Average = float64(sums[id]) / float64(sum.Count)
	}
	return out
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
