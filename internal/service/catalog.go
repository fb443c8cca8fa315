package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/store"
	"storefront/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// LatestLimit is how many items the "latest" listing returns
const LatestLimit = 5

const (
	catalogAllKey    = "catalog:all"
	catalogLatestKey = "catalog:latest"
)

func catalogItemKey(id uint) string {
	return fmt.Sprintf("catalog:item:%d", id)
}

// CatalogService serves the product catalog. Reads go through Redis when a client is configured.
type CatalogService struct {
	items ItemRepository
	cache *redis.Client
	ttl   time.Duration
}

// NewCatalogService creates a CatalogService. A nil cache disables caching.
func NewCatalogService(items ItemRepository, cache *redis.Client, ttl time.Duration) *CatalogService {
	return &CatalogService{items: items, cache: cache, ttl: ttl}
}

// NewItem holds the fields of an item to add to the catalog
type NewItem struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
	ImageURL string
	Category string
}

// List returns every item, newest first
func (s *CatalogService) List(ctx context.Context) ([]domain.Item, error) {
	return cached(ctx, s.cache, catalogAllKey, s.ttl, func() ([]domain.Item, error) {
		return s.items.List(ctx)
	})
}

// Latest returns the most recently added items
func (s *CatalogService) Latest(ctx context.Context) ([]domain.Item, error) {
	return cached(ctx, s.cache, catalogLatestKey, s.ttl, func() ([]domain.Item, error) {
		return s.items.Latest(ctx, LatestLimit)
	})
}

// Get returns one item by id
func (s *CatalogService) Get(ctx context.Context, id uint) (*domain.Item, error) {
	return cached(ctx, s.cache, catalogItemKey(id), s.ttl, func() (*domain.Item, error) {
		item, err := s.items.FindByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return item, err
	})
}

// Create adds an item and drops the cached listings
func (s *CatalogService) Create(ctx context.Context, in NewItem) (*domain.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.IsNegative() || in.Quantity < 0 {
		return nil, ErrInvalidItem
	}
	item := &domain.Item{
		Name:     name,
		Price:    in.Price.Round(2),
		Stock:    in.Quantity,
		ImageURL: strings.TrimSpace(in.ImageURL),
	}
	if c := strings.TrimSpace(in.Category); c != "" {
		item.Category = &c
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, catalogAllKey, catalogLatestKey)
	return item, nil
}

// cached is a read-through helper. Redis failures are logged and fall back to load.
func cached[T any](ctx context.Context, rdb *redis.Client, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var v T
	hit, err := utils.GetCache(ctx, rdb, key, &v)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("Cache read failed")
	}
	if hit {
		return v, nil
	}
	v, err = load()
	if err != nil {
		return v, err
	}
	if err := utils.SetCache(ctx, rdb, key, v, ttl); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err}).Warn("Cache write failed")
	}
	return v, nil
}

func invalidate(ctx context.Context, rdb *redis.Client, keys ...string) {
	if err := utils.DeleteCache(ctx, rdb, keys...); err != nil {
		logrus.WithFields(logrus.Fields{"keys": keys, "error": err}).Warn("Cache invalidation failed")
	}
}
