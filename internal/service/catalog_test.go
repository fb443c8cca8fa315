package service

import (
	"context"
	"testing"
	"time"

	"storefront/internal/store/storetest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_CreateAndGet(t *testing.T) {
	db := storetest.New()
	s := NewCatalogService(db.Items(), nil, time.Minute)
	ctx := context.Background()

	item, err := s.Create(ctx, NewItem{Name: " Lamp ", Price: decimal.RequireFromString("19.999"), Quantity: 3, Category: "home"})
	require.NoError(t, err)
	assert.Equal(t, "Lamp", item.Name)
	assert.Equal(t, "20.00", item.Price.StringFixed(2))
	require.NotNil(t, item.Category)
	assert.Equal(t, "home", *item.Category)

	got, err := s.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	_, err = s.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCatalog_CreateValidation(t *testing.T) {
	s := NewCatalogService(storetest.New().Items(), nil, time.Minute)
	ctx := context.Background()

	cases := map[string]NewItem{
		"blank name":     {Name: "  ", Price: decimal.NewFromInt(1)},
		"negative price": {Name: "x", Price: decimal.NewFromInt(-1)},
		"negative stock": {Name: "x", Price: decimal.NewFromInt(1), Quantity: -1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Create(ctx, in)
			assert.ErrorIs(t, err, ErrInvalidItem)
		})
	}
}

func TestCatalog_ListAndLatest(t *testing.T) {
	db := storetest.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	db.Now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Minute) }
	s := NewCatalogService(db.Items(), nil, time.Minute)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		_, err := s.Create(ctx, NewItem{Name: name, Price: decimal.NewFromInt(1)})
		require.NoError(t, err)
	}

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 7)
	assert.Equal(t, "g", all[0].Name)
	assert.Equal(t, "a", all[6].Name)

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	require.Len(t, latest, LatestLimit)
	assert.Equal(t, "g", latest[0].Name)
	assert.Equal(t, "c", latest[4].Name)
}
