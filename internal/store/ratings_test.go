package store

import (
	"context"
	"testing"

	"storefront/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingStore_UpsertUsesConflictClause(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRatingStore(db)

	mock.ExpectQuery(`(?s)INSERT INTO "ratings".*ON CONFLICT \("item_id","user_id"\) DO UPDATE SET`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

	r := &domain.Rating{ItemID: 5, UserID: 1, Rating: 4}
	require.NoError(t, s.Upsert(context.Background(), r))
	assert.False(t, r.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingStore_Average(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRatingStore(db)

	mock.ExpectQuery(`SELECT AVG\(rating\) FROM "ratings" WHERE item_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(4.5))

	avg, err := s.Average(context.Background(), 5)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, avg, 1e-9)
}

func TestRatingStore_AverageUnrated(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRatingStore(db)

	mock.ExpectQuery(`SELECT AVG\(rating\) FROM "ratings"`).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(nil))

	avg, err := s.Average(context.Background(), 5)
	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestRatingStore_ListByItem(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewRatingStore(db)

	mock.ExpectQuery(`FROM ratings AS r JOIN users u ON u.id = r.user_id WHERE r.item_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "item_id", "user_id", "rating", "username"}).
			AddRow(1, 5, 1, 4, "ann").
			AddRow(2, 5, 2, 2, "bob"))

	rows, err := s.ListByItem(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "bob", rows[1].Username)
}
