package store

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entryColumns = []string{"item_id", "quantity", "name", "price", "image_url"}

func TestOrderStore_Create(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewOrderStore(db)

	mock.ExpectQuery(`INSERT INTO "orders"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))

	order := &domain.Order{UserID: 1, TotalAmount: decimal.NewFromInt(25), Items: domain.OrderItems{{ItemID: 1, Price: decimal.NewFromInt(25), Quantity: 1}}}
	require.NoError(t, s.Create(context.Background(), order))
	assert.Equal(t, uint(8), order.ID)
}

func TestOrderStore_DeleteByUser(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewOrderStore(db)

	mock.ExpectExec(`DELETE FROM "orders" WHERE user_id = \$1`).WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := s.DeleteByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestOrderStore_CheckoutEmptyCartRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewOrderStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM cart_lines AS c JOIN items i`).WillReturnRows(sqlmock.NewRows(entryColumns))
	mock.ExpectRollback()

	_, err := s.Checkout(context.Background(), 1, func([]domain.CartEntry) (*domain.Order, error) {
		t.Fatal("build must not run for an empty cart")
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderStore_CheckoutCreatesOrderAndClearsCart(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewOrderStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM cart_lines AS c JOIN items i`).
		WillReturnRows(sqlmock.NewRows(entryColumns).AddRow(5, 2, "Mug", "10.00", ""))
	mock.ExpectQuery(`INSERT INTO "orders"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(`DELETE FROM "cart_lines" WHERE user_id = \$1`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := s.Checkout(context.Background(), 1, func(entries []domain.CartEntry) (*domain.Order, error) {
		require.Len(t, entries, 1)
		items := domain.OrderItems{{ItemID: entries[0].ItemID, Price: entries[0].Price, Quantity: entries[0].Quantity}}
		return &domain.Order{UserID: 1, Items: items, TotalAmount: items.Total()}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint(11), order.ID)
	assert.Equal(t, "20", order.TotalAmount.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderStore_CheckoutBuildErrorRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewOrderStore(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM cart_lines AS c JOIN items i`).
		WillReturnRows(sqlmock.NewRows(entryColumns).AddRow(5, 2, "Mug", "10.00", ""))
	mock.ExpectRollback()

	_, err := s.Checkout(context.Background(), 1, func([]domain.CartEntry) (*domain.Order, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}
