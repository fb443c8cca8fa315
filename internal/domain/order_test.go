package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderItems_Total(t *testing.T) {
	items := OrderItems{
		{ItemID: 1, Price: decimal.NewFromInt(10), Quantity: 2},
		{ItemID: 2, Price: decimal.NewFromInt(5), Quantity: 1},
	}
	assert.True(t, items.Total().Equal(decimal.NewFromInt(25)), "got %s", items.Total())
}

func TestOrderItems_TotalKeepsCents(t *testing.T) {
	items := OrderItems{
		{Price: decimal.RequireFromString("0.10"), Quantity: 3},
		{Price: decimal.RequireFromString("19.99"), Quantity: 1},
	}
	assert.Equal(t, "20.29", items.Total().StringFixed(2))
}

func TestOrderItems_ValueScan(t *testing.T) {
	items := OrderItems{{ItemID: 7, Name: "Lamp", Price: decimal.RequireFromString("12.50"), Quantity: 2}}

	v, err := items.Value()
	require.NoError(t, err)

	var got OrderItems
	require.NoError(t, got.Scan([]byte(v.(string))))
	require.Len(t, got, 1)
	assert.Equal(t, uint(7), got[0].ItemID)
	assert.Equal(t, "Lamp", got[0].Name)
	assert.True(t, got[0].Price.Equal(decimal.RequireFromString("12.5")))

	var fromString OrderItems
	require.NoError(t, fromString.Scan(v))
	assert.Len(t, fromString, 1)
}

func TestOrderItems_ScanNilAndBadType(t *testing.T) {
	var items OrderItems
	require.NoError(t, items.Scan(nil))
	assert.Empty(t, items)

	assert.Error(t, items.Scan(42))
}

func TestOrderItems_NilValueIsEmptyArray(t *testing.T) {
	var items OrderItems
	v, err := items.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}
