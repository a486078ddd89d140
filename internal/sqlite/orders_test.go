package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbites/cafeteria/pkg/types"
)

func TestResolveOrderMigration(t *testing.T) {
	tests := []struct {
		name        string
		raw         orderJSON
		wantCurrent types.Status
		wantHistory []types.StatusUpdate
	}{
		{
			name: "legacy active order gets single history entry",
			raw: orderJSON{
				OrderID:   "ORD-100001",
				Timestamp: 5000,
				Status:    types.StatusPreparing,
			},
			wantCurrent: types.StatusPreparing,
			wantHistory: []types.StatusUpdate{
				{Status: types.StatusPreparing, Timestamp: 5000},
			},
		},
		{
			name: "legacy order without status defaults to order received",
			raw: orderJSON{
				OrderID:   "ORD-100002",
				Timestamp: 5000,
			},
			wantCurrent: types.StatusOrderReceived,
			wantHistory: []types.StatusUpdate{
				{Status: types.StatusOrderReceived, Timestamp: 5000},
			},
		},
		{
			name: "legacy cancelled order synthesizes received then cancelled",
			raw: orderJSON{
				OrderID:   "ORD-100003",
				Timestamp: 5000,
				Status:    types.StatusCancelled,
			},
			wantCurrent: types.StatusCancelled,
			wantHistory: []types.StatusUpdate{
				{Status: types.StatusOrderReceived, Timestamp: 5000},
				{Status: types.StatusCancelled, Timestamp: 6000},
			},
		},
		{
			name: "current shape passes through untouched",
			raw: orderJSON{
				OrderID:       "ORD-100004",
				Timestamp:     5000,
				CurrentStatus: types.StatusReadyForPickup,
				StatusHistory: []types.StatusUpdate{
					{Status: types.StatusOrderReceived, Timestamp: 5000},
					{Status: types.StatusPreparing, Timestamp: 6000},
					{Status: types.StatusReadyForPickup, Timestamp: 7000},
				},
			},
			wantCurrent: types.StatusReadyForPickup,
			wantHistory: []types.StatusUpdate{
				{Status: types.StatusOrderReceived, Timestamp: 5000},
				{Status: types.StatusPreparing, Timestamp: 6000},
				{Status: types.StatusReadyForPickup, Timestamp: 7000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := resolveOrder(tt.raw)
			assert.Equal(t, tt.wantCurrent, order.CurrentStatus)
			assert.Equal(t, tt.wantHistory, order.StatusHistory)
		})
	}
}

func TestResolveOrderMigrationIsIdempotent(t *testing.T) {
	legacy := orderJSON{
		OrderID:   "ORD-100005",
		Timestamp: 5000,
		Status:    types.StatusCancelled,
	}

	once := resolveOrder(legacy)
	twice := resolveOrder(orderJSON{
		OrderID:       once.OrderID,
		Timestamp:     once.Timestamp,
		CurrentStatus: once.CurrentStatus,
		StatusHistory: once.StatusHistory,
	})

	assert.Equal(t, once, twice, "migrating a migrated record must change nothing")
}

func TestLoadOrdersMissingKey(t *testing.T) {
	store := openTestStore(t)

	orders, err := store.LoadOrders()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestLoadOrdersMigratesLegacyRecords(t *testing.T) {
	store := openTestStore(t)

	legacy := `[
		{"orderId":"ORD-100001","items":[{"id":"samosa","name":"Samosa","price":30,"quantity":2}],"total":60,"timestamp":5000,"status":"Order Received"},
		{"orderId":"ORD-100002","items":[{"id":"chai","name":"Masala Chai","price":25,"quantity":1}],"total":25,"timestamp":8000,"status":"Cancelled"}
	]`
	require.NoError(t, store.SaveDocument(types.OrdersKey, []byte(legacy)))

	orders, err := store.LoadOrders()
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, types.StatusOrderReceived, orders[0].CurrentStatus)
	require.Len(t, orders[0].StatusHistory, 1)
	assert.Equal(t, int64(5000), orders[0].StatusHistory[0].Timestamp)

	assert.Equal(t, types.StatusCancelled, orders[1].CurrentStatus)
	require.Len(t, orders[1].StatusHistory, 2)
	assert.Equal(t, types.StatusOrderReceived, orders[1].StatusHistory[0].Status)
	assert.Equal(t, int64(9000), orders[1].StatusHistory[1].Timestamp)
}

func TestLoadOrdersClearsCorruptValue(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveDocument(types.OrdersKey, []byte(`{"not":"an array`)))

	orders, err := store.LoadOrders()
	require.NoError(t, err, "corruption is recovered, not surfaced")
	assert.Empty(t, orders)

	value, err := store.LoadDocument(types.OrdersKey)
	require.NoError(t, err)
	assert.Nil(t, value, "corrupt key must be cleared")
}

func TestSaveOrdersRoundTrip(t *testing.T) {
	store := openTestStore(t)

	order, err := types.NewOrder("ORD-100001", []types.LineItem{
		{ID: "thali", Name: "Veg Thali", UnitPrice: 120, Quantity: 1, SpiceLevel: "medium"},
	}, 120)
	require.NoError(t, err)

	require.NoError(t, store.SaveOrders([]*types.Order{order}))

	loaded, err := store.LoadOrders()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, order, loaded[0])
}

func TestSaveOrdersNilPersistsEmptyArray(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveOrders(nil))

	value, err := store.LoadDocument(types.OrdersKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(value))
}
