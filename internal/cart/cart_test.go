package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbites/cafeteria/internal/ledger"
	"github.com/campusbites/cafeteria/internal/logger"
	"github.com/campusbites/cafeteria/internal/menu"
	"github.com/campusbites/cafeteria/internal/sqlite"
	"github.com/campusbites/cafeteria/pkg/types"
)

func newTestCart(t *testing.T) (*Cart, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.Open(t.TempDir(), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store, logger.Nop()), store
}

func mustItem(t *testing.T, id string) menu.Item {
	t.Helper()
	item, err := menu.Get(id)
	require.NoError(t, err)
	return item
}

func TestAddAndTotal(t *testing.T) {
	c, _ := newTestCart(t)

	require.NoError(t, c.Add(mustItem(t, "s4"), 2, "medium", nil, ""))
	require.NoError(t, c.Add(mustItem(t, "b3"), 1, "", nil, "less sugar"))

	items, err := c.Items()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Samosa", items[0].Name)
	assert.Equal(t, int64(30), items[0].UnitPrice)
	assert.Equal(t, "less sugar", items[1].SpecialInstructions)

	total, err := c.Total()
	require.NoError(t, err)
	assert.Equal(t, int64(90), total)
}

func TestAddMergesSameItem(t *testing.T) {
	c, _ := newTestCart(t)

	require.NoError(t, c.Add(mustItem(t, "s4"), 1, "mild", nil, ""))
	require.NoError(t, c.Add(mustItem(t, "s4"), 2, "hot", nil, ""))

	items, err := c.Items()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "hot", items[0].SpiceLevel, "later customization wins")
}

func TestAddRejectsZeroQuantity(t *testing.T) {
	c, _ := newTestCart(t)
	err := c.Add(mustItem(t, "s4"), 0, "", nil, "")
	assert.ErrorIs(t, err, types.ErrInvalidOrder)
}

func TestUpdateQuantityAndRemove(t *testing.T) {
	c, _ := newTestCart(t)
	require.NoError(t, c.Add(mustItem(t, "s4"), 2, "", nil, ""))

	require.NoError(t, c.UpdateQuantity("s4", 5))
	items, err := c.Items()
	require.NoError(t, err)
	assert.Equal(t, 5, items[0].Quantity)

	require.NoError(t, c.Remove("s4"))
	items, err = c.Items()
	require.NoError(t, err)
	assert.Empty(t, items)

	err = c.UpdateQuantity("s4", 1)
	assert.ErrorIs(t, err, menu.ErrItemNotFound)
}

func TestCorruptCartIsCleared(t *testing.T) {
	c, store := newTestCart(t)

	require.NoError(t, store.SaveDocument(types.CartKey, []byte(`{"broken`)))

	items, err := c.Items()
	require.NoError(t, err)
	assert.Empty(t, items)

	value, err := store.LoadDocument(types.CartKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(value))
}

func TestCheckout(t *testing.T) {
	c, store := newTestCart(t)
	l, err := ledger.New(store, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, c.Add(mustItem(t, "m1"), 1, "", nil, ""))
	require.NoError(t, c.Add(mustItem(t, "b2"), 2, "", nil, ""))

	order, err := c.Checkout(l)
	require.NoError(t, err)
	assert.Equal(t, int64(150+2*85), order.Total)
	assert.Equal(t, types.StatusOrderReceived, order.CurrentStatus)
	assert.Len(t, order.Items, 2)

	items, err := c.Items()
	require.NoError(t, err)
	assert.Empty(t, items, "checkout clears the cart")

	got, ok := l.Get(order.OrderID)
	require.True(t, ok)
	assert.Equal(t, order, got)
}

func TestCheckoutEmptyCartFails(t *testing.T) {
	c, store := newTestCart(t)
	l, err := ledger.New(store, logger.Nop())
	require.NoError(t, err)

	_, err = c.Checkout(l)
	assert.ErrorIs(t, err, types.ErrInvalidOrder)
	assert.Equal(t, 0, l.Len())
}

func TestFavoritesToggle(t *testing.T) {
	c, _ := newTestCart(t)

	on, err := c.ToggleFavorite("b3")
	require.NoError(t, err)
	assert.True(t, on)

	ids, err := c.Favorites()
	require.NoError(t, err)
	assert.Equal(t, []string{"b3"}, ids)

	off, err := c.ToggleFavorite("b3")
	require.NoError(t, err)
	assert.False(t, off)

	ids, err = c.Favorites()
	require.NoError(t, err)
	assert.Empty(t, ids)
}
