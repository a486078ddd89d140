// Package cart implements the shopping cart and favorites, persisted under
// their own store keys. The cart owns those keys the same way the ledger
// owns the orders key; checkout is the only point where cart state crosses
// into the lifecycle core, as an immutable line-item snapshot.
package cart

import (
	"encoding/json"
	"fmt"

	"github.com/campusbites/cafeteria/internal/ledger"
	"github.com/campusbites/cafeteria/internal/logger"
	"github.com/campusbites/cafeteria/internal/menu"
	"github.com/campusbites/cafeteria/pkg/types"
)

// Cart reads and writes the persisted cart and favorites documents.
type Cart struct {
	store types.Store
	log   logger.Logger
}

// New builds a Cart over the given store.
func New(store types.Store, log logger.Logger) *Cart {
	if log == nil {
		log = logger.Nop()
	}
	return &Cart{store: store, log: log}
}

// Items returns the current cart content. A corrupt persisted cart is
// cleared and treated as empty, mirroring the orders key policy.
func (c *Cart) Items() ([]types.LineItem, error) {
	value, err := c.store.LoadDocument(types.CartKey)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return []types.LineItem{}, nil
	}

	var items []types.LineItem
	if err := json.Unmarshal(value, &items); err != nil {
		c.log.Error("storage_decode_failed", "discarding corrupt cart data",
			map[string]any{"key": types.CartKey}, err)
		if clearErr := c.store.SaveDocument(types.CartKey, []byte("[]")); clearErr != nil {
			return nil, clearErr
		}
		return []types.LineItem{}, nil
	}
	return items, nil
}

// Add puts a catalog item in the cart. Adding an item already present
// merges the quantities and replaces the customization.
func (c *Cart) Add(item menu.Item, quantity int, spiceLevel string, options []string, instructions string) error {
	if quantity < 1 {
		return types.ErrInvalidOrder
	}

	items, err := c.Items()
	if err != nil {
		return err
	}

	merged := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += quantity
			items[i].SpiceLevel = spiceLevel
			items[i].SelectedOptions = options
			items[i].SpecialInstructions = instructions
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, types.LineItem{
			ID:                  item.ID,
			Name:                item.Name,
			UnitPrice:           item.Price,
			Quantity:            quantity,
			SpiceLevel:          spiceLevel,
			SelectedOptions:     options,
			SpecialInstructions: instructions,
		})
	}
	return c.save(items)
}

// UpdateQuantity sets the quantity for one cart line. Zero removes it.
func (c *Cart) UpdateQuantity(itemID string, quantity int) error {
	if quantity < 0 {
		return types.ErrInvalidOrder
	}

	items, err := c.Items()
	if err != nil {
		return err
	}

	out := items[:0]
	found := false
	for _, li := range items {
		if li.ID == itemID {
			found = true
			if quantity == 0 {
				continue
			}
			li.Quantity = quantity
		}
		out = append(out, li)
	}
	if !found {
		return menu.ErrItemNotFound
	}
	return c.save(out)
}

// Remove deletes one cart line.
func (c *Cart) Remove(itemID string) error {
	return c.UpdateQuantity(itemID, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() error {
	return c.save(nil)
}

// Total returns the sum over line totals of the current cart.
func (c *Cart) Total() (int64, error) {
	items, err := c.Items()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, li := range items {
		total += li.LineTotal()
	}
	return total, nil
}

// Checkout snapshots the cart into a new order on the ledger, then clears
// the cart. An empty cart fails with ErrInvalidOrder and the cart is left
// untouched.
func (c *Cart) Checkout(l *ledger.Ledger) (*types.Order, error) {
	items, err := c.Items()
	if err != nil {
		return nil, err
	}

	var total int64
	for _, li := range items {
		total += li.LineTotal()
	}

	order, err := l.PlaceOrder(items, total)
	if err != nil {
		return nil, err
	}

	if err := c.Clear(); err != nil {
		return nil, fmt.Errorf("clearing cart after checkout: %w", err)
	}
	return order, nil
}

func (c *Cart) save(items []types.LineItem) error {
	if items == nil {
		items = []types.LineItem{}
	}
	value, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	return c.store.SaveDocument(types.CartKey, value)
}
