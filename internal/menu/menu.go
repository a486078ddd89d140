// Package menu is the static food catalog. It is a read-only collaborator
// of the cart and ledger: the lifecycle core only ever sees line-item
// snapshots, never catalog entries.
package menu

import (
	"errors"
	"strings"
)

// Item is one orderable catalog entry.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Veg         bool   `json:"isVeg"`
}

// Categories in display order.
var Categories = []string{"Snacks", "Main Course", "Beverages"}

// ErrItemNotFound is returned when a catalog lookup misses.
var ErrItemNotFound = errors.New("menu item not found")

var catalog = []Item{
	{ID: "s1", Name: "French Fries", Description: "Crispy golden fries served with ketchup", Price: 80, Category: "Snacks", Veg: true},
	{ID: "s2", Name: "Veg Sandwich", Description: "Fresh vegetables stacked between toasted bread", Price: 70, Category: "Snacks", Veg: true},
	{ID: "s3", Name: "Chicken Nuggets", Description: "8 pieces of tender chicken nuggets with dip", Price: 120, Category: "Snacks", Veg: false},
	{ID: "s4", Name: "Samosa", Description: "Traditional Indian snack filled with spiced potatoes", Price: 30, Category: "Snacks", Veg: true},
	{ID: "m1", Name: "Veg Biryani", Description: "Fragrant rice cooked with mixed vegetables and spices", Price: 150, Category: "Main Course", Veg: true},
	{ID: "m2", Name: "Chicken Curry with Rice", Description: "Spicy chicken curry served with steamed rice", Price: 180, Category: "Main Course", Veg: false},
	{ID: "m3", Name: "Pasta Alfredo", Description: "Creamy pasta with parmesan cheese and herbs", Price: 160, Category: "Main Course", Veg: true},
	{ID: "m4", Name: "Butter Chicken", Description: "Rich tomato-based curry with tender chicken pieces", Price: 200, Category: "Main Course", Veg: false},
	{ID: "b1", Name: "Cold Coffee", Description: "Chilled coffee blended with milk and ice cream", Price: 90, Category: "Beverages", Veg: true},
	{ID: "b2", Name: "Mango Shake", Description: "Thick shake made with ripe mangoes", Price: 85, Category: "Beverages", Veg: true},
	{ID: "b3", Name: "Masala Chai", Description: "Spiced Indian tea brewed with milk", Price: 30, Category: "Beverages", Veg: true},
	{ID: "b4", Name: "Fresh Lime Soda", Description: "Refreshing soda with fresh lime juice", Price: 50, Category: "Beverages", Veg: true},
}

// Items returns the full catalog. The returned slice is a copy.
func Items() []Item {
	out := make([]Item, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns the catalog entry with the given id.
func Get(id string) (Item, error) {
	for _, item := range catalog {
		if item.ID == id {
			return item, nil
		}
	}
	return Item{}, ErrItemNotFound
}

// Search returns catalog entries whose name or description contains the
// query, optionally restricted to one category. Matching is
// case-insensitive; an empty query matches everything.
func Search(query, category string) []Item {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []Item
	for _, item := range catalog {
		if category != "" && !strings.EqualFold(item.Category, category) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Name), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}
