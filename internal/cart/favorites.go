package cart

import (
	"encoding/json"
	"fmt"

	"github.com/campusbites/cafeteria/pkg/types"
)

// Favorites returns the favorited catalog item ids.
func (c *Cart) Favorites() ([]string, error) {
	value, err := c.store.LoadDocument(types.FavoritesKey)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal(value, &ids); err != nil {
		c.log.Error("storage_decode_failed", "discarding corrupt favorites data",
			map[string]any{"key": types.FavoritesKey}, err)
		if clearErr := c.store.SaveDocument(types.FavoritesKey, []byte("[]")); clearErr != nil {
			return nil, clearErr
		}
		return []string{}, nil
	}
	return ids, nil
}

// ToggleFavorite flips the favorite state of one item and reports the new
// state.
func (c *Cart) ToggleFavorite(itemID string) (bool, error) {
	ids, err := c.Favorites()
	if err != nil {
		return false, err
	}

	out := ids[:0]
	removed := false
	for _, id := range ids {
		if id == itemID {
			removed = true
			continue
		}
		out = append(out, id)
	}
	if !removed {
		out = append(out, itemID)
	}

	value, err := json.Marshal(out)
	if err != nil {
		return false, fmt.Errorf("encoding favorites: %w", err)
	}
	if err := c.store.SaveDocument(types.FavoritesKey, value); err != nil {
		return false, err
	}
	return !removed, nil
}
