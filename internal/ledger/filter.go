package ledger

import (
	"sort"
	"strings"

	"github.com/campusbites/cafeteria/pkg/types"
)

// SortOrder selects the creation-time ordering for read-side projections.
type SortOrder string

const (
	SortNewestFirst SortOrder = "desc"
	SortOldestFirst SortOrder = "asc"
)

// ListFiltered returns clones of the orders matching the query and status
// filter, sorted by creation timestamp. The query matches case-insensitive
// substrings of the order id or any item name; empty query and empty status
// match everything. Pure projection: identical ledger state yields
// identical results.
func (l *Ledger) ListFiltered(query string, status types.Status, order SortOrder) []*types.Order {
	l.mu.Lock()
	defer l.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]*types.Order, 0, len(l.orders))
	for _, o := range l.orders {
		if status != "" && o.CurrentStatus != status {
			continue
		}
		if query != "" && !matchesQuery(o, query) {
			continue
		}
		out = append(out, o.Clone())
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == SortOldestFirst {
			return out[i].Timestamp < out[j].Timestamp
		}
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

func matchesQuery(o *types.Order, query string) bool {
	if strings.Contains(strings.ToLower(o.OrderID), query) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			return true
		}
	}
	return false
}
