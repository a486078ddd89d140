// Order entity types. The JSON field names mirror the legacy storefront
// records so existing persisted data remains readable.
package types

import (
	"sort"
	"time"
)

// StatusUpdate is one recorded status transition. Immutable once created.
type StatusUpdate struct {
	Status    Status `json:"status"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// LineItem is one line of an order: a snapshot of a cart item at checkout.
type LineItem struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	UnitPrice           int64    `json:"price"`
	Quantity            int      `json:"quantity"`
	SpiceLevel          string   `json:"spiceLevel,omitempty"`
	SelectedOptions     []string `json:"selectedOptions,omitempty"`
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
}

// LineTotal returns the item price multiplied by its quantity.
func (li LineItem) LineTotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// Validate checks the line item construction rules.
func (li LineItem) Validate() error {
	if li.ID == "" || li.Name == "" {
		return ErrInvalidOrder
	}
	if li.Quantity < 1 {
		return ErrInvalidOrder
	}
	if li.UnitPrice < 0 {
		return ErrInvalidOrder
	}
	return nil
}

// Order is one placed order. Items and Total are a snapshot taken at
// checkout and never recomputed. CurrentStatus and StatusHistory advance
// through the ledger only.
type Order struct {
	OrderID       string         `json:"orderId"`
	Items         []LineItem     `json:"items"`
	Total         int64          `json:"total"`
	Timestamp     int64          `json:"timestamp"` // creation time, unix milliseconds
	CurrentStatus Status         `json:"currentStatus"`
	StatusHistory []StatusUpdate `json:"statusHistory"`
}

// NewOrder constructs an order from a cart snapshot with the initial
// OrderReceived history entry. Returns ErrInvalidOrder when the snapshot is
// empty, an item fails validation, or total does not equal the item sum.
func NewOrder(orderID string, items []LineItem, total int64) (*Order, error) {
	if orderID == "" {
		return nil, ErrInvalidID
	}
	if len(items) == 0 {
		return nil, ErrInvalidOrder
	}
	var sum int64
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		sum += item.LineTotal()
	}
	if total != sum {
		return nil, ErrInvalidOrder
	}

	now := time.Now().UnixMilli()
	return &Order{
		OrderID:       orderID,
		Items:         append([]LineItem(nil), items...),
		Total:         total,
		Timestamp:     now,
		CurrentStatus: StatusOrderReceived,
		StatusHistory: []StatusUpdate{{Status: StatusOrderReceived, Timestamp: now}},
	}, nil
}

// LastStatus returns the status of the most recent history entry.
// Falls back to CurrentStatus when the history is empty.
func (o *Order) LastStatus() Status {
	if len(o.StatusHistory) == 0 {
		return o.CurrentStatus
	}
	return o.StatusHistory[len(o.StatusHistory)-1].Status
}

// SortHistory re-sorts the status history ascending by timestamp. The sort
// is stable so simultaneous entries keep their arrival order.
func (o *Order) SortHistory() {
	sort.SliceStable(o.StatusHistory, func(i, j int) bool {
		return o.StatusHistory[i].Timestamp < o.StatusHistory[j].Timestamp
	})
}

// Clone returns a deep copy of the order. The ledger hands out clones so
// read-side callers can never mutate canonical state.
func (o *Order) Clone() *Order {
	cp := *o
	cp.Items = append([]LineItem(nil), o.Items...)
	cp.StatusHistory = append([]StatusUpdate(nil), o.StatusHistory...)
	return &cp
}
