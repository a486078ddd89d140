// Package ledger holds the canonical order list. The ledger is the single
// writer of the persisted orders key: clocks and commands propose
// transitions, and the dedup and re-sort rules here make applying them
// commutative and idempotent, so independent producers can never fork the
// history.
package ledger

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/campusbites/cafeteria/internal/logger"
	"github.com/campusbites/cafeteria/pkg/types"
)

// orderIDPrefix and the six random digits match the id format the
// storefront has always produced.
const orderIDPrefix = "ORD-"

// Ledger owns the in-memory canonical order list and its persistence.
// Orders are kept most-recent-first.
type Ledger struct {
	mu     sync.Mutex
	store  types.Store
	log    logger.Logger
	orders []*types.Order
}

// New loads the persisted orders (migrating legacy shapes at the store
// boundary) and returns a ready ledger.
func New(store types.Store, log logger.Logger) (*Ledger, error) {
	if log == nil {
		log = logger.Nop()
	}
	orders, err := store.LoadOrders()
	if err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}
	return &Ledger{store: store, log: log, orders: orders}, nil
}

// PlaceOrder snapshots the given items into a new order with a fresh id and
// appends it at the head. This is the checkout entry point.
func (l *Ledger) PlaceOrder(items []types.LineItem, total int64) (*types.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	orderID := l.newOrderIDLocked()
	order, err := types.NewOrder(orderID, items, total)
	if err != nil {
		return nil, err
	}

	if err := l.appendLocked(order); err != nil {
		return nil, err
	}

	l.log.Info("order_placed", "order placed",
		map[string]any{"order_id": order.OrderID, "total": order.Total})
	return order.Clone(), nil
}

// Append inserts a fully constructed order at the head and persists. An id
// already present in the ledger is rejected with ErrDuplicateOrder rather
// than silently overwritten.
func (l *Ledger) Append(order *types.Order) error {
	if order == nil || order.OrderID == "" {
		return types.ErrInvalidOrder
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.appendLocked(order.Clone())
}

func (l *Ledger) appendLocked(order *types.Order) error {
	if l.findLocked(order.OrderID) != nil {
		return types.ErrDuplicateOrder
	}
	l.orders = append([]*types.Order{order}, l.orders...)
	if err := l.store.SaveOrders(l.orders); err != nil {
		l.orders = l.orders[1:]
		return fmt.Errorf("persisting orders: %w", err)
	}
	return nil
}

// ApplyTransition applies one status transition to the named order.
//
// A missing order is a benign race (cleared elsewhere) and a silent no-op.
// An order already in a terminal state absorbs the transition unchanged. A
// status already present in the history updates CurrentStatus without
// appending a duplicate entry, so interleaved clocks add at most one entry
// per distinct status. The history is re-sorted by timestamp afterwards, so
// out-of-order delivery cannot corrupt it. The full ledger is persisted
// after every mutation.
func (l *Ledger) ApplyTransition(orderID string, status types.Status, timestamp int64) error {
	if !types.ValidStatus(status) {
		return types.ErrInvalidStatus
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	order := l.findLocked(orderID)
	if order == nil {
		l.log.Debug("transition_ignored", "order not in ledger",
			map[string]any{"order_id": orderID, "status": string(status)})
		return nil
	}

	if order.CurrentStatus.IsTerminal() {
		l.log.Debug("transition_ignored", "order is in a terminal state",
			map[string]any{"order_id": orderID, "status": string(status)})
		return nil
	}

	if !hasStatus(order, status) {
		order.StatusHistory = append(order.StatusHistory,
			types.StatusUpdate{Status: status, Timestamp: timestamp})
	}
	order.CurrentStatus = status
	order.SortHistory()

	if err := l.store.SaveOrders(l.orders); err != nil {
		return fmt.Errorf("persisting orders: %w", err)
	}
	if err := l.store.LogTransition(orderID, status, timestamp); err != nil {
		// The audit log is advisory; a failed append must not undo the
		// applied transition.
		l.log.Error("status_log_failed", "failed to audit transition",
			map[string]any{"order_id": orderID}, err)
	}
	return nil
}

// Get returns a clone of the named order.
func (l *Ledger) Get(orderID string) (*types.Order, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	order := l.findLocked(orderID)
	if order == nil {
		return nil, false
	}
	return order.Clone(), true
}

// Orders returns clones of all orders, most-recent-first.
func (l *Ledger) Orders() []*types.Order {
	return l.ListFiltered("", "", SortNewestFirst)
}

// Len returns the number of orders in the ledger.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.orders)
}

func hasStatus(order *types.Order, status types.Status) bool {
	for _, u := range order.StatusHistory {
		if u.Status == status {
			return true
		}
	}
	return false
}

func (l *Ledger) findLocked(orderID string) *types.Order {
	for _, o := range l.orders {
		if o.OrderID == orderID {
			return o
		}
	}
	return nil
}

// newOrderIDLocked draws ORD- ids until one misses the ledger. Collisions
// are vanishingly rare but cheap to retry.
func (l *Ledger) newOrderIDLocked() string {
	for {
		id := fmt.Sprintf("%s%d", orderIDPrefix, 100000+rand.Intn(900000))
		if l.findLocked(id) == nil {
			return id
		}
	}
}
