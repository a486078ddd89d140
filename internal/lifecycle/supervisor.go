// Package lifecycle connects per-order status clocks to the ledger. Each
// display surface subscribes to an order and gets its own autonomous clock;
// every tick is routed through the ledger, whose dedup and re-sort rules
// make concurrent clocks for the same order converge instead of forking.
package lifecycle

import (
	"errors"
	"sync"
	"time"

	"github.com/campusbites/cafeteria/internal/clock"
	"github.com/campusbites/cafeteria/internal/ledger"
	"github.com/campusbites/cafeteria/internal/logger"
	"github.com/campusbites/cafeteria/pkg/types"
)

// ErrSupervisorClosed is returned by Subscribe after Close.
var ErrSupervisorClosed = errors.New("supervisor is closed")

// TransitionFunc notifies a subscriber after a transition has been applied
// to the ledger. The order is the post-apply canonical state.
type TransitionFunc func(order *types.Order, update types.StatusUpdate)

// Supervisor owns the clock subscriptions for one ledger.
type Supervisor struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
	sim    types.SimulationConfig
	log    logger.Logger
	subs   map[string]map[*Subscription]struct{}
	closed bool
}

// Subscription is a live clock bound to one order. Release stops the
// underlying timer unconditionally; it must be called when the owning
// display surface is torn down.
type Subscription struct {
	orderID string
	clock   *clock.Clock
	sup     *Supervisor
	once    sync.Once
}

// NewSupervisor builds a Supervisor over the given ledger and simulation
// bounds.
func NewSupervisor(l *ledger.Ledger, sim types.SimulationConfig, log logger.Logger) *Supervisor {
	if log == nil {
		log = logger.Nop()
	}
	return &Supervisor{
		ledger: l,
		sim:    sim,
		log:    log,
		subs:   make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe seeds a clock from the ledger's current snapshot of the order
// and starts it. onTransition may be nil. Returns ErrOrderNotFound when the
// order is not in the ledger.
func (s *Supervisor) Subscribe(orderID string, onTransition TransitionFunc) (*Subscription, error) {
	snapshot, ok := s.ledger.Get(orderID)
	if !ok {
		return nil, types.ErrOrderNotFound
	}

	sub := &Subscription{orderID: orderID, sup: s}
	sub.clock = clock.New(orderID, snapshot.CurrentStatus, s.sim,
		func(id string, status types.Status, timestamp int64) {
			if err := s.ledger.ApplyTransition(id, status, timestamp); err != nil {
				s.log.Error("transition_apply_failed", "clock tick rejected",
					map[string]any{"order_id": id, "status": string(status)}, err)
				return
			}
			if onTransition == nil {
				return
			}
			if order, ok := s.ledger.Get(id); ok {
				onTransition(order, types.StatusUpdate{Status: status, Timestamp: timestamp})
			}
		})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSupervisorClosed
	}
	if s.subs[orderID] == nil {
		s.subs[orderID] = make(map[*Subscription]struct{})
	}
	s.subs[orderID][sub] = struct{}{}
	s.mu.Unlock()

	sub.clock.Start()
	return sub, nil
}

// RequestCancellation stops every clock for the order synchronously, then
// applies the Cancelled transition. Cancelling an order already in a
// terminal state is an idempotent no-op; cancelling an unknown order is
// silently ignored.
func (s *Supervisor) RequestCancellation(orderID string) error {
	s.mu.Lock()
	for sub := range s.subs[orderID] {
		sub.clock.Stop()
	}
	s.mu.Unlock()

	return s.ledger.ApplyTransition(orderID, types.StatusCancelled, time.Now().UnixMilli())
}

// Close releases every subscription. Further Subscribe calls fail.
func (s *Supervisor) Close() {
	s.mu.Lock()
	s.closed = true
	var all []*Subscription
	for _, set := range s.subs {
		for sub := range set {
			all = append(all, sub)
		}
	}
	s.mu.Unlock()

	for _, sub := range all {
		sub.Release()
	}
}

// OrderID returns the order this subscription watches.
func (sub *Subscription) OrderID() string {
	return sub.orderID
}

// Done reports whether the underlying clock has stopped, either by Release
// or by reaching a terminal status.
func (sub *Subscription) Done() bool {
	return sub.clock.Stopped()
}

// Release stops the clock and detaches the subscription. Idempotent; the
// timer is invalidated even when Release races with a pending tick.
func (sub *Subscription) Release() {
	sub.once.Do(func() {
		sub.clock.Stop()

		sub.sup.mu.Lock()
		if set := sub.sup.subs[sub.orderID]; set != nil {
			delete(set, sub)
			if len(set) == 0 {
				delete(sub.sup.subs, sub.orderID)
			}
		}
		sub.sup.mu.Unlock()
	})
}
