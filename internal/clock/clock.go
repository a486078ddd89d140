// Package clock drives the simulated kitchen progress for a single order.
// A Clock is seeded from a ledger snapshot at construction and never reads
// ledger state afterwards; every transition it produces is routed through
// the registered emit callback, which is the only path back into the
// ledger.
package clock

import (
	"math/rand"
	"sync"
	"time"

	"github.com/campusbites/cafeteria/pkg/types"
)

// EmitFunc receives one autonomous transition. The timestamp is unix
// milliseconds taken when the timer fired.
type EmitFunc func(orderID string, status types.Status, timestamp int64)

// Clock advances an order through the normal kitchen path on randomized
// dwell intervals. Completed and Cancelled halt it; Stop halts it
// synchronously from outside.
type Clock struct {
	mu      sync.Mutex
	orderID string
	status  types.Status
	emit    EmitFunc
	dwell   func() time.Duration
	timer   *time.Timer
	stopped bool
}

// New builds a Clock seeded with the order's status at render time. The
// dwell interval is drawn uniformly from the configured bounds before each
// step.
func New(orderID string, seed types.Status, sim types.SimulationConfig, emit EmitFunc) *Clock {
	return &Clock{
		orderID: orderID,
		status:  seed,
		emit:    emit,
		dwell: func() time.Duration {
			spread := sim.MaxDelayMS - sim.MinDelayMS
			ms := sim.MinDelayMS
			if spread > 0 {
				ms += rand.Int63n(spread + 1)
			}
			return time.Duration(ms) * time.Millisecond
		},
	}
}

// Start schedules the first autonomous step. Starting a clock seeded with a
// terminal status is a no-op.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scheduleLocked()
}

// Stop invalidates any pending timer and prevents all further emissions.
// Idempotent; safe to call from the emit callback's goroutine or any other.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Status returns the clock's own view of the order status. It can run ahead
// of the ledger between a tick and its reconciliation.
func (c *Clock) Status() types.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Stopped reports whether the clock has been stopped or has reached a
// terminal status.
func (c *Clock) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped || c.status.IsTerminal()
}

func (c *Clock) scheduleLocked() {
	if c.stopped {
		return
	}
	if _, ok := c.status.Next(); !ok {
		return
	}
	c.timer = time.AfterFunc(c.dwell(), c.tick)
}

// tick fires one autonomous transition and reschedules unless the new
// status is terminal. A tick racing with Stop loses: the stopped flag is
// checked under the same lock Stop takes.
func (c *Clock) tick() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	next, ok := c.status.Next()
	if !ok {
		c.mu.Unlock()
		return
	}
	c.status = next
	c.timer = nil
	emit := c.emit
	orderID := c.orderID
	c.mu.Unlock()

	timestamp := time.Now().UnixMilli()
	if emit != nil {
		// The clock's own schedule must survive a failing callback.
		func() {
			defer func() { _ = recover() }()
			emit(orderID, next, timestamp)
		}()
	}

	c.mu.Lock()
	c.scheduleLocked()
	c.mu.Unlock()
}
