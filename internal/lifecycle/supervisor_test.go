package lifecycle

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbites/cafeteria/internal/ledger"
	"github.com/campusbites/cafeteria/internal/logger"
	"github.com/campusbites/cafeteria/internal/sqlite"
	"github.com/campusbites/cafeteria/pkg/types"
)

var fastSim = types.SimulationConfig{MinDelayMS: 1, MaxDelayMS: 2}

func newTestSupervisor(t *testing.T, sim types.SimulationConfig) (*Supervisor, *ledger.Ledger) {
	t.Helper()
	store, err := sqlite.Open(t.TempDir(), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	l, err := ledger.New(store, logger.Nop())
	require.NoError(t, err)

	sup := NewSupervisor(l, sim, logger.Nop())
	t.Cleanup(sup.Close)
	return sup, l
}

func placeOrder(t *testing.T, l *ledger.Ledger) *types.Order {
	t.Helper()
	order, err := l.PlaceOrder([]types.LineItem{
		{ID: "samosa", Name: "Samosa", UnitPrice: 30, Quantity: 2},
	}, 60)
	require.NoError(t, err)
	return order
}

func waitForStatus(t *testing.T, l *ledger.Ledger, orderID string, want types.Status) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if order, ok := l.Get(orderID); ok && order.CurrentStatus == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	order, _ := l.Get(orderID)
	t.Fatalf("order %s never reached %s (stuck at %s)", orderID, want, order.CurrentStatus)
}

func TestSubscribeUnknownOrder(t *testing.T) {
	sup, _ := newTestSupervisor(t, fastSim)
	_, err := sup.Subscribe("ORD-000000", nil)
	assert.ErrorIs(t, err, types.ErrOrderNotFound)
}

func TestSubscriptionDrivesOrderToCompletion(t *testing.T) {
	sup, l := newTestSupervisor(t, fastSim)
	order := placeOrder(t, l)

	var mu sync.Mutex
	var seen []types.Status
	sub, err := sup.Subscribe(order.OrderID, func(o *types.Order, u types.StatusUpdate) {
		mu.Lock()
		seen = append(seen, u.Status)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer sub.Release()

	waitForStatus(t, l, order.OrderID, types.StatusCompleted)

	got, _ := l.Get(order.OrderID)
	require.Len(t, got.StatusHistory, 4)
	assert.Equal(t, types.StatusOrderReceived, got.StatusHistory[0].Status)
	assert.Equal(t, types.StatusPreparing, got.StatusHistory[1].Status)
	assert.Equal(t, types.StatusReadyForPickup, got.StatusHistory[2].Status)
	assert.Equal(t, types.StatusCompleted, got.StatusHistory[3].Status)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []types.Status{
		types.StatusPreparing, types.StatusReadyForPickup, types.StatusCompleted,
	}, seen, "subscriber sees each applied transition once")
}

func TestConcurrentSubscriptionsConverge(t *testing.T) {
	sup, l := newTestSupervisor(t, fastSim)
	order := placeOrder(t, l)

	// Two display instances of the same order, each with its own clock.
	first, err := sup.Subscribe(order.OrderID, nil)
	require.NoError(t, err)
	defer first.Release()
	second, err := sup.Subscribe(order.OrderID, nil)
	require.NoError(t, err)
	defer second.Release()

	waitForStatus(t, l, order.OrderID, types.StatusCompleted)

	// Let the laggard clock drain its remaining ticks into the ledger.
	time.Sleep(30 * time.Millisecond)

	got, _ := l.Get(order.OrderID)
	assert.Equal(t, types.StatusCompleted, got.CurrentStatus)
	assert.Len(t, got.StatusHistory, 4,
		"duplicate ticks from the second clock must not grow the history")

	var prev int64
	for _, u := range got.StatusHistory {
		assert.GreaterOrEqual(t, u.Timestamp, prev)
		prev = u.Timestamp
	}
}

func TestRequestCancellationStopsPendingClock(t *testing.T) {
	// Long dwell: the first autonomous tick would land far in the future.
	slowSim := types.SimulationConfig{MinDelayMS: 10_000, MaxDelayMS: 10_000}
	sup, l := newTestSupervisor(t, slowSim)
	order := placeOrder(t, l)

	sub, err := sup.Subscribe(order.OrderID, nil)
	require.NoError(t, err)
	defer sub.Release()

	require.NoError(t, sup.RequestCancellation(order.OrderID))

	got, _ := l.Get(order.OrderID)
	assert.Equal(t, types.StatusCancelled, got.CurrentStatus)
	assert.True(t, sub.Done(), "cancellation invalidates the pending timer synchronously")

	// No transition may ever be applied after the cancellation.
	time.Sleep(20 * time.Millisecond)
	after, _ := l.Get(order.OrderID)
	assert.Equal(t, got.StatusHistory, after.StatusHistory)
}

func TestRequestCancellationIsIdempotent(t *testing.T) {
	sup, l := newTestSupervisor(t, fastSim)
	order := placeOrder(t, l)

	require.NoError(t, sup.RequestCancellation(order.OrderID))
	require.NoError(t, sup.RequestCancellation(order.OrderID))

	got, _ := l.Get(order.OrderID)
	assert.Equal(t, types.StatusCancelled, got.CurrentStatus)

	count := 0
	for _, u := range got.StatusHistory {
		if u.Status == types.StatusCancelled {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRequestCancellationUnknownOrder(t *testing.T) {
	sup, _ := newTestSupervisor(t, fastSim)
	assert.NoError(t, sup.RequestCancellation("ORD-000000"))
}

func TestReleaseStopsClock(t *testing.T) {
	slowSim := types.SimulationConfig{MinDelayMS: 10_000, MaxDelayMS: 10_000}
	sup, l := newTestSupervisor(t, slowSim)
	order := placeOrder(t, l)

	sub, err := sup.Subscribe(order.OrderID, nil)
	require.NoError(t, err)

	sub.Release()
	sub.Release() // idempotent

	assert.True(t, sub.Done())
	got, _ := l.Get(order.OrderID)
	assert.Equal(t, types.StatusOrderReceived, got.CurrentStatus,
		"released subscription must not advance the order")
}

func TestCloseReleasesEverything(t *testing.T) {
	slowSim := types.SimulationConfig{MinDelayMS: 10_000, MaxDelayMS: 10_000}
	sup, l := newTestSupervisor(t, slowSim)
	a := placeOrder(t, l)
	b := placeOrder(t, l)

	subA, err := sup.Subscribe(a.OrderID, nil)
	require.NoError(t, err)
	subB, err := sup.Subscribe(b.OrderID, nil)
	require.NoError(t, err)

	sup.Close()

	assert.True(t, subA.Done())
	assert.True(t, subB.Done())

	_, err = sup.Subscribe(a.OrderID, nil)
	assert.ErrorIs(t, err, ErrSupervisorClosed)
}
