package types

import "errors"

// Store is the durable local key-value store for storefront state. Values
// are JSON documents addressed by key. The SQLite backend in
// internal/sqlite is the only implementation.
type Store interface {
	// LoadOrders reads and decodes the persisted order list, migrating
	// legacy-shaped records in the process. A missing key yields an empty
	// slice. A corrupt value is cleared and also yields an empty slice;
	// corruption is never surfaced as an error.
	LoadOrders() ([]*Order, error)

	// SaveOrders persists the full order list, replacing the previous
	// value.
	SaveOrders(orders []*Order) error

	// LogTransition appends one applied status transition to the status
	// audit log. The log is append-only and never read back by the
	// lifecycle core; it exists for inspection and debugging.
	LogTransition(orderID string, status Status, timestamp int64) error

	// LoadDocument reads the raw JSON value stored under key, or nil when
	// absent.
	LoadDocument(key string) ([]byte, error)

	// SaveDocument writes the raw JSON value under key.
	SaveDocument(key string, value []byte) error

	// Close releases the underlying database. Idempotent. After Close,
	// operations return ErrStoreClosed.
	Close() error
}

// Store lifecycle and document keys.
const (
	OrdersKey    = "cafeteria-orders"
	CartKey      = "cafeteria-cart"
	FavoritesKey = "cafeteria-favorites"
)

// Store and ledger errors.
var (
	ErrStoreClosed    = errors.New("store is closed")
	ErrInvalidOrder   = errors.New("invalid order")
	ErrInvalidID      = errors.New("invalid order ID")
	ErrInvalidStatus  = errors.New("invalid status value")
	ErrOrderNotFound  = errors.New("order not found")
	ErrDuplicateOrder = errors.New("duplicate order ID")
)
