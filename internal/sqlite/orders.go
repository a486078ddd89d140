// Order persistence and legacy-shape migration. Records written before the
// status history existed carry a single "status" field; resolveOrder
// upgrades them transparently on read.
package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/campusbites/cafeteria/pkg/types"
)

// orderJSON accepts both the current and the legacy persisted order shape.
// The legacy shape has Status set and no CurrentStatus/StatusHistory.
type orderJSON struct {
	OrderID       string               `json:"orderId"`
	Items         []types.LineItem     `json:"items"`
	Total         int64                `json:"total"`
	Timestamp     int64                `json:"timestamp"`
	Status        types.Status         `json:"status,omitempty"`
	CurrentStatus types.Status         `json:"currentStatus,omitempty"`
	StatusHistory []types.StatusUpdate `json:"statusHistory,omitempty"`
}

// resolveOrder turns a decoded record into an Order, migrating the legacy
// shape when the status history fields are missing. Migration synthesizes a
// plausible history from the creation timestamp; a cancelled legacy order
// gets a received entry followed by the cancellation one second later.
// Already-migrated records pass through unchanged, so migration is
// idempotent.
func resolveOrder(raw orderJSON) *types.Order {
	order := &types.Order{
		OrderID:   raw.OrderID,
		Items:     raw.Items,
		Total:     raw.Total,
		Timestamp: raw.Timestamp,
	}

	if raw.CurrentStatus != "" && raw.StatusHistory != nil {
		order.CurrentStatus = raw.CurrentStatus
		order.StatusHistory = raw.StatusHistory
		return order
	}

	initial := raw.Status
	if initial == "" {
		initial = types.StatusOrderReceived
	}

	if initial == types.StatusCancelled {
		order.CurrentStatus = types.StatusCancelled
		order.StatusHistory = []types.StatusUpdate{
			{Status: types.StatusOrderReceived, Timestamp: raw.Timestamp},
			{Status: types.StatusCancelled, Timestamp: raw.Timestamp + 1000},
		}
		return order
	}

	order.CurrentStatus = initial
	order.StatusHistory = []types.StatusUpdate{
		{Status: initial, Timestamp: raw.Timestamp},
	}
	return order
}

// LoadOrders reads the persisted order list, migrating legacy records. A
// missing key yields an empty slice. A corrupt value is cleared and logged,
// never surfaced as an error; the caller starts from an empty ledger.
func (s *Store) LoadOrders() ([]*types.Order, error) {
	value, err := s.LoadDocument(types.OrdersKey)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return []*types.Order{}, nil
	}

	var raws []orderJSON
	if err := json.Unmarshal(value, &raws); err != nil {
		s.log.Error("storage_decode_failed", "discarding corrupt order data",
			map[string]any{"key": types.OrdersKey}, err)
		s.mu.Lock()
		clearErr := s.deleteDocumentLocked(types.OrdersKey)
		s.mu.Unlock()
		if clearErr != nil {
			return nil, clearErr
		}
		return []*types.Order{}, nil
	}

	orders := make([]*types.Order, 0, len(raws))
	for _, raw := range raws {
		orders = append(orders, resolveOrder(raw))
	}
	return orders, nil
}

// SaveOrders persists the full order list in the current shape. The
// migrated form of a legacy record is first written here, on the first
// natural mutation after load.
func (s *Store) SaveOrders(orders []*types.Order) error {
	if orders == nil {
		orders = []*types.Order{}
	}
	value, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encoding orders: %w", err)
	}
	return s.SaveDocument(types.OrdersKey, value)
}
