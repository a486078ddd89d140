package types

// Status is the lifecycle stage of an order. The string values are the
// exact values persisted by earlier releases, so they must not change.
type Status string

const (
	StatusOrderReceived  Status = "Order Received"
	StatusPreparing      Status = "Preparing"
	StatusReadyForPickup Status = "Ready for Pickup"
	StatusCompleted      Status = "Completed"
	StatusCancelled      Status = "Cancelled"
)

// progression is the normal kitchen path. Cancelled sits outside it and is
// reachable from any non-terminal status via an explicit cancellation.
var progression = []Status{
	StatusOrderReceived,
	StatusPreparing,
	StatusReadyForPickup,
	StatusCompleted,
}

// validStatuses is the set of recognized status values.
var validStatuses = map[Status]bool{
	StatusOrderReceived:  true,
	StatusPreparing:      true,
	StatusReadyForPickup: true,
	StatusCompleted:      true,
	StatusCancelled:      true,
}

// ValidStatus reports whether s is a recognized status value.
func ValidStatus(s Status) bool {
	return validStatuses[s]
}

// IsTerminal reports whether s admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Next returns the status that follows s on the normal kitchen path.
// The second result is false when s is terminal, Cancelled, or unknown.
func (s Status) Next() (Status, bool) {
	for i, step := range progression {
		if step == s && i < len(progression)-1 {
			return progression[i+1], true
		}
	}
	return "", false
}

// Progression returns the normal kitchen path in order. The returned slice
// is a copy; callers may modify it freely.
func Progression() []Status {
	out := make([]Status, len(progression))
	copy(out, progression)
	return out
}
