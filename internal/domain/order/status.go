package order

import "strings"

// Status is the lifecycle stage of an order, always lowercase
type Status string

const (
	StatusPending        Status = "pending"
	StatusAccepted       Status = "accepted"
	StatusPreparing      Status = "preparing"
	StatusReady          Status = "ready"
	StatusOutForDelivery Status = "out for delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// statusPlacedAlias is what older backends send for a new order
const statusPlacedAlias = "order placed"

// ParseStatus normalizes a backend status string. Empty and "Order Placed"
// both mean pending; unknown values pass through lowercased.
func ParseStatus(s string) Status {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", statusPlacedAlias:
		return StatusPending
	}
	return Status(v)
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the status is one the client knows
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusPreparing, StatusReady,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Next returns the status the kitchen board advances to
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusPending:
		return StatusAccepted, true
	case StatusAccepted:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	}
	return "", false
}

// NextAction is the board button label for advancing s
func (s Status) NextAction() string {
	switch s {
	case StatusPending:
		return "Accept Order"
	case StatusAccepted:
		return "Mark as Preparing"
	case StatusPreparing:
		return "Mark as Ready"
	}
	return ""
}

// IsFinal reports whether tracking can stop polling
func (s Status) IsFinal() bool {
	switch s {
	case StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// trackingStages is the progress bar shown while tracking an order
var trackingStages = []Status{StatusPending, StatusAccepted, StatusPreparing, StatusReady, StatusDelivered}

// TrackingStages returns the ordered progress stages
func TrackingStages() []Status {
	out := make([]Status, len(trackingStages))
	copy(out, trackingStages)
	return out
}

// Stage returns the index of s in TrackingStages, or -1. Out for delivery
// sits on the ready step.
func (s Status) Stage() int {
	if s == StatusOutForDelivery {
		s = StatusReady
	}
	for i, st := range trackingStages {
		if st == s {
			return i
		}
	}
	return -1
}
