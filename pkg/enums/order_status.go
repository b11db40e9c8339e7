package enums

import "fmt"

// OrderStatus tracks the externally driven order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusDenied    OrderStatus = "denied"
	OrderStatusCompleted OrderStatus = "completed"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusAccepted,
	OrderStatusDenied,
	OrderStatusCompleted,
}

// orderStatusRank orders statuses along the one-directional lifecycle.
// pending(0) -> accepted/denied(1) -> completed(2).
var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusAccepted:  1,
	OrderStatusDenied:    1,
	OrderStatusCompleted: 2,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether next is a legal forward move. Transitions
// never return to pending, never leave a same-rank sibling (accepted vs
// denied), and a denied order does not complete.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.IsValid() || !next.IsValid() || s == next {
		return false
	}
	if orderStatusRank[next] <= orderStatusRank[s] {
		return false
	}
	if s == OrderStatusDenied {
		return false
	}
	return true
}

// AllowsReturns reports whether items on an order in this state may file
// return or exchange requests.
func (s OrderStatus) AllowsReturns() bool {
	return s == OrderStatusAccepted || s == OrderStatusCompleted
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
