package enums

import (
	"fmt"
	"strings"
)

// OrderStatus tracks an order through the kitchen flow.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusServed,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// Normalize maps an empty status to pending; the backend omits the field for fresh orders.
func (o OrderStatus) Normalize() OrderStatus {
	if strings.TrimSpace(string(o)) == "" {
		return OrderStatusPending
	}
	return o
}

// IsPending reports whether the order is effectively pending.
func (o OrderStatus) IsPending() bool {
	return o.Normalize() == OrderStatusPending
}

// IsActive reports whether the order belongs on the kitchen board.
func (o OrderStatus) IsActive() bool {
	switch o.Normalize() {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady:
		return true
	}
	return false
}

// IsAdministrative reports whether the status can only be set from order management.
func (o OrderStatus) IsAdministrative() bool {
	return o == OrderStatusCompleted || o == OrderStatusCancelled
}

// ParseOrderStatus converts raw input into an OrderStatus. Empty input parses as pending.
func ParseOrderStatus(value string) (OrderStatus, error) {
	normalized := OrderStatus(strings.ToLower(strings.TrimSpace(value))).Normalize()
	for _, candidate := range validOrderStatuses {
		if candidate == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// OrderStatusNames lists every status in kitchen flow order.
func OrderStatusNames() []string {
	names := make([]string, len(validOrderStatuses))
	for i, status := range validOrderStatuses {
		names[i] = status.String()
	}
	return names
}
