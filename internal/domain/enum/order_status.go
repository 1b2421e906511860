package enum

import "fmt"

// OrderStatus represents the lifecycle state of an order (tab)
type OrderStatus string

const (
	OrderStatusOpen OrderStatus = "Open"
	OrderStatusPaid OrderStatus = "Paid"
)

func (s OrderStatus) String() string {
	return string(s)
}

// Valid reports whether the status is a known value
func (s OrderStatus) Valid() bool {
	return s == OrderStatusOpen || s == OrderStatusPaid
}

// ParseOrderStatus parses an order status from its string form
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return status, nil
}
