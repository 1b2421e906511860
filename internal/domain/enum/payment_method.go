package enum

import "fmt"

// PaymentMethod represents how a closed tab was settled
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "Cash"
	PaymentMethodCard PaymentMethod = "Card"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// Valid reports whether the method is a known value
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodCard
}

// ParsePaymentMethod parses a payment method from its string form
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	method := PaymentMethod(s)
	if !method.Valid() {
		return "", fmt.Errorf("unknown payment method %q", s)
	}
	return method, nil
}
