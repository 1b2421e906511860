package entity

import (
	"encoding/json"
	"time"

	"github.com/lromero86/tacopos-api/internal/domain/enum"
	"github.com/lromero86/tacopos-api/pkg/money"
	"github.com/lromero86/tacopos-api/pkg/utils"
)

// LineItem represents a single item on a tab. Immutable once added,
// except by removal.
type LineItem struct {
	Name    string      `firestore:"name" json:"name"`
	Price   money.Cents `firestore:"price" json:"-"`
	AddedAt time.Time   `firestore:"addedAt" json:"added_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (li LineItem) MarshalJSON() ([]byte, error) {
	type Alias LineItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(li),
		Price: li.Price.Decimal(),
	})
}

// Order represents a customer tab, open or settled
type Order struct {
	ID        string              `firestore:"-" json:"id"`
	Name      string              `firestore:"name" json:"name"`
	Status    enum.OrderStatus    `firestore:"status" json:"status"`
	Items     []LineItem          `firestore:"items" json:"items"`
	Total     money.Cents         `firestore:"total" json:"-"`
	Method    *enum.PaymentMethod `firestore:"method,omitempty" json:"method,omitempty"`
	CreatedAt time.Time           `firestore:"createdAt,serverTimestamp" json:"created_at"`
	UpdatedAt time.Time           `firestore:"updatedAt,serverTimestamp" json:"updated_at"`
	ClosedAt  *time.Time          `firestore:"closedAt,omitempty" json:"closed_at,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(o),
		Total: o.Total.Decimal(),
	})
}

// ItemTotal returns the sum of the line item prices
func (o *Order) ItemTotal() money.Cents {
	var total money.Cents
	for _, item := range o.Items {
		total += item.Price
	}
	return total
}

// IsOpen reports whether the tab still accepts item mutations
func (o *Order) IsOpen() bool {
	return o.Status == enum.OrderStatusOpen
}

// IsPaid reports whether the tab has been settled
func (o *Order) IsPaid() bool {
	return o.Status == enum.OrderStatusPaid
}

// DisplayName returns the operator-given name, or a code derived from
// the document id when the tab was never named
func (o *Order) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	return utils.DisplayCodeFromID(o.ID)
}
