package entity

import (
	"encoding/json"
	"time"

	"github.com/lromero86/tacopos-api/pkg/money"
)

// Expense represents a recorded business expense. Immutable after
// creation, no update or delete is exposed.
type Expense struct {
	ID          string      `firestore:"-" json:"id"`
	Amount      money.Cents `firestore:"amount" json:"-"`
	Category    string      `firestore:"category" json:"category"`
	Description string      `firestore:"description" json:"description"`
	Timestamp   time.Time   `firestore:"timestamp,serverTimestamp" json:"timestamp"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (e Expense) MarshalJSON() ([]byte, error) {
	type Alias Expense
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(e),
		Amount: e.Amount.Decimal(),
	})
}
