package request

// Confirmation carries the client's answer to a confirmation prompt
// for a destructive till action. Confirmed false means the prompt was
// declined; PIN is checked when the operator has one set.
type Confirmation struct {
	Confirmed bool   `json:"confirmed"`
	PIN       string `json:"pin,omitempty"`
}

// CreateOrderRequest opens a new tab; the name is optional
type CreateOrderRequest struct {
	Name string `json:"name"`
}

// AddItemRequest appends a line item to the active tab. The price is
// in major currency units (e.g. 7.50).
type AddItemRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price"`
}

// RemoveItemRequest removes one line item by its position on the tab
type RemoveItemRequest struct {
	Index        *int `json:"index" binding:"required"`
	Confirmation
}

// PayRequest settles the active tab
type PayRequest struct {
	Method       string `json:"method" binding:"required"`
	Confirmation
}

// CutoffRequest switches the session to a different business date
type CutoffRequest struct {
	Date string `json:"date" binding:"required"`
}

// CreateExpenseRequest records a money outflow. The amount is in
// major currency units and must be positive.
type CreateExpenseRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}
