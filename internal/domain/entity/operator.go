package entity

import "time"

// Operator represents the till operator account. The identity itself
// lives in the external provider; this profile holds what the till
// needs locally, keyed by the provider UID.
type Operator struct {
	UID       string    `firestore:"-" json:"uid"`
	Email     string    `firestore:"email" json:"email"`
	Name      string    `firestore:"name" json:"name,omitempty"`
	PINHash   string    `firestore:"pinHash,omitempty" json:"-"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
	UpdatedAt time.Time `firestore:"updatedAt,serverTimestamp" json:"updated_at"`
}

// HasPIN reports whether a confirmation PIN has been configured
func (o *Operator) HasPIN() bool {
	return o.PINHash != ""
}
