package utils

import (
	"crypto/rand"
	"strings"

	"github.com/google/uuid"
)

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewDisplayCode generates a short order display code like "#K3F9Q",
// used when the operator does not name a tab.
func NewDisplayCode() string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// Degraded path, a uuid prefix is unique enough for a display code.
		return "#" + strings.ToUpper(uuid.New().String()[:5])
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return "#" + string(buf)
}

// DisplayCodeFromID derives a display code from a document id, used
// when a stored order has no name.
func DisplayCodeFromID(id string) string {
	if len(id) > 5 {
		id = id[:5]
	}
	return "#" + strings.ToUpper(id)
}
