package repository

import (
	"context"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
)

// OperatorRepository defines the interface for operator profile
// persistence, keyed by the identity provider UID
type OperatorRepository interface {
	// Get fetches an operator profile; nil result means not found
	Get(ctx context.Context, uid string) (*entity.Operator, error)
	// Save creates or replaces the operator profile
	Save(ctx context.Context, operator *entity.Operator) error
	// SetPINHash stores the bcrypt hash of the confirmation PIN
	SetPINHash(ctx context.Context, uid, pinHash string) error
}
