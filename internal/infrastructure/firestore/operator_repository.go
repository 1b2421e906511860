package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"

	"github.com/lromero86/tacopos-api/internal/domain/entity"
)

// OperatorRepository is the Firestore implementation of the operator
// profile port. The document id is the identity provider UID, so a
// profile can never drift from its identity.
type OperatorRepository struct {
	client *firestore.Client
}

// NewOperatorRepository creates a Firestore-backed operator repository
func NewOperatorRepository(client *firestore.Client) *OperatorRepository {
	return &OperatorRepository{client: client}
}

func (r *OperatorRepository) col() *firestore.CollectionRef {
	return r.client.Collection(operatorsCollection)
}

// Get fetches an operator profile; nil means none exists yet
func (r *OperatorRepository) Get(ctx context.Context, uid string) (*entity.Operator, error) {
	snap, err := r.col().Doc(uid).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, translateErr(err, "Operator")
	}

	var operator entity.Operator
	if err := snap.DataTo(&operator); err != nil {
		return nil, translateErr(err, "Operator")
	}
	operator.UID = snap.Ref.ID
	return &operator, nil
}

// Save creates or replaces the operator profile
func (r *OperatorRepository) Save(ctx context.Context, operator *entity.Operator) error {
	if operator == nil || operator.UID == "" {
		return errors.New("firestore: operator UID is empty")
	}
	_, err := r.col().Doc(operator.UID).Set(ctx, operator)
	return translateErr(err, "Operator")
}

// SetPINHash stores the confirmation PIN hash on the profile
func (r *OperatorRepository) SetPINHash(ctx context.Context, uid, pinHash string) error {
	_, err := r.col().Doc(uid).Update(ctx, []firestore.Update{
		{Path: "pinHash", Value: pinHash},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	return translateErr(err, "Operator")
}
