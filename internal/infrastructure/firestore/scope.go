package firestore

import (
	"fmt"

	"github.com/lromero86/tacopos-api/internal/domain/repository"
)

// operatorsCollection holds operator profile documents keyed by the
// identity provider UID, outside any cutoff scope.
const operatorsCollection = "operators"

// ScopePath derives the collection path for a (operator, cutoff date,
// collection) triple. Pure function; two distinct cutoff dates must
// never collide for the same operator.
func ScopePath(operatorID, date, collection string) string {
	return fmt.Sprintf("users/%s/dates/%s/%s", operatorID, date, collection)
}

// scopePath derives the path for a domain Scope
func scopePath(scope repository.Scope, collection string) string {
	return ScopePath(scope.OperatorID, scope.Date, collection)
}
