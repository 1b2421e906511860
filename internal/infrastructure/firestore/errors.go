package firestore

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lromero86/tacopos-api/pkg/apperror"
)

// translateErr maps a Firestore client error into the application
// error taxonomy. Callers pass the resource name used in not-found
// messages.
func translateErr(err error, resource string) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return apperror.NewNotFoundError(resource)
	case codes.Unavailable, codes.DeadlineExceeded:
		return apperror.NewPersistenceError("Store unreachable, try again")
	case codes.PermissionDenied, codes.Unauthenticated:
		return apperror.NewPersistenceError("Store rejected the request")
	default:
		return apperror.NewPersistenceError("Store write failed")
	}
}

// isNotFound reports whether the error is a Firestore not-found
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
