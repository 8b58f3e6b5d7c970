package usecase

import (
	"errors"
	"fmt"
)

// Hard-rejection kinds. Each aborts the operation before any write and is
// never retried automatically.
var (
	ErrMalformedRequest     = errors.New("malformed request")
	ErrDuplicateGame        = errors.New("duplicate game in submission")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserNotInPool        = errors.New("user does not belong to pool")
	ErrPoolNotFound         = errors.New("pool not found")
	ErrAmbiguousWeek        = errors.New("picks span more than one season or week")
	ErrBatchSizeMismatch    = errors.New("pick count does not match scheduled games")
	ErrInvalidConfidence    = errors.New("invalid confidence assignment")
	ErrUnknownScoringMethod = errors.New("unknown scoring method")
	ErrUnauthorized         = errors.New("unauthorized")

	// ErrDependencyUnavailable marks collaborator failures (schedule, store,
	// directory, feed). Retry policy, if any, belongs to the collaborator.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

func dependencyFailure(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrDependencyUnavailable, err))
}
