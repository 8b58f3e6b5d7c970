package user

import "context"

// Repository resolves users and their pool memberships.
type Repository interface {
	GetByID(ctx context.Context, userID int64) (User, bool, error)
	List(ctx context.Context) ([]User, error)
	AddMembership(ctx context.Context, userID, poolID int64, role Role) error
}
