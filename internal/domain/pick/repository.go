package pick

import "context"

// Repository stores one pick per (user, pool, game). SaveAll must upsert on
// that triple and apply the whole batch atomically.
type Repository interface {
	List(ctx context.Context, userID, poolID int64, season, week int) ([]Pick, error)
	GetOne(ctx context.Context, userID, poolID, gameID int64) (Pick, bool, error)
	SaveAll(ctx context.Context, picks []Pick) error
}
