package pool

import "context"

type Repository interface {
	GetByID(ctx context.Context, poolID int64) (Pool, bool, error)
	Create(ctx context.Context, item Pool) (Pool, error)
}
