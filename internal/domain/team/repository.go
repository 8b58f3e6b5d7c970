package team

import "context"

type Repository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]Team, error)
	UpsertAll(ctx context.Context, teams []Team) error
}
