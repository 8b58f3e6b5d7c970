package game

import (
	"context"
	"time"
)

// Repository exposes schedule reads plus the upsert used by schedule sync.
type Repository interface {
	ListBySeasonWeek(ctx context.Context, season, week int) ([]Game, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Game, error)
	ListByKickoffBetween(ctx context.Context, from, to time.Time) ([]Game, error)
	UpsertAll(ctx context.Context, games []Game) error
}
