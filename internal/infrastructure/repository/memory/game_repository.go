package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jordangerads/pickem/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	items map[int64]game.Game
}

func NewGameRepository(games []game.Game) *GameRepository {
	items := make(map[int64]game.Game, len(games))
	for _, g := range games {
		items[g.ID] = g
	}

	return &GameRepository{items: items}
}

func (r *GameRepository) ListBySeasonWeek(_ context.Context, season, week int) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, g := range r.items {
		if g.Season == season && g.Week == week {
			out = append(out, g)
		}
	}
	sortGames(out)

	return out, nil
}

func (r *GameRepository) GetByIDs(_ context.Context, ids []int64) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(ids))
	for _, id := range ids {
		g, ok := r.items[id]
		if !ok {
			continue
		}
		out = append(out, g)
	}

	return out, nil
}

func (r *GameRepository) ListByKickoffBetween(_ context.Context, from, to time.Time) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, g := range r.items {
		if g.KickoffAt.Before(from) || !g.KickoffAt.Before(to) {
			continue
		}
		out = append(out, g)
	}
	sortGames(out)

	return out, nil
}

func (r *GameRepository) UpsertAll(_ context.Context, games []game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range games {
		r.items[g.ID] = g
	}

	return nil
}

func sortGames(games []game.Game) {
	sort.Slice(games, func(i, j int) bool {
		if !games[i].KickoffAt.Equal(games[j].KickoffAt) {
			return games[i].KickoffAt.Before(games[j].KickoffAt)
		}
		return games[i].ID < games[j].ID
	})
}
