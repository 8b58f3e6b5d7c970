package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jordangerads/pickem/internal/domain/pick"
)

// PickRepository keeps picks keyed on (user, pool, game) and resolves the
// season-week listing through the game store it is constructed with.
type PickRepository struct {
	mu    sync.RWMutex
	items map[string]pick.Pick
	games *GameRepository
}

func NewPickRepository(games *GameRepository) *PickRepository {
	return &PickRepository{
		items: make(map[string]pick.Pick),
		games: games,
	}
}

func (r *PickRepository) List(ctx context.Context, userID, poolID int64, season, week int) ([]pick.Pick, error) {
	weekGames, err := r.games.ListBySeasonWeek(ctx, season, week)
	if err != nil {
		return nil, err
	}
	inWeek := make(map[int64]struct{}, len(weekGames))
	for _, g := range weekGames {
		inWeek[g.ID] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, p := range r.items {
		if p.UserID != userID || p.PoolID != poolID {
			continue
		}
		if _, ok := inWeek[p.GameID]; !ok {
			continue
		}
		out = append(out, clonePick(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameID < out[j].GameID })

	return out, nil
}

func (r *PickRepository) GetOne(_ context.Context, userID, poolID, gameID int64) (pick.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[pickKey(userID, poolID, gameID)]
	if !ok {
		return pick.Pick{}, false, nil
	}

	return clonePick(item), true, nil
}

func (r *PickRepository) SaveAll(_ context.Context, picks []pick.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range picks {
		r.items[pickKey(p.UserID, p.PoolID, p.GameID)] = clonePick(p)
	}

	return nil
}

func pickKey(userID, poolID, gameID int64) string {
	return fmt.Sprintf("%d::%d::%d", userID, poolID, gameID)
}

func clonePick(item pick.Pick) pick.Pick {
	copied := item
	if item.ChosenTeamID != nil {
		v := *item.ChosenTeamID
		copied.ChosenTeamID = &v
	}
	if item.Confidence != nil {
		v := *item.Confidence
		copied.Confidence = &v
	}
	return copied
}
