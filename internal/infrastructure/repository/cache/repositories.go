package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jordangerads/pickem/internal/domain/game"
	"github.com/jordangerads/pickem/internal/domain/pool"
	"github.com/jordangerads/pickem/internal/domain/team"
	basecache "github.com/jordangerads/pickem/internal/platform/cache"
)

// GameRepository caches schedule reads. The schedule changes only when a
// sync runs, so UpsertAll drops every game key.
type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) ListBySeasonWeek(ctx context.Context, season, week int) ([]game.Game, error) {
	key := "game:week:" + strconv.Itoa(season) + ":" + strconv.Itoa(week)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeasonWeek(ctx, season, week)
		if err != nil {
			return nil, err
		}
		return append([]game.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Game)
	return append([]game.Game(nil), items...), nil
}

func (r *GameRepository) GetByIDs(ctx context.Context, ids []int64) ([]game.Game, error) {
	key := "game:ids:" + joinIDs(ids)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return append([]game.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Game)
	return append([]game.Game(nil), items...), nil
}

// ListByKickoffBetween is used by the reminder sweep with a moving window;
// caching it would mostly serve stale windows, so it goes straight through.
func (r *GameRepository) ListByKickoffBetween(ctx context.Context, from, to time.Time) ([]game.Game, error) {
	return r.next.ListByKickoffBetween(ctx, from, to)
}

func (r *GameRepository) UpsertAll(ctx context.Context, games []game.Game) error {
	if err := r.next.UpsertAll(ctx, games); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "game:")
	return nil
}

func joinIDs(ids []int64) string {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, 0, len(sorted))
	for _, id := range sorted {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

// PoolRepository caches pool lookups; scoring method changes are rare and a
// short TTL is acceptable staleness.
type PoolRepository struct {
	next  pool.Repository
	cache *basecache.Store
}

func NewPoolRepository(next pool.Repository, cache *basecache.Store) *PoolRepository {
	return &PoolRepository{next: next, cache: cache}
}

func (r *PoolRepository) GetByID(ctx context.Context, poolID int64) (pool.Pool, bool, error) {
	key := "pool:id:" + strconv.FormatInt(poolID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, poolID)
		if err != nil {
			return nil, err
		}
		return cachedPoolByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return pool.Pool{}, false, err
	}

	cached, _ := v.(cachedPoolByID)
	return cached.value, cached.exists, nil
}

func (r *PoolRepository) Create(ctx context.Context, item pool.Pool) (pool.Pool, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return pool.Pool{}, err
	}
	r.cache.Delete(ctx, "pool:id:"+strconv.FormatInt(created.ID, 10))
	return created, nil
}

type cachedPoolByID struct {
	value  pool.Pool
	exists bool
}

// TeamRepository caches team lookups keyed by the sorted id list.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) GetByIDs(ctx context.Context, ids []int64) ([]team.Team, error) {
	key := "team:ids:" + joinIDs(ids)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) UpsertAll(ctx context.Context, teams []team.Team) error {
	if err := r.next.UpsertAll(ctx, teams); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "team:")
	return nil
}
