package memory

import (
	"context"
	"sync"

	"github.com/jordangerads/pickem/internal/domain/pool"
)

type PoolRepository struct {
	mu     sync.RWMutex
	items  map[int64]pool.Pool
	nextID int64
}

func NewPoolRepository(pools []pool.Pool) *PoolRepository {
	items := make(map[int64]pool.Pool, len(pools))
	var maxID int64
	for _, p := range pools {
		items[p.ID] = p
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	return &PoolRepository{items: items, nextID: maxID + 1}
}

func (r *PoolRepository) GetByID(_ context.Context, poolID int64) (pool.Pool, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[poolID]
	if !ok {
		return pool.Pool{}, false, nil
	}

	return item, true, nil
}

func (r *PoolRepository) Create(_ context.Context, item pool.Pool) (pool.Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item

	return item, nil
}
