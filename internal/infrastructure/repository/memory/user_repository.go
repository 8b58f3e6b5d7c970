package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jordangerads/pickem/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[int64]user.User
}

func NewUserRepository(users []user.User) *UserRepository {
	items := make(map[int64]user.User, len(users))
	for _, u := range users {
		items[u.ID] = cloneUser(u)
	}

	return &UserRepository{items: items}
}

func (r *UserRepository) GetByID(_ context.Context, userID int64) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID]
	if !ok {
		return user.User{}, false, nil
	}

	return cloneUser(item), true, nil
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *UserRepository) AddMembership(_ context.Context, userID, poolID int64, role user.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[userID]
	if !ok {
		return nil
	}
	for _, m := range item.Memberships {
		if m.PoolID == poolID {
			return nil
		}
	}
	item.Memberships = append(item.Memberships, user.Membership{PoolID: poolID, Role: role})
	r.items[userID] = item

	return nil
}

func cloneUser(item user.User) user.User {
	copied := item
	copied.Memberships = append([]user.Membership(nil), item.Memberships...)
	return copied
}
