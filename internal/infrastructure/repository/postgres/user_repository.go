package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/jordangerads/pickem/internal/domain/user"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (user.User, bool, error) {
	const query = "SELECT id, first_name, last_name, email FROM users WHERE id = $1"

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}

	memberships, err := r.memberships(ctx, []int64{userID})
	if err != nil {
		return user.User{}, false, err
	}

	return userFromRow(row, memberships[userID]), true, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	const query = "SELECT id, first_name, last_name, email FROM users ORDER BY id"

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	memberships, err := r.memberships(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, userFromRow(row, memberships[row.ID]))
	}
	return out, nil
}

func (r *UserRepository) AddMembership(ctx context.Context, userID, poolID int64, role user.Role) error {
	const query = `
		INSERT INTO user_pools (user_id, pool_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, pool_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID, poolID, string(role)); err != nil {
		return fmt.Errorf("add membership: %w", err)
	}
	return nil
}

func (r *UserRepository) memberships(ctx context.Context, userIDs []int64) (map[int64][]user.Membership, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In("SELECT user_id, pool_id, role FROM user_pools WHERE user_id IN (?)", userIDs)
	if err != nil {
		return nil, fmt.Errorf("build memberships query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	out := make(map[int64][]user.Membership, len(userIDs))
	for _, row := range rows {
		out[row.UserID] = append(out[row.UserID], user.Membership{PoolID: row.PoolID, Role: user.Role(row.Role)})
	}
	for _, ms := range out {
		sort.Slice(ms, func(i, j int) bool { return ms[i].PoolID < ms[j].PoolID })
	}
	return out, nil
}

func userFromRow(row userTableModel, memberships []user.Membership) user.User {
	return user.User{
		ID:          row.ID,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		Email:       row.Email,
		Memberships: memberships,
	}
}
