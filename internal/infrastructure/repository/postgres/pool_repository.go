package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jordangerads/pickem/internal/domain/pool"
	"github.com/jordangerads/pickem/internal/domain/scoring"
)

type PoolRepository struct {
	db *sqlx.DB
}

func NewPoolRepository(db *sqlx.DB) *PoolRepository {
	return &PoolRepository{db: db}
}

func (r *PoolRepository) GetByID(ctx context.Context, poolID int64) (pool.Pool, bool, error) {
	const query = "SELECT id, name, scoring_method FROM pools WHERE id = $1"

	var row poolTableModel
	if err := r.db.GetContext(ctx, &row, query, poolID); err != nil {
		if isNotFound(err) {
			return pool.Pool{}, false, nil
		}
		return pool.Pool{}, false, fmt.Errorf("get pool: %w", err)
	}

	return poolFromRow(row), true, nil
}

func (r *PoolRepository) Create(ctx context.Context, item pool.Pool) (pool.Pool, error) {
	const query = "INSERT INTO pools (name, scoring_method) VALUES ($1, $2) RETURNING id, name, scoring_method"

	var row poolTableModel
	if err := r.db.GetContext(ctx, &row, query, item.Name, string(item.ScoringMethod)); err != nil {
		return pool.Pool{}, fmt.Errorf("create pool: %w", err)
	}

	return poolFromRow(row), nil
}

func poolFromRow(row poolTableModel) pool.Pool {
	return pool.Pool{
		ID:            row.ID,
		Name:          row.Name,
		ScoringMethod: scoring.Method(row.ScoringMethod),
	}
}
