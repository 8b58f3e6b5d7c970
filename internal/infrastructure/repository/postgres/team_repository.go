package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jordangerads/pickem/internal/domain/team"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByIDs(ctx context.Context, ids []int64) ([]team.Team, error) {
	const query = "SELECT id, name, short FROM teams WHERE id = ANY($1) ORDER BY id"

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("get teams by ids: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{ID: row.ID, Name: row.Name, Short: row.Short})
	}
	return out, nil
}

func (r *TeamRepository) UpsertAll(ctx context.Context, teams []team.Team) error {
	if len(teams) == 0 {
		return nil
	}

	const query = `
		INSERT INTO teams (id, name, short)
		VALUES (:id, :name, :short)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			short = EXCLUDED.short`

	rows := make([]teamTableModel, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, teamTableModel{ID: t.ID, Name: t.Name, Short: t.Short})
	}

	if _, err := r.db.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("upsert teams: %w", err)
	}
	return nil
}
