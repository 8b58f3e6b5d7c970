package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jordangerads/pickem/internal/domain/pick"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) List(ctx context.Context, userID, poolID int64, season, week int) ([]pick.Pick, error) {
	const query = `
		SELECT p.user_id, p.pool_id, p.game_id, p.chosen_team_id, p.confidence
		FROM picks p
		JOIN games g ON g.id = p.game_id
		WHERE p.user_id = $1 AND p.pool_id = $2 AND g.season = $3 AND g.week = $4
		ORDER BY p.game_id`

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, userID, poolID, season, week); err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

func (r *PickRepository) GetOne(ctx context.Context, userID, poolID, gameID int64) (pick.Pick, bool, error) {
	const query = `
		SELECT user_id, pool_id, game_id, chosen_team_id, confidence
		FROM picks
		WHERE user_id = $1 AND pool_id = $2 AND game_id = $3`

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, userID, poolID, gameID); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("get pick: %w", err)
	}

	return pickFromRow(row), true, nil
}

// SaveAll applies the batch in one transaction so a partial write never
// becomes visible.
func (r *PickRepository) SaveAll(ctx context.Context, picks []pick.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	const query = `
		INSERT INTO picks (user_id, pool_id, game_id, chosen_team_id, confidence)
		VALUES (:user_id, :pool_id, :game_id, :chosen_team_id, :confidence)
		ON CONFLICT (user_id, pool_id, game_id) DO UPDATE SET
			chosen_team_id = EXCLUDED.chosen_team_id,
			confidence = EXCLUDED.confidence`

	rows := make([]pickTableModel, 0, len(picks))
	for _, p := range picks {
		rows = append(rows, pickTableModel{
			UserID:       p.UserID,
			PoolID:       p.PoolID,
			GameID:       p.GameID,
			ChosenTeamID: p.ChosenTeamID,
			Confidence:   p.Confidence,
		})
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save picks: %w", err)
	}
	if _, err := tx.NamedExecContext(ctx, query, rows); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("save picks: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save picks: %w", err)
	}
	return nil
}

func pickFromRow(row pickTableModel) pick.Pick {
	return pick.Pick{
		UserID:       row.UserID,
		PoolID:       row.PoolID,
		GameID:       row.GameID,
		ChosenTeamID: row.ChosenTeamID,
		Confidence:   row.Confidence,
	}
}
