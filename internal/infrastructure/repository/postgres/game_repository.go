package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jordangerads/pickem/internal/domain/game"
)

const gameSelectColumns = "id, season, week, home_team_id, away_team_id, kickoff_at"

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) ListBySeasonWeek(ctx context.Context, season, week int) ([]game.Game, error) {
	query := "SELECT " + gameSelectColumns + " FROM games WHERE season = $1 AND week = $2 ORDER BY kickoff_at, id"

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, season, week); err != nil {
		return nil, fmt.Errorf("list games by season week: %w", err)
	}

	return gamesFromRows(rows), nil
}

func (r *GameRepository) GetByIDs(ctx context.Context, ids []int64) ([]game.Game, error) {
	query := "SELECT " + gameSelectColumns + " FROM games WHERE id = ANY($1) ORDER BY kickoff_at, id"

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("get games by ids: %w", err)
	}

	return gamesFromRows(rows), nil
}

func (r *GameRepository) ListByKickoffBetween(ctx context.Context, from, to time.Time) ([]game.Game, error) {
	query := "SELECT " + gameSelectColumns + " FROM games WHERE kickoff_at >= $1 AND kickoff_at < $2 ORDER BY kickoff_at, id"

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("list games by kickoff window: %w", err)
	}

	return gamesFromRows(rows), nil
}

func (r *GameRepository) UpsertAll(ctx context.Context, games []game.Game) error {
	if len(games) == 0 {
		return nil
	}

	const query = `
		INSERT INTO games (id, season, week, home_team_id, away_team_id, kickoff_at)
		VALUES (:id, :season, :week, :home_team_id, :away_team_id, :kickoff_at)
		ON CONFLICT (id) DO UPDATE SET
			season = EXCLUDED.season,
			week = EXCLUDED.week,
			home_team_id = EXCLUDED.home_team_id,
			away_team_id = EXCLUDED.away_team_id,
			kickoff_at = EXCLUDED.kickoff_at`

	rows := make([]gameTableModel, 0, len(games))
	for _, g := range games {
		rows = append(rows, gameTableModel{
			ID:         g.ID,
			Season:     g.Season,
			Week:       g.Week,
			HomeTeamID: g.HomeTeamID,
			AwayTeamID: g.AwayTeamID,
			KickoffAt:  g.KickoffAt.UTC(),
		})
	}

	if _, err := r.db.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("upsert games: %w", err)
	}
	return nil
}

func gamesFromRows(rows []gameTableModel) []game.Game {
	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, game.Game{
			ID:         row.ID,
			Season:     row.Season,
			Week:       row.Week,
			HomeTeamID: row.HomeTeamID,
			AwayTeamID: row.AwayTeamID,
			KickoffAt:  row.KickoffAt.UTC(),
		})
	}
	return out
}
