package postgres

import "time"

type teamTableModel struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Short string `db:"short"`
}

type gameTableModel struct {
	ID         int64     `db:"id"`
	Season     int       `db:"season"`
	Week       int       `db:"week"`
	HomeTeamID int64     `db:"home_team_id"`
	AwayTeamID int64     `db:"away_team_id"`
	KickoffAt  time.Time `db:"kickoff_at"`
}

type poolTableModel struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	ScoringMethod string `db:"scoring_method"`
}

type userTableModel struct {
	ID        int64  `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
}

type membershipTableModel struct {
	UserID int64  `db:"user_id"`
	PoolID int64  `db:"pool_id"`
	Role   string `db:"role"`
}

type pickTableModel struct {
	UserID       int64  `db:"user_id"`
	PoolID       int64  `db:"pool_id"`
	GameID       int64  `db:"game_id"`
	ChosenTeamID *int64 `db:"chosen_team_id"`
	Confidence   *int   `db:"confidence"`
}
