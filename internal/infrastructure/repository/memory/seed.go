package memory

import (
	"time"

	"github.com/jordangerads/pickem/internal/domain/game"
	"github.com/jordangerads/pickem/internal/domain/pool"
	"github.com/jordangerads/pickem/internal/domain/scoring"
	"github.com/jordangerads/pickem/internal/domain/team"
	"github.com/jordangerads/pickem/internal/domain/user"
)

const (
	SeedSeason = 2025
	SeedWeek   = 1

	PoolIDOfficeConfidence = int64(1)
	PoolIDFamilyStraight   = int64(2)
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: 1, Name: "Green Bay Packers", Short: "GB"},
		{ID: 2, Name: "Chicago Bears", Short: "CHI"},
		{ID: 3, Name: "Minnesota Vikings", Short: "MIN"},
		{ID: 4, Name: "Detroit Lions", Short: "DET"},
		{ID: 5, Name: "Kansas City Chiefs", Short: "KC"},
		{ID: 6, Name: "Buffalo Bills", Short: "BUF"},
		{ID: 7, Name: "Philadelphia Eagles", Short: "PHI"},
		{ID: 8, Name: "Dallas Cowboys", Short: "DAL"},
	}
}

func SeedGames() []game.Game {
	kickoff := time.Date(2025, time.September, 7, 17, 0, 0, 0, time.UTC)
	return []game.Game{
		{ID: 101, Season: SeedSeason, Week: SeedWeek, HomeTeamID: 1, AwayTeamID: 2, KickoffAt: kickoff},
		{ID: 102, Season: SeedSeason, Week: SeedWeek, HomeTeamID: 3, AwayTeamID: 4, KickoffAt: kickoff},
		{ID: 103, Season: SeedSeason, Week: SeedWeek, HomeTeamID: 5, AwayTeamID: 6, KickoffAt: kickoff.Add(3 * time.Hour)},
		{ID: 104, Season: SeedSeason, Week: SeedWeek, HomeTeamID: 7, AwayTeamID: 8, KickoffAt: kickoff.Add(7 * time.Hour)},
	}
}

func SeedPools() []pool.Pool {
	return []pool.Pool{
		{ID: PoolIDOfficeConfidence, Name: "Office Confidence Pool", ScoringMethod: scoring.MethodSixteenDown},
		{ID: PoolIDFamilyStraight, Name: "Family Straight Picks", ScoringMethod: scoring.MethodAbsolute},
	}
}

func SeedUsers() []user.User {
	return []user.User{
		{
			ID: 1, FirstName: "Jordan", LastName: "Gerads", Email: "jordan@example.com",
			Memberships: []user.Membership{
				{PoolID: PoolIDOfficeConfidence, Role: user.RoleAdmin},
				{PoolID: PoolIDFamilyStraight, Role: user.RoleMember},
			},
		},
		{
			ID: 2, FirstName: "Sam", LastName: "Olson", Email: "sam@example.com",
			Memberships: []user.Membership{
				{PoolID: PoolIDOfficeConfidence, Role: user.RoleMember},
			},
		},
		{
			ID: 3, FirstName: "Casey", LastName: "Tran", Email: "casey@example.com",
			Memberships: []user.Membership{
				{PoolID: PoolIDFamilyStraight, Role: user.RoleMember},
			},
		},
	}
}
