package game

import "time"

// Game is one scheduled matchup. Games are immutable once scheduled; the
// schedule snapshot for a season/week is the authoritative source.
type Game struct {
	ID         int64
	Season     int
	Week       int
	HomeTeamID int64
	AwayTeamID int64
	KickoffAt  time.Time
}

func (g Game) HasTeam(teamID int64) bool {
	return teamID == g.HomeTeamID || teamID == g.AwayTeamID
}

// Started reports whether the kickoff instant is at or before now.
func (g Game) Started(now time.Time) bool {
	return !g.KickoffAt.After(now)
}
