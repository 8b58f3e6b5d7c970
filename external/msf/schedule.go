package msf

import (
	"fmt"
	"time"

	"github.com/jordangerads/pickem/internal/domain/game"
	"github.com/jordangerads/pickem/internal/domain/team"
)

type gamesEnvelope struct {
	LastUpdatedOn string          `json:"lastUpdatedOn"`
	Games         []scheduledGame `json:"games"`
	References    gamesReferences `json:"references"`
}

type scheduledGame struct {
	Schedule gameSchedule `json:"schedule"`
}

type gameSchedule struct {
	ID        int64   `json:"id"`
	Week      int     `json:"week"`
	StartTime string  `json:"startTime"`
	AwayTeam  teamRef `json:"awayTeam"`
	HomeTeam  teamRef `json:"homeTeam"`
}

type teamRef struct {
	ID           int64  `json:"id"`
	Abbreviation string `json:"abbreviation"`
}

type gamesReferences struct {
	TeamReferences []teamReference `json:"teamReferences"`
}

type teamReference struct {
	ID           int64  `json:"id"`
	City         string `json:"city"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

func mapEnvelope(envelope gamesEnvelope, season int) ([]game.Game, []team.Team, error) {
	games := make([]game.Game, 0, len(envelope.Games))
	for _, item := range envelope.Games {
		s := item.Schedule
		if s.ID <= 0 {
			continue
		}
		kickoff, err := time.Parse(time.RFC3339, s.StartTime)
		if err != nil {
			return nil, nil, fmt.Errorf("parse start time game=%d: %w", s.ID, err)
		}
		games = append(games, game.Game{
			ID:         s.ID,
			Season:     season,
			Week:       s.Week,
			HomeTeamID: s.HomeTeam.ID,
			AwayTeamID: s.AwayTeam.ID,
			KickoffAt:  kickoff.UTC(),
		})
	}

	teams := make([]team.Team, 0, len(envelope.References.TeamReferences))
	for _, ref := range envelope.References.TeamReferences {
		if ref.ID <= 0 {
			continue
		}
		name := ref.Name
		if ref.City != "" {
			name = ref.City + " " + ref.Name
		}
		teams = append(teams, team.Team{ID: ref.ID, Name: name, Short: ref.Abbreviation})
	}

	return games, teams, nil
}
