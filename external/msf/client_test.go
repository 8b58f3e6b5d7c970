package msf

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const weekPayload = `{
	"lastUpdatedOn": "2025-09-01T12:00:00.000Z",
	"games": [
		{"schedule": {"id": 101, "week": 1, "startTime": "2025-09-07T17:00:00.000Z",
			"awayTeam": {"id": 2, "abbreviation": "CHI"},
			"homeTeam": {"id": 1, "abbreviation": "GB"}}},
		{"schedule": {"id": 102, "week": 1, "startTime": "2025-09-07T20:00:00.000Z",
			"awayTeam": {"id": 4, "abbreviation": "DET"},
			"homeTeam": {"id": 3, "abbreviation": "MIN"}}}
	],
	"references": {"teamReferences": [
		{"id": 1, "city": "Green Bay", "name": "Packers", "abbreviation": "GB"},
		{"id": 2, "city": "Chicago", "name": "Bears", "abbreviation": "CHI"},
		{"id": 3, "city": "Minnesota", "name": "Vikings", "abbreviation": "MIN"},
		{"id": 4, "city": "Detroit", "name": "Lions", "abbreviation": "DET"}
	]}
}`

func newTestClient(serverURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:    serverURL,
		APIKey:     "key",
		Password:   "MYSPORTSFEEDS",
		Timeout:    2 * time.Second,
		MaxRetries: 0,
	})
}

func TestSeasonWeekSchedule_MapsGamesAndTeams(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/2025-regular/week/1/games.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") == "" {
			t.Error("expected basic auth header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(weekPayload))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	games, teams, err := client.SeasonWeekSchedule(context.Background(), 2025, 1)
	if err != nil {
		t.Fatalf("fetch schedule: %v", err)
	}

	if len(games) != 2 {
		t.Fatalf("unexpected game count: got=%d want=2", len(games))
	}
	if games[0].ID != 101 || games[0].Season != 2025 || games[0].Week != 1 {
		t.Fatalf("unexpected first game: %+v", games[0])
	}
	if games[0].HomeTeamID != 1 || games[0].AwayTeamID != 2 {
		t.Fatalf("unexpected matchup: %+v", games[0])
	}
	wantKickoff := time.Date(2025, time.September, 7, 17, 0, 0, 0, time.UTC)
	if !games[0].KickoffAt.Equal(wantKickoff) {
		t.Fatalf("unexpected kickoff: got=%v want=%v", games[0].KickoffAt, wantKickoff)
	}

	if len(teams) != 4 {
		t.Fatalf("unexpected team count: got=%d want=4", len(teams))
	}
	if teams[0].Name != "Green Bay Packers" || teams[0].Short != "GB" {
		t.Fatalf("unexpected first team: %+v", teams[0])
	}
}

func TestSeasonWeekSchedule_CachesResponses(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(weekPayload))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	if _, _, err := client.SeasonWeekSchedule(ctx, 2025, 1); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, _, err := client.SeasonWeekSchedule(ctx, 2025, 1); err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if got := requests.Load(); got != 1 {
		t.Fatalf("expected one upstream request, got %d", got)
	}
}

func TestSeasonWeekSchedule_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(weekPayload))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		APIKey:     "key",
		Password:   "MYSPORTSFEEDS",
		Timeout:    2 * time.Second,
		MaxRetries: 1,
	})

	games, _, err := client.SeasonWeekSchedule(context.Background(), 2025, 1)
	if err != nil {
		t.Fatalf("fetch schedule: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("unexpected game count after retry: %d", len(games))
	}
	if got := requests.Load(); got != 2 {
		t.Fatalf("expected two upstream requests, got %d", got)
	}
}

func TestSeasonWeekSchedule_ClientErrorDoesNotRetry(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		APIKey:     "key",
		Password:   "MYSPORTSFEEDS",
		Timeout:    2 * time.Second,
		MaxRetries: 2,
	})

	if _, _, err := client.SeasonWeekSchedule(context.Background(), 2025, 1); err == nil {
		t.Fatal("expected error on 401 response")
	}
	if got := requests.Load(); got != 1 {
		t.Fatalf("401 must not be retried, got %d requests", got)
	}
}

func TestUpcomingSchedule_WalksDaysAndDeduplicates(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(weekPayload))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	from := time.Date(2025, time.September, 6, 0, 0, 0, 0, time.UTC)

	games, teams, err := client.UpcomingSchedule(context.Background(), from, 2)
	if err != nil {
		t.Fatalf("fetch upcoming: %v", err)
	}

	if got := requests.Load(); got != 2 {
		t.Fatalf("expected one request per day, got %d", got)
	}
	// Both days return the same payload, so the result stays deduplicated.
	if len(games) != 2 {
		t.Fatalf("unexpected game count: got=%d want=2", len(games))
	}
	if len(teams) != 4 {
		t.Fatalf("unexpected team count: got=%d want=4", len(teams))
	}
}

func TestSeasonFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		at   time.Time
		want int
	}{
		{time.Date(2025, time.September, 6, 0, 0, 0, 0, time.UTC), 2025},
		{time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), 2025},
		{time.Date(2026, time.February, 8, 0, 0, 0, 0, time.UTC), 2025},
		{time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), 2026},
	}

	for _, tc := range cases {
		if got := seasonFor(tc.at); got != tc.want {
			t.Fatalf("seasonFor(%v): got=%d want=%d", tc.at, got, tc.want)
		}
	}
}
