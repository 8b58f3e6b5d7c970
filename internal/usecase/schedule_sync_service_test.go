package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jordangerads/pickem/internal/domain/game"
	"github.com/jordangerads/pickem/internal/domain/team"
	"github.com/jordangerads/pickem/internal/infrastructure/repository/memory"
)

type stubFeed struct {
	games    []game.Game
	teams    []team.Team
	err      error
	lastFrom time.Time
	lastDays int
}

func (f *stubFeed) SeasonWeekSchedule(_ context.Context, _, _ int) ([]game.Game, []team.Team, error) {
	return f.games, f.teams, f.err
}

func (f *stubFeed) UpcomingSchedule(_ context.Context, from time.Time, days int) ([]game.Game, []team.Team, error) {
	f.lastFrom = from
	f.lastDays = days
	return f.games, f.teams, f.err
}

func TestSyncSeasonWeek_UpsertsFeedData(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2025, time.September, 14, 17, 0, 0, 0, time.UTC)
	feed := &stubFeed{
		games: []game.Game{
			{ID: 201, Season: 2025, Week: 2, HomeTeamID: 1, AwayTeamID: 5, KickoffAt: kickoff},
			{ID: 202, Season: 2025, Week: 2, HomeTeamID: 6, AwayTeamID: 2, KickoffAt: kickoff},
		},
		teams: []team.Team{
			{ID: 1, Name: "Green Bay Packers", Short: "GB"},
			{ID: 5, Name: "Kansas City Chiefs", Short: "KC"},
		},
	}
	games := memory.NewGameRepository(nil)
	teams := memory.NewTeamRepository(nil)
	service := NewScheduleSyncService(feed, games, teams)

	count, err := service.SyncSeasonWeek(context.Background(), 2025, 2)
	if err != nil {
		t.Fatalf("sync season week: %v", err)
	}
	if count != 2 {
		t.Fatalf("unexpected synced count: got=%d want=2", count)
	}

	stored, err := games.ListBySeasonWeek(context.Background(), 2025, 2)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("unexpected stored games: got=%d want=2", len(stored))
	}
}

func TestSyncSeasonWeek_RejectsBadArguments(t *testing.T) {
	t.Parallel()

	service := NewScheduleSyncService(&stubFeed{}, memory.NewGameRepository(nil), memory.NewTeamRepository(nil))
	if _, err := service.SyncSeasonWeek(context.Background(), 0, 1); !errors.Is(err, ErrMalformedRequest) {
		t.Fatalf("expected ErrMalformedRequest, got %v", err)
	}
	if _, err := service.SyncSeasonWeek(context.Background(), 2025, 0); !errors.Is(err, ErrMalformedRequest) {
		t.Fatalf("expected ErrMalformedRequest, got %v", err)
	}
}

func TestSyncSeasonWeek_FeedFailureIsDependencyError(t *testing.T) {
	t.Parallel()

	feed := &stubFeed{err: errors.New("upstream down")}
	service := NewScheduleSyncService(feed, memory.NewGameRepository(nil), memory.NewTeamRepository(nil))

	_, err := service.SyncSeasonWeek(context.Background(), 2025, 2)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestSyncUpcoming_PassesClockTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.September, 4, 9, 0, 0, 0, time.UTC)
	feed := &stubFeed{}
	service := NewScheduleSyncService(feed, memory.NewGameRepository(nil), memory.NewTeamRepository(nil)).
		WithClock(clockwork.NewFakeClockAt(now))

	if _, err := service.SyncUpcoming(context.Background(), 7); err != nil {
		t.Fatalf("sync upcoming: %v", err)
	}
	if !feed.lastFrom.Equal(now) {
		t.Fatalf("unexpected window start: got=%v want=%v", feed.lastFrom, now)
	}
	if feed.lastDays != 7 {
		t.Fatalf("unexpected window days: got=%d want=7", feed.lastDays)
	}
}
