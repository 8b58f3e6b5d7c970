package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jordangerads/pickem/internal/domain/game"
	"github.com/jordangerads/pickem/internal/domain/pool"
	"github.com/jordangerads/pickem/internal/domain/scoring"
	"github.com/jordangerads/pickem/internal/domain/team"
	"github.com/jordangerads/pickem/internal/infrastructure/repository/memory"
	basecache "github.com/jordangerads/pickem/internal/platform/cache"
)

func TestGameRepository_UpsertAllInvalidatesScheduleCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := memory.NewGameRepository([]game.Game{
		{ID: 101, Season: 2025, Week: 1, HomeTeamID: 1, AwayTeamID: 2, KickoffAt: time.Date(2025, time.September, 7, 17, 0, 0, 0, time.UTC)},
	})
	repo := NewGameRepository(next, basecache.NewStore(time.Minute))

	got, err := repo.ListBySeasonWeek(ctx, 2025, 1)
	if err != nil {
		t.Fatalf("list season week: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("games before upsert: got=%d want=1", len(got))
	}

	err = repo.UpsertAll(ctx, []game.Game{
		{ID: 102, Season: 2025, Week: 1, HomeTeamID: 3, AwayTeamID: 4, KickoffAt: time.Date(2025, time.September, 7, 20, 0, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err = repo.ListBySeasonWeek(ctx, 2025, 1)
	if err != nil {
		t.Fatalf("list season week after upsert: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("games after upsert: got=%d want=2", len(got))
	}
}

func TestPoolRepository_CreateDropsStaleLookup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := memory.NewPoolRepository(nil)
	repo := NewPoolRepository(next, basecache.NewStore(time.Minute))

	_, exists, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("get missing pool: %v", err)
	}
	if exists {
		t.Fatalf("pool 1 should not exist yet")
	}

	created, err := repo.Create(ctx, pool.Pool{ID: 1, Name: "Office Confidence", ScoringMethod: scoring.MethodSixteenDown})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, exists, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get created pool: %v", err)
	}
	if !exists {
		t.Fatalf("created pool should be visible, not the cached miss")
	}
	if got.Name != "Office Confidence" {
		t.Fatalf("pool name: got=%q want=%q", got.Name, "Office Confidence")
	}
}

func TestTeamRepository_UpsertAllInvalidatesLookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := memory.NewTeamRepository([]team.Team{
		{ID: 1, Name: "Green Bay Packers", Short: "GB"},
	})
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	got, err := repo.GetByIDs(ctx, []int64{1, 2})
	if err != nil {
		t.Fatalf("get teams: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("teams before upsert: got=%d want=1", len(got))
	}

	err = repo.UpsertAll(ctx, []team.Team{{ID: 2, Name: "Chicago Bears", Short: "CHI"}})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err = repo.GetByIDs(ctx, []int64{1, 2})
	if err != nil {
		t.Fatalf("get teams after upsert: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("teams after upsert: got=%d want=2", len(got))
	}
}
