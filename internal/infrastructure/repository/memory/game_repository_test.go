package memory

import (
	"context"
	"testing"
	"time"
)

func TestGameRepository_ListByKickoffBetween_WindowIsHalfOpen(t *testing.T) {
	t.Parallel()

	repo := NewGameRepository(SeedGames())
	ctx := context.Background()

	from := time.Date(2025, time.September, 7, 17, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.September, 7, 20, 0, 0, 0, time.UTC)

	games, err := repo.ListByKickoffBetween(ctx, from, to)
	if err != nil {
		t.Fatalf("list by kickoff: %v", err)
	}

	// Games 101 and 102 kick off exactly at the window start; 103 kicks
	// off exactly at the window end and must be excluded.
	if len(games) != 2 {
		t.Fatalf("unexpected game count: got=%d want=2", len(games))
	}
	if games[0].ID != 101 || games[1].ID != 102 {
		t.Fatalf("unexpected games in window: %+v", games)
	}
}

func TestGameRepository_GetByIDs_SkipsUnknown(t *testing.T) {
	t.Parallel()

	repo := NewGameRepository(SeedGames())
	games, err := repo.GetByIDs(context.Background(), []int64{101, 999, 104})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("unexpected game count: got=%d want=2", len(games))
	}
}
