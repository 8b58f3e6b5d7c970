package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jordangerads/pickem/internal/domain/game"
	"github.com/jordangerads/pickem/internal/domain/team"
	"github.com/jordangerads/pickem/internal/platform/logging"
)

// ScheduleFeed is the upstream schedule source. Implementations return the
// feed's view of games and teams; the sync service owns persistence.
type ScheduleFeed interface {
	SeasonWeekSchedule(ctx context.Context, season, week int) ([]game.Game, []team.Team, error)
	UpcomingSchedule(ctx context.Context, from time.Time, days int) ([]game.Game, []team.Team, error)
}

// ScheduleSyncService mirrors the upstream feed into local storage so the
// validator and reminder sweep never call out of process.
type ScheduleSyncService struct {
	feed     ScheduleFeed
	gameRepo game.Repository
	teamRepo team.Repository
	clock    clockwork.Clock
	logger   *logging.Logger
}

func NewScheduleSyncService(feed ScheduleFeed, gameRepo game.Repository, teamRepo team.Repository) *ScheduleSyncService {
	return &ScheduleSyncService{
		feed:     feed,
		gameRepo: gameRepo,
		teamRepo: teamRepo,
		clock:    clockwork.NewRealClock(),
		logger:   logging.Default(),
	}
}

func (s *ScheduleSyncService) WithClock(clock clockwork.Clock) *ScheduleSyncService {
	if clock != nil {
		s.clock = clock
	}
	return s
}

func (s *ScheduleSyncService) WithLogger(logger *logging.Logger) *ScheduleSyncService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// SyncSeasonWeek pulls one week of schedule from the feed and upserts it.
func (s *ScheduleSyncService) SyncSeasonWeek(ctx context.Context, season, week int) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleSyncService.SyncSeasonWeek")
	defer span.End()

	if season <= 0 || week <= 0 {
		return 0, fmt.Errorf("%w: season and week are required", ErrMalformedRequest)
	}

	games, teams, err := s.feed.SeasonWeekSchedule(ctx, season, week)
	if err != nil {
		return 0, dependencyFailure("fetch season week schedule", err)
	}

	if err := s.store(ctx, games, teams); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "season week schedule synced",
		"season", season, "week", week, "games", len(games), "teams", len(teams))
	return len(games), nil
}

// SyncUpcoming pulls the next few days of schedule and upserts it.
func (s *ScheduleSyncService) SyncUpcoming(ctx context.Context, days int) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleSyncService.SyncUpcoming")
	defer span.End()

	if days <= 0 {
		return 0, fmt.Errorf("%w: days must be positive", ErrMalformedRequest)
	}

	games, teams, err := s.feed.UpcomingSchedule(ctx, s.clock.Now(), days)
	if err != nil {
		return 0, dependencyFailure("fetch upcoming schedule", err)
	}

	if err := s.store(ctx, games, teams); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "upcoming schedule synced", "days", days, "games", len(games), "teams", len(teams))
	return len(games), nil
}

func (s *ScheduleSyncService) store(ctx context.Context, games []game.Game, teams []team.Team) error {
	if len(teams) > 0 {
		if err := s.teamRepo.UpsertAll(ctx, teams); err != nil {
			return dependencyFailure("upsert teams", err)
		}
	}
	if len(games) > 0 {
		if err := s.gameRepo.UpsertAll(ctx, games); err != nil {
			return dependencyFailure("upsert games", err)
		}
	}
	return nil
}
