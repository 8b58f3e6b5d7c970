package usecase

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/jordangerads/pickem/internal/domain/game"
	"github.com/jordangerads/pickem/internal/domain/pick"
	"github.com/jordangerads/pickem/internal/domain/pool"
	"github.com/jordangerads/pickem/internal/domain/user"
	"github.com/jordangerads/pickem/internal/platform/logging"
)

// ResolvedWeek is the schedule context a valid batch resolved to: exactly one
// season and one week, plus that week's games keyed by id.
type ResolvedWeek struct {
	Season int
	Week   int
	Games  map[int64]game.Game
}

// PickValidator decides whether a submission batch may be persisted. Hard
// failures reject the whole request; per-game soft invalidity comes back as a
// reason map for the caller to re-prompt on.
type PickValidator struct {
	gameRepo game.Repository
	userRepo user.Repository
	poolRepo pool.Repository
	pickRepo pick.Repository
	clock    clockwork.Clock
	logger   *logging.Logger
}

func NewPickValidator(
	gameRepo game.Repository,
	userRepo user.Repository,
	poolRepo pool.Repository,
	pickRepo pick.Repository,
) *PickValidator {
	return &PickValidator{
		gameRepo: gameRepo,
		userRepo: userRepo,
		poolRepo: poolRepo,
		pickRepo: pickRepo,
		clock:    clockwork.NewRealClock(),
		logger:   logging.Default(),
	}
}

func (v *PickValidator) WithClock(clock clockwork.Clock) *PickValidator {
	if clock != nil {
		v.clock = clock
	}
	return v
}

func (v *PickValidator) WithLogger(logger *logging.Logger) *PickValidator {
	if logger != nil {
		v.logger = logger
	}
	return v
}

// ValidateSubmission runs the hard-rejection checks in order, then per-game
// soft validation, then the scoring-method confidence check when every pick
// is individually acceptable. A non-empty reason map means "request fine,
// content rejected"; an error means the request itself is rejected.
func (v *PickValidator) ValidateSubmission(ctx context.Context, userID, poolID int64, picks []pick.GamePick) (ResolvedWeek, map[int64]pick.InvalidityReason, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickValidator.ValidateSubmission")
	defer span.End()

	if userID <= 0 || poolID <= 0 || len(picks) == 0 {
		return ResolvedWeek{}, nil, fmt.Errorf("%w: user id, pool id and at least one pick are required", ErrMalformedRequest)
	}

	gameIDs := make([]int64, 0, len(picks))
	seen := make(map[int64]struct{}, len(picks))
	for _, gp := range picks {
		if _, dup := seen[gp.GameID]; dup {
			return ResolvedWeek{}, nil, fmt.Errorf("%w: game=%d", ErrDuplicateGame, gp.GameID)
		}
		seen[gp.GameID] = struct{}{}
		gameIDs = append(gameIDs, gp.GameID)
	}

	if err := v.validateMembership(ctx, userID, poolID); err != nil {
		return ResolvedWeek{}, nil, err
	}

	resolved, err := v.resolveWeek(ctx, gameIDs, len(picks))
	if err != nil {
		return ResolvedWeek{}, nil, err
	}

	reasons, err := v.validatePicks(ctx, userID, poolID, picks, resolved)
	if err != nil {
		return ResolvedWeek{}, nil, err
	}
	if len(reasons) > 0 {
		return resolved, reasons, nil
	}

	if err := v.validateConfidences(ctx, poolID, picks); err != nil {
		return ResolvedWeek{}, nil, err
	}

	return resolved, nil, nil
}

func (v *PickValidator) validateMembership(ctx context.Context, userID, poolID int64) error {
	u, exists, err := v.userRepo.GetByID(ctx, userID)
	if err != nil {
		return dependencyFailure("get user by id", err)
	}
	if !exists {
		return fmt.Errorf("%w: user=%d", ErrUserNotFound, userID)
	}
	if !u.MemberOf(poolID) {
		return fmt.Errorf("%w: user=%d pool=%d", ErrUserNotInPool, userID, poolID)
	}

	return nil
}

// resolveWeek checks that the batch spans exactly one season and week and
// that its size matches the schedule for that week.
func (v *PickValidator) resolveWeek(ctx context.Context, gameIDs []int64, batchSize int) (ResolvedWeek, error) {
	games, err := v.gameRepo.GetByIDs(ctx, gameIDs)
	if err != nil {
		return ResolvedWeek{}, dependencyFailure("get games by ids", err)
	}

	seasons := make(map[int]struct{}, 1)
	weeks := make(map[int]struct{}, 1)
	for _, g := range games {
		seasons[g.Season] = struct{}{}
		weeks[g.Week] = struct{}{}
	}
	if len(seasons) != 1 || len(weeks) != 1 {
		return ResolvedWeek{}, fmt.Errorf("%w: seasons=%d weeks=%d", ErrAmbiguousWeek, len(seasons), len(weeks))
	}

	resolved := ResolvedWeek{
		Season: games[0].Season,
		Week:   games[0].Week,
	}

	scheduled, err := v.gameRepo.ListBySeasonWeek(ctx, resolved.Season, resolved.Week)
	if err != nil {
		return ResolvedWeek{}, dependencyFailure("list games for season and week", err)
	}
	// One slot per scheduled game, even if some slots are still undecided.
	if len(scheduled) != batchSize {
		return ResolvedWeek{}, fmt.Errorf("%w: expected=%d received=%d", ErrBatchSizeMismatch, len(scheduled), batchSize)
	}

	resolved.Games = make(map[int64]game.Game, len(scheduled))
	for _, g := range scheduled {
		resolved.Games[g.ID] = g
	}

	return resolved, nil
}

func (v *PickValidator) validatePicks(ctx context.Context, userID, poolID int64, picks []pick.GamePick, resolved ResolvedWeek) (map[int64]pick.InvalidityReason, error) {
	now := v.clock.Now()
	reasons := make(map[int64]pick.InvalidityReason)

	for _, gp := range picks {
		if gp.ChosenTeamID == nil {
			// Undecided slot, always legal.
			continue
		}

		g, ok := resolved.Games[gp.GameID]
		if !ok {
			v.logger.WarnContext(ctx, "pick references game outside resolved week",
				"game_id", gp.GameID, "season", resolved.Season, "week", resolved.Week)
			reasons[gp.GameID] = pick.ReasonGameNotFound
			continue
		}

		if !g.HasTeam(*gp.ChosenTeamID) {
			v.logger.WarnContext(ctx, "pick chose a team not playing in the game",
				"game_id", gp.GameID, "chosen_team_id", *gp.ChosenTeamID,
				"home_team_id", g.HomeTeamID, "away_team_id", g.AwayTeamID)
			reasons[gp.GameID] = pick.ReasonInvalidChosenTeam
		}

		if g.Started(now) {
			ok, err := v.pickUnchangedSinceKickoff(ctx, userID, poolID, gp)
			if err != nil {
				v.logger.ErrorContext(ctx, "lookup of stored pick failed during lock check",
					"game_id", gp.GameID, "error", err)
				return nil, err
			}
			if !ok {
				v.logger.WarnContext(ctx, "pick for started game differs from stored value", "game_id", gp.GameID)
				reasons[gp.GameID] = pick.ReasonGameStarted
			}
		}
	}

	return reasons, nil
}

// pickUnchangedSinceKickoff enforces the game-started lock: after kickoff a
// resubmission must equal the stored pick field-by-field, and with no stored
// pick only a fully empty slot is acceptable.
func (v *PickValidator) pickUnchangedSinceKickoff(ctx context.Context, userID, poolID int64, gp pick.GamePick) (bool, error) {
	stored, exists, err := v.pickRepo.GetOne(ctx, userID, poolID, gp.GameID)
	if err != nil {
		return false, dependencyFailure("get stored pick", err)
	}
	if !exists {
		return gp.Empty(), nil
	}

	return gp.Matches(stored), nil
}

func (v *PickValidator) validateConfidences(ctx context.Context, poolID int64, picks []pick.GamePick) error {
	p, exists, err := v.poolRepo.GetByID(ctx, poolID)
	if err != nil {
		return dependencyFailure("get pool by id", err)
	}
	if !exists {
		return fmt.Errorf("%w: pool=%d", ErrPoolNotFound, poolID)
	}

	method := p.ScoringMethod
	if !method.Valid() {
		return fmt.Errorf("%w: pool=%d method=%q", ErrUnknownScoringMethod, poolID, method)
	}

	confidences := make([]*int, 0, len(picks))
	for _, gp := range picks {
		confidences = append(confidences, gp.Confidence)
	}
	if !method.ConfidencesValid(confidences) {
		return fmt.Errorf("%w: method=%s", ErrInvalidConfidence, method)
	}

	return nil
}
