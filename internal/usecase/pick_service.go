package usecase

import (
	"context"
	"fmt"

	"github.com/jordangerads/pickem/internal/domain/game"
	"github.com/jordangerads/pickem/internal/domain/pick"
	"github.com/jordangerads/pickem/internal/domain/pool"
	"github.com/jordangerads/pickem/internal/platform/id"
	"github.com/jordangerads/pickem/internal/platform/logging"
	"github.com/jordangerads/pickem/internal/platform/resilience"
)

// SubmissionResult reports the outcome of a submission attempt. An empty
// Invalid map means the whole batch was persisted; a non-empty map means
// nothing was written and each entry names why its game was rejected.
type SubmissionResult struct {
	Season  int
	Week    int
	Invalid map[int64]pick.InvalidityReason
}

func (r SubmissionResult) Accepted() bool {
	return len(r.Invalid) == 0
}

// PickService is the write and read surface for weekly pick batches.
type PickService struct {
	pickRepo  pick.Repository
	gameRepo  game.Repository
	poolRepo  pool.Repository
	validator *PickValidator
	locks     *resilience.KeyedMutex
	idGen     id.Generator
	logger    *logging.Logger
}

func NewPickService(
	pickRepo pick.Repository,
	gameRepo game.Repository,
	poolRepo pool.Repository,
	validator *PickValidator,
) *PickService {
	return &PickService{
		pickRepo:  pickRepo,
		gameRepo:  gameRepo,
		poolRepo:  poolRepo,
		validator: validator,
		locks:     resilience.NewKeyedMutex(),
		idGen:     id.UUIDGenerator{},
		logger:    logging.Default(),
	}
}

func (s *PickService) WithIDGenerator(gen id.Generator) *PickService {
	if gen != nil {
		s.idGen = gen
	}
	return s
}

func (s *PickService) WithLogger(logger *logging.Logger) *PickService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// SubmitPicks validates and persists one user's batch for a single week.
// Concurrent submissions for the same user, pool and week are serialized, so
// the create-or-update decision below always sees a settled store.
func (s *PickService) SubmitPicks(ctx context.Context, userID, poolID int64, picks []pick.GamePick) (SubmissionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SubmitPicks")
	defer span.End()

	resolved, invalid, err := s.validator.ValidateSubmission(ctx, userID, poolID, picks)
	if err != nil {
		return SubmissionResult{}, err
	}
	if len(invalid) > 0 {
		return SubmissionResult{Season: resolved.Season, Week: resolved.Week, Invalid: invalid}, nil
	}

	unlock := s.locks.Lock(fmt.Sprintf("picks:%d:%d:%d:%d", userID, poolID, resolved.Season, resolved.Week))
	defer unlock()

	existing, err := s.pickRepo.List(ctx, userID, poolID, resolved.Season, resolved.Week)
	if err != nil {
		return SubmissionResult{}, dependencyFailure("list stored picks", err)
	}

	submissionID := s.idGen.NewID()
	if len(existing) == 0 {
		if err := s.createAll(ctx, userID, poolID, picks); err != nil {
			return SubmissionResult{}, err
		}
		s.logger.InfoContext(ctx, "pick batch created",
			"submission_id", submissionID, "user_id", userID, "pool_id", poolID,
			"season", resolved.Season, "week", resolved.Week, "picks", len(picks))
		return SubmissionResult{Season: resolved.Season, Week: resolved.Week}, nil
	}

	if err := s.updateConfidences(ctx, existing, picks); err != nil {
		return SubmissionResult{}, err
	}
	s.logger.InfoContext(ctx, "pick batch confidences updated",
		"submission_id", submissionID, "user_id", userID, "pool_id", poolID,
		"season", resolved.Season, "week", resolved.Week, "picks", len(existing))
	return SubmissionResult{Season: resolved.Season, Week: resolved.Week}, nil
}

func (s *PickService) createAll(ctx context.Context, userID, poolID int64, picks []pick.GamePick) error {
	rows := make([]pick.Pick, 0, len(picks))
	for _, gp := range picks {
		rows = append(rows, pick.Pick{
			UserID:       userID,
			PoolID:       poolID,
			GameID:       gp.GameID,
			ChosenTeamID: gp.ChosenTeamID,
			Confidence:   gp.Confidence,
		})
	}
	if err := s.pickRepo.SaveAll(ctx, rows); err != nil {
		return dependencyFailure("save pick batch", err)
	}
	return nil
}

// updateConfidences handles resubmission over an existing batch. Only the
// confidence values are refreshed; stored chosen teams are kept as they are,
// whatever the incoming batch says.
func (s *PickService) updateConfidences(ctx context.Context, existing []pick.Pick, picks []pick.GamePick) error {
	incoming := make(map[int64]pick.GamePick, len(picks))
	for _, gp := range picks {
		incoming[gp.GameID] = gp
	}

	for i := range existing {
		gp, ok := incoming[existing[i].GameID]
		if !ok {
			continue
		}
		existing[i].Confidence = gp.Confidence
	}

	if err := s.pickRepo.SaveAll(ctx, existing); err != nil {
		return dependencyFailure("save updated picks", err)
	}
	return nil
}

// GetUserPicks returns the stored batch for one user, pool and week. An empty
// slice means the user has not submitted yet.
func (s *PickService) GetUserPicks(ctx context.Context, userID, poolID int64, season, week int) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.GetUserPicks")
	defer span.End()

	if userID <= 0 || poolID <= 0 {
		return nil, fmt.Errorf("%w: user id and pool id are required", ErrMalformedRequest)
	}

	picks, err := s.pickRepo.List(ctx, userID, poolID, season, week)
	if err != nil {
		return nil, dependencyFailure("list stored picks", err)
	}
	return picks, nil
}

// GetConfidenceValues returns the orderable confidence values for a pool's
// scoring method, sized to the week's schedule.
func (s *PickService) GetConfidenceValues(ctx context.Context, poolID int64, season, week int) ([]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.GetConfidenceValues")
	defer span.End()

	p, exists, err := s.poolRepo.GetByID(ctx, poolID)
	if err != nil {
		return nil, dependencyFailure("get pool by id", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: pool=%d", ErrPoolNotFound, poolID)
	}

	games, err := s.gameRepo.ListBySeasonWeek(ctx, season, week)
	if err != nil {
		return nil, dependencyFailure("list games for season and week", err)
	}

	values, ok := p.ScoringMethod.ConfidenceValues(len(games))
	if !ok {
		return nil, fmt.Errorf("%w: pool=%d method=%q games=%d", ErrUnknownScoringMethod, poolID, p.ScoringMethod, len(games))
	}
	return values, nil
}
