package usecase

import (
	"context"
	"fmt"

	"github.com/jordangerads/pickem/internal/domain/pool"
	"github.com/jordangerads/pickem/internal/domain/user"
	"github.com/jordangerads/pickem/internal/platform/logging"
)

// PoolService manages pools and their memberships.
type PoolService struct {
	poolRepo pool.Repository
	userRepo user.Repository
	logger   *logging.Logger
}

func NewPoolService(poolRepo pool.Repository, userRepo user.Repository) *PoolService {
	return &PoolService{
		poolRepo: poolRepo,
		userRepo: userRepo,
		logger:   logging.Default(),
	}
}

func (s *PoolService) WithLogger(logger *logging.Logger) *PoolService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// CreatePool stores a new pool and enrolls its creator as admin.
func (s *PoolService) CreatePool(ctx context.Context, creatorID int64, p pool.Pool) (pool.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.CreatePool")
	defer span.End()

	if creatorID <= 0 {
		return pool.Pool{}, fmt.Errorf("%w: creator id is required", ErrMalformedRequest)
	}
	if err := p.Validate(); err != nil {
		return pool.Pool{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	_, exists, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return pool.Pool{}, dependencyFailure("get user by id", err)
	}
	if !exists {
		return pool.Pool{}, fmt.Errorf("%w: user=%d", ErrUserNotFound, creatorID)
	}

	created, err := s.poolRepo.Create(ctx, p)
	if err != nil {
		return pool.Pool{}, dependencyFailure("create pool", err)
	}

	if err := s.userRepo.AddMembership(ctx, creatorID, created.ID, user.RoleAdmin); err != nil {
		return pool.Pool{}, dependencyFailure("add creator membership", err)
	}

	s.logger.InfoContext(ctx, "pool created",
		"pool_id", created.ID, "scoring_method", string(created.ScoringMethod), "creator_id", creatorID)
	return created, nil
}

// GetPool looks up a pool by id.
func (s *PoolService) GetPool(ctx context.Context, poolID int64) (pool.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.GetPool")
	defer span.End()

	p, exists, err := s.poolRepo.GetByID(ctx, poolID)
	if err != nil {
		return pool.Pool{}, dependencyFailure("get pool by id", err)
	}
	if !exists {
		return pool.Pool{}, fmt.Errorf("%w: pool=%d", ErrPoolNotFound, poolID)
	}
	return p, nil
}

// JoinPool enrolls a user into an existing pool as a regular member.
func (s *PoolService) JoinPool(ctx context.Context, userID, poolID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.JoinPool")
	defer span.End()

	if userID <= 0 || poolID <= 0 {
		return fmt.Errorf("%w: user id and pool id are required", ErrMalformedRequest)
	}

	_, exists, err := s.poolRepo.GetByID(ctx, poolID)
	if err != nil {
		return dependencyFailure("get pool by id", err)
	}
	if !exists {
		return fmt.Errorf("%w: pool=%d", ErrPoolNotFound, poolID)
	}

	u, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return dependencyFailure("get user by id", err)
	}
	if !exists {
		return fmt.Errorf("%w: user=%d", ErrUserNotFound, userID)
	}
	if u.MemberOf(poolID) {
		return nil
	}

	if err := s.userRepo.AddMembership(ctx, userID, poolID, user.RoleMember); err != nil {
		return dependencyFailure("add membership", err)
	}

	s.logger.InfoContext(ctx, "user joined pool", "user_id", userID, "pool_id", poolID)
	return nil
}
