package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jordangerads/pickem/internal/domain/pool"
	"github.com/jordangerads/pickem/internal/domain/scoring"
	"github.com/jordangerads/pickem/internal/domain/user"
	poolmock "github.com/jordangerads/pickem/internal/mocks/domain/pool"
	usermock "github.com/jordangerads/pickem/internal/mocks/domain/user"
)

func TestPoolService_CreatePool_EnrollsCreatorAsAdminUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	poolRepo := poolmock.NewRepository(t)
	userRepo := usermock.NewRepository(t)
	service := NewPoolService(poolRepo, userRepo)

	creatorID := int64(7)
	input := pool.Pool{Name: "Neighborhood Pool", ScoringMethod: scoring.MethodAbsolute}
	created := pool.Pool{ID: 42, Name: input.Name, ScoringMethod: input.ScoringMethod}

	userRepo.
		On("GetByID", mock.Anything, creatorID).
		Return(user.User{ID: creatorID}, true, nil).
		Once()
	poolRepo.
		On("Create", mock.Anything, input).
		Return(created, nil).
		Once()
	userRepo.
		On("AddMembership", mock.Anything, creatorID, created.ID, user.RoleAdmin).
		Return(nil).
		Once()

	got, err := service.CreatePool(ctx, creatorID, input)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("unexpected pool id: got=%d want=%d", got.ID, created.ID)
	}
}

func TestPoolService_CreatePool_UnknownCreatorUsingMockery(t *testing.T) {
	t.Parallel()

	poolRepo := poolmock.NewRepository(t)
	userRepo := usermock.NewRepository(t)
	service := NewPoolService(poolRepo, userRepo)

	userRepo.
		On("GetByID", mock.Anything, int64(99)).
		Return(user.User{}, false, nil).
		Once()

	_, err := service.CreatePool(context.Background(), 99, pool.Pool{Name: "Ghost Pool", ScoringMethod: scoring.MethodAbsolute})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPoolService_CreatePool_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	service := NewPoolService(poolmock.NewRepository(t), usermock.NewRepository(t))

	_, err := service.CreatePool(context.Background(), 1, pool.Pool{Name: "", ScoringMethod: scoring.MethodAbsolute})
	if !errors.Is(err, ErrMalformedRequest) {
		t.Fatalf("expected ErrMalformedRequest for empty name, got %v", err)
	}

	_, err = service.CreatePool(context.Background(), 1, pool.Pool{Name: "Pool", ScoringMethod: scoring.Method("BEST_BALL")})
	if !errors.Is(err, ErrMalformedRequest) {
		t.Fatalf("expected ErrMalformedRequest for unknown method, got %v", err)
	}
}

func TestPoolService_JoinPool_IsIdempotentUsingMockery(t *testing.T) {
	t.Parallel()

	poolRepo := poolmock.NewRepository(t)
	userRepo := usermock.NewRepository(t)
	service := NewPoolService(poolRepo, userRepo)

	member := user.User{
		ID:          3,
		Memberships: []user.Membership{{PoolID: 42, Role: user.RoleMember}},
	}

	poolRepo.
		On("GetByID", mock.Anything, int64(42)).
		Return(pool.Pool{ID: 42, Name: "Pool", ScoringMethod: scoring.MethodAbsolute}, true, nil).
		Once()
	userRepo.
		On("GetByID", mock.Anything, int64(3)).
		Return(member, true, nil).
		Once()

	// No AddMembership expectation: joining twice must be a no-op.
	if err := service.JoinPool(context.Background(), 3, 42); err != nil {
		t.Fatalf("join pool: %v", err)
	}
}

func TestPoolService_JoinPool_PoolNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	poolRepo := poolmock.NewRepository(t)
	userRepo := usermock.NewRepository(t)
	service := NewPoolService(poolRepo, userRepo)

	poolRepo.
		On("GetByID", mock.Anything, int64(404)).
		Return(pool.Pool{}, false, nil).
		Once()

	err := service.JoinPool(context.Background(), 1, 404)
	if !errors.Is(err, ErrPoolNotFound) {
		t.Fatalf("expected ErrPoolNotFound, got %v", err)
	}
}
