package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jordangerads/pickem/internal/domain/pick"
	"github.com/jordangerads/pickem/internal/infrastructure/repository/memory"
)

type pickServiceFixture struct {
	service *PickService
	picks   *memory.PickRepository
}

func newPickServiceFixture(t *testing.T, at time.Time) pickServiceFixture {
	t.Helper()

	vfx := newValidatorFixture(t, at)
	service := NewPickService(
		vfx.picks,
		vfx.games,
		memory.NewPoolRepository(memory.SeedPools()),
		vfx.validator,
	)
	return pickServiceFixture{service: service, picks: vfx.picks}
}

func TestSubmitPicks_CreatesFullBatch(t *testing.T) {
	t.Parallel()

	fx := newPickServiceFixture(t, beforeAnyKickoff)
	ctx := context.Background()

	batch := []pick.GamePick{
		{GameID: 101, ChosenTeamID: int64Ptr(1), Confidence: intPtr(16)},
		{GameID: 102, ChosenTeamID: int64Ptr(4), Confidence: intPtr(15)},
		{GameID: 103},
		{GameID: 104, ChosenTeamID: int64Ptr(7)},
	}

	result, err := fx.service.SubmitPicks(ctx, 1, memory.PoolIDOfficeConfidence, batch)
	if err != nil {
		t.Fatalf("submit picks: %v", err)
	}
	if !result.Accepted() {
		t.Fatalf("expected accepted batch, got invalid map %v", result.Invalid)
	}
	if result.Season != memory.SeedSeason || result.Week != memory.SeedWeek {
		t.Fatalf("unexpected result week: season=%d week=%d", result.Season, result.Week)
	}

	stored, err := fx.service.GetUserPicks(ctx, 1, memory.PoolIDOfficeConfidence, memory.SeedSeason, memory.SeedWeek)
	if err != nil {
		t.Fatalf("get user picks: %v", err)
	}
	if len(stored) != 4 {
		t.Fatalf("unexpected stored count: got=%d want=4", len(stored))
	}
	if stored[0].GameID != 101 || stored[0].ChosenTeamID == nil || *stored[0].ChosenTeamID != 1 {
		t.Fatalf("unexpected first stored pick: %+v", stored[0])
	}
	if stored[2].ChosenTeamID != nil || stored[2].Confidence != nil {
		t.Fatalf("undecided slot should persist as nulls: %+v", stored[2])
	}
}

func TestSubmitPicks_AllUndecidedBatchIsPersisted(t *testing.T) {
	t.Parallel()

	fx := newPickServiceFixture(t, beforeAnyKickoff)
	ctx := context.Background()

	result, err := fx.service.SubmitPicks(ctx, 1, memory.PoolIDOfficeConfidence, fullSlate())
	if err != nil {
		t.Fatalf("submit picks: %v", err)
	}
	if !result.Accepted() {
		t.Fatalf("expected accepted batch, got invalid map %v", result.Invalid)
	}

	stored, err := fx.service.GetUserPicks(ctx, 1, memory.PoolIDOfficeConfidence, memory.SeedSeason, memory.SeedWeek)
	if err != nil {
		t.Fatalf("get user picks: %v", err)
	}
	if len(stored) != 4 {
		t.Fatalf("unexpected stored count: got=%d want=4", len(stored))
	}
}

func TestSubmitPicks_ResubmissionUpdatesOnlyConfidence(t *testing.T) {
	t.Parallel()

	fx := newPickServiceFixture(t, beforeAnyKickoff)
	ctx := context.Background()

	first := []pick.GamePick{
		{GameID: 101, ChosenTeamID: int64Ptr(1), Confidence: intPtr(16)},
		{GameID: 102, ChosenTeamID: int64Ptr(4), Confidence: intPtr(15)},
		{GameID: 103},
		{GameID: 104},
	}
	if _, err := fx.service.SubmitPicks(ctx, 1, memory.PoolIDOfficeConfidence, first); err != nil {
		t.Fatalf("first submission: %v", err)
	}

	// The resubmission flips both teams and reshuffles confidences. Only
	// the confidences may land.
	second := []pick.GamePick{
		{GameID: 101, ChosenTeamID: int64Ptr(2), Confidence: intPtr(14)},
		{GameID: 102, ChosenTeamID: int64Ptr(3), Confidence: intPtr(16)},
		{GameID: 103},
		{GameID: 104},
	}
	result, err := fx.service.SubmitPicks(ctx, 1, memory.PoolIDOfficeConfidence, second)
	if err != nil {
		t.Fatalf("second submission: %v", err)
	}
	if !result.Accepted() {
		t.Fatalf("expected accepted batch, got invalid map %v", result.Invalid)
	}

	stored, err := fx.service.GetUserPicks(ctx, 1, memory.PoolIDOfficeConfidence, memory.SeedSeason, memory.SeedWeek)
	if err != nil {
		t.Fatalf("get user picks: %v", err)
	}
	byGame := make(map[int64]pick.Pick, len(stored))
	for _, p := range stored {
		byGame[p.GameID] = p
	}

	if got := byGame[101]; got.ChosenTeamID == nil || *got.ChosenTeamID != 1 {
		t.Fatalf("chosen team must survive resubmission: %+v", got)
	}
	if got := byGame[101]; got.Confidence == nil || *got.Confidence != 14 {
		t.Fatalf("confidence must follow resubmission: %+v", got)
	}
	if got := byGame[102]; got.ChosenTeamID == nil || *got.ChosenTeamID != 4 {
		t.Fatalf("chosen team must survive resubmission: %+v", got)
	}
	if got := byGame[102]; got.Confidence == nil || *got.Confidence != 16 {
		t.Fatalf("confidence must follow resubmission: %+v", got)
	}
}

func TestSubmitPicks_InvalidBatchWritesNothing(t *testing.T) {
	t.Parallel()

	fx := newPickServiceFixture(t, beforeAnyKickoff)
	ctx := context.Background()

	batch := []pick.GamePick{
		{GameID: 101, ChosenTeamID: int64Ptr(5)}, // team not in game
		{GameID: 102},
		{GameID: 103},
		{GameID: 104},
	}
	result, err := fx.service.SubmitPicks(ctx, 1, memory.PoolIDOfficeConfidence, batch)
	if err != nil {
		t.Fatalf("submit picks: %v", err)
	}
	if result.Accepted() {
		t.Fatal("expected rejected batch")
	}
	if result.Invalid[101] != pick.ReasonInvalidChosenTeam {
		t.Fatalf("unexpected invalid map: %v", result.Invalid)
	}

	stored, err := fx.service.GetUserPicks(ctx, 1, memory.PoolIDOfficeConfidence, memory.SeedSeason, memory.SeedWeek)
	if err != nil {
		t.Fatalf("get user picks: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("rejected batch must not persist, found %d picks", len(stored))
	}
}

func TestGetUserPicks_MalformedRequest(t *testing.T) {
	t.Parallel()

	fx := newPickServiceFixture(t, beforeAnyKickoff)
	if _, err := fx.service.GetUserPicks(context.Background(), 0, 1, memory.SeedSeason, memory.SeedWeek); !errors.Is(err, ErrMalformedRequest) {
		t.Fatalf("expected ErrMalformedRequest, got %v", err)
	}
}

func TestGetConfidenceValues(t *testing.T) {
	t.Parallel()

	fx := newPickServiceFixture(t, beforeAnyKickoff)
	ctx := context.Background()

	values, err := fx.service.GetConfidenceValues(ctx, memory.PoolIDOfficeConfidence, memory.SeedSeason, memory.SeedWeek)
	if err != nil {
		t.Fatalf("get confidence values: %v", err)
	}
	want := []int{16, 15, 14, 13}
	if len(values) != len(want) {
		t.Fatalf("unexpected length: got=%d want=%d", len(values), len(want))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("values[%d]: got=%d want=%d", i, values[i], want[i])
		}
	}

	values, err = fx.service.GetConfidenceValues(ctx, memory.PoolIDFamilyStraight, memory.SeedSeason, memory.SeedWeek)
	if err != nil {
		t.Fatalf("get confidence values: %v", err)
	}
	for i, v := range values {
		if v != 1 {
			t.Fatalf("ABSOLUTE values[%d]: got=%d want=1", i, v)
		}
	}
}

func TestGetConfidenceValues_PoolNotFound(t *testing.T) {
	t.Parallel()

	fx := newPickServiceFixture(t, beforeAnyKickoff)
	if _, err := fx.service.GetConfidenceValues(context.Background(), 99, memory.SeedSeason, memory.SeedWeek); !errors.Is(err, ErrPoolNotFound) {
		t.Fatalf("expected ErrPoolNotFound, got %v", err)
	}
}
