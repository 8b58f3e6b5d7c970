package pick

// Pick is the stored row for one (user, pool, game). Both the chosen team and
// the confidence are nullable; the row is never deleted, only mutated.
type Pick struct {
	UserID       int64
	PoolID       int64
	GameID       int64
	ChosenTeamID *int64
	Confidence   *int
}

// GamePick is one slot of a submitted batch. A nil chosen team means the user
// has not decided yet; the slot must still be present.
type GamePick struct {
	GameID       int64
	ChosenTeamID *int64
	Confidence   *int
}

// InvalidityReason classifies a per-game soft rejection. Soft rejections are
// result data, not errors: callers re-prompt the user per game.
type InvalidityReason string

const (
	ReasonGameNotFound      InvalidityReason = "GAME_NOT_FOUND"
	ReasonInvalidChosenTeam InvalidityReason = "INVALID_CHOSEN_TEAM"
	ReasonGameStarted       InvalidityReason = "GAME_STARTED"
)

// Matches reports field-by-field equality against a stored pick, with
// nil-equals-nil semantics on both fields.
func (gp GamePick) Matches(stored Pick) bool {
	return int64PtrEqual(gp.ChosenTeamID, stored.ChosenTeamID) &&
		intPtrEqual(gp.Confidence, stored.Confidence)
}

// Empty reports whether the slot carries no team and no confidence.
func (gp GamePick) Empty() bool {
	return gp.ChosenTeamID == nil && gp.Confidence == nil
}

func int64PtrEqual(a, b *int64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func intPtrEqual(a, b *int) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}
