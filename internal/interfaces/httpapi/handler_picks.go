package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/jordangerads/pickem/internal/domain/pick"
	"github.com/jordangerads/pickem/internal/usecase"
)

type gamePickRequest struct {
	GameID       int64  `json:"gameId" validate:"required,gt=0"`
	ChosenTeamID *int64 `json:"chosenTeamId"`
	Confidence   *int   `json:"confidence"`
}

type submitPicksRequest struct {
	Picks []gamePickRequest `json:"picks" validate:"required,min=1,dive"`
}

type pickDTO struct {
	GameID       int64  `json:"gameId"`
	ChosenTeamID *int64 `json:"chosenTeamId"`
	Confidence   *int   `json:"confidence"`
}

type submissionResultDTO struct {
	Season   int              `json:"season"`
	Week     int              `json:"week"`
	Accepted bool             `json:"accepted"`
	Invalid  map[int64]string `json:"invalid,omitempty"`
}

func (h *Handler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	poolID, err := pathInt64(r, "poolID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitPicksRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrMalformedRequest, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	picks := make([]pick.GamePick, 0, len(req.Picks))
	for _, item := range req.Picks {
		picks = append(picks, pick.GamePick{
			GameID:       item.GameID,
			ChosenTeamID: item.ChosenTeamID,
			Confidence:   item.Confidence,
		})
	}

	result, err := h.pickService.SubmitPicks(ctx, principal.UserID, poolID, picks)
	if err != nil {
		h.logger.WarnContext(ctx, "submit picks failed", "pool_id", poolID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if !result.Accepted() {
		status = http.StatusUnprocessableEntity
	}
	writeSuccess(ctx, w, status, submissionResultToDTO(result))
}

func (h *Handler) GetUserPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUserPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	poolID, err := pathInt64(r, "poolID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season, err := queryInt(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := queryInt(r, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	picks, err := h.pickService.GetUserPicks(ctx, principal.UserID, poolID, season, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get picks failed", "pool_id", poolID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		out = append(out, pickDTO{GameID: p.GameID, ChosenTeamID: p.ChosenTeamID, Confidence: p.Confidence})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetConfidenceValues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetConfidenceValues")
	defer span.End()

	poolID, err := pathInt64(r, "poolID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season, err := queryInt(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := queryInt(r, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	values, err := h.pickService.GetConfidenceValues(ctx, poolID, season, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get confidence values failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"values": values})
}

func submissionResultToDTO(result usecase.SubmissionResult) submissionResultDTO {
	dto := submissionResultDTO{
		Season:   result.Season,
		Week:     result.Week,
		Accepted: result.Accepted(),
	}
	if len(result.Invalid) > 0 {
		dto.Invalid = make(map[int64]string, len(result.Invalid))
		for gameID, reason := range result.Invalid {
			dto.Invalid[gameID] = string(reason)
		}
	}
	return dto
}
