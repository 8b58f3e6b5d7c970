package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/jordangerads/pickem/internal/domain/pool"
	"github.com/jordangerads/pickem/internal/domain/scoring"
	"github.com/jordangerads/pickem/internal/usecase"
)

type createPoolRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	ScoringMethod string `json:"scoringMethod" validate:"required"`
}

type poolDTO struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ScoringMethod string `json:"scoringMethod"`
}

func (h *Handler) CreatePool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePool")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createPoolRequest
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

	method, ok := scoring.ParseMethod(strings.TrimSpace(req.ScoringMethod))
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: scoring method %q", usecase.ErrUnknownScoringMethod, req.ScoringMethod))
		return
	}

	created, err := h.poolService.CreatePool(ctx, principal.UserID, pool.Pool{
		Name:          strings.TrimSpace(req.Name),
		ScoringMethod: method,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create pool failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, poolToDTO(created))
}

func (h *Handler) GetPool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPool")
	defer span.End()

	poolID, err := pathInt64(r, "poolID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.poolService.GetPool(ctx, poolID)
	if err != nil {
		h.logger.WarnContext(ctx, "get pool failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, poolToDTO(item))
}

func (h *Handler) JoinPool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinPool")
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

	if err := h.poolService.JoinPool(ctx, principal.UserID, poolID); err != nil {
		h.logger.WarnContext(ctx, "join pool failed", "pool_id", poolID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "joined"})
}

func poolToDTO(item pool.Pool) poolDTO {
	return poolDTO{
		ID:            item.ID,
		Name:          item.Name,
		ScoringMethod: string(item.ScoringMethod),
	}
}
