package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/jordangerads/pickem/internal/usecase"
)

type syncScheduleJobRequest struct {
	Season int `json:"season" validate:"required,gt=0"`
	Week   int `json:"week" validate:"required,gt=0"`
}

type syncUpcomingJobRequest struct {
	Days int `json:"days" validate:"required,gt=0,lte=31"`
}

func (h *Handler) RunSyncScheduleJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncScheduleJob")
	defer span.End()

	var req syncScheduleJobRequest
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

	synced, err := h.scheduleService.SyncSeasonWeek(ctx, req.Season, req.Week)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync schedule job failed", "season", req.Season, "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"games": synced})
}

func (h *Handler) RunSyncUpcomingJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncUpcomingJob")
	defer span.End()

	var req syncUpcomingJobRequest
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

	synced, err := h.scheduleService.SyncUpcoming(ctx, req.Days)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync upcoming job failed", "days", req.Days, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"games": synced})
}

func (h *Handler) RunReminderJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReminderJob")
	defer span.End()

	sent, err := h.reminderService.NotifyUsersWithoutPicks(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "reminder job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"sent": sent})
}
