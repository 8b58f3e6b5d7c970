package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jordangerads/pickem/internal/usecase"
)

type Handler struct {
	pickService     *usecase.PickService
	poolService     *usecase.PoolService
	scheduleService *usecase.ScheduleSyncService
	reminderService *usecase.ReminderService
	logger          *slog.Logger
	validator       *validator.Validate
}

func NewHandler(
	pickService *usecase.PickService,
	poolService *usecase.PoolService,
	scheduleService *usecase.ScheduleSyncService,
	reminderService *usecase.ReminderService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		pickService:     pickService,
		poolService:     poolService,
		scheduleService: scheduleService,
		reminderService: reminderService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrMalformedRequest, err)
	}

	return nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrMalformedRequest, name)
	}
	return value, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: query parameter %s must be a positive integer", usecase.ErrMalformedRequest, name)
	}
	return value, nil
}
