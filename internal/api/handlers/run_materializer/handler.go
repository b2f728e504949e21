package run_materializer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers"
	materializeSchedules "github.com/dambystudio/maskio-barber-booking-sub003/internal/usecase/materialize_schedules"
)

const (
	msgInvalidDays = "некорректное значение параметра days"
)

type Handler struct {
	useCase MaterializeSchedulesUseCase
	logger  Logger
}

func NewHandler(useCase MaterializeSchedulesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/materialize?days=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var windowDays int
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("POST /admin/materialize - Invalid days param: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		windowDays = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &materializeSchedules.Request{
		WindowDays: windowDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, materializeSchedules.ErrInvalidInput):
			h.logger.Warn("POST /admin/materialize - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /admin/materialize - Materialization failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/materialize - Materialization completed: window_days=%d, created=%d, skipped=%d, closures=%d, failed=%d",
		result.WindowDays, result.DaysCreated, result.DaysSkipped, result.ClosuresCreated, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
