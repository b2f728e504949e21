package update_barber_pattern

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/schedule"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/schedule/models"
)

const (
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBarberNotFound     = "барбер не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// UpdatePatternRequest HTTP request model
// Окна приходят в том же виде, в каком паттерн хранится в weekly_pattern
type UpdatePatternRequest struct {
	Pattern domain.WeeklyPattern `json:"pattern"`
}

// Handle PUT /api/v1/barbers/{barberId}/pattern
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /barbers/{id}/pattern - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	var req UpdatePatternRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /barbers/{id}/pattern - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdatePattern(r.Context(), &models.UpdatePatternRequest{
		BarberID: barberID,
		Pattern:  req.Pattern,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrBarberNotFound):
			h.logger.Warn("PUT /barbers/{id}/pattern - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /barbers/{id}/pattern - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /barbers/{id}/pattern - Failed to update pattern: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /barbers/{id}/pattern - Pattern updated: barber_id=%d", barberID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
