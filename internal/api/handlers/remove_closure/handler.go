package remove_closure

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/closures"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/closures/models"
)

const (
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBarberNotFound     = "барбер не найден"
	msgClosureNotFound    = "закрытие не найдено"
)

type Handler struct {
	service ClosureService
	logger  Logger
}

func NewHandler(service ClosureService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RemoveClosureRequest HTTP request model
type RemoveClosureRequest struct {
	Date string `json:"date"` // "2025-10-15"
	Type string `json:"type"` // full | morning | afternoon
}

// Handle DELETE /api/v1/barbers/{barberId}/closures
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /barbers/{id}/closures - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	var req RemoveClosureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /barbers/{id}/closures - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("DELETE /barbers/{id}/closures - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Remove(r.Context(), &models.RemoveClosureRequest{
		BarberID: barberID,
		Date:     date,
		Type:     domain.ClosureType(req.Type),
	})
	if err != nil {
		switch {
		case errors.Is(err, closures.ErrBarberNotFound):
			h.logger.Warn("DELETE /barbers/{id}/closures - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, closures.ErrClosureNotFound):
			h.logger.Warn("DELETE /barbers/{id}/closures - Closure not found: barber_id=%d, date=%s, type=%s",
				barberID, req.Date, req.Type)
			handlers.RespondNotFound(w, msgClosureNotFound)

		case errors.Is(err, closures.ErrInvalidInput):
			h.logger.Warn("DELETE /barbers/{id}/closures - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /barbers/{id}/closures - Failed to remove closure: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /barbers/{id}/closures - Closure removed: barber_id=%d, date=%s, type=%s, exceptional=%v",
		barberID, req.Date, req.Type, result.ExceptionalOpening)
	handlers.RespondJSON(w, http.StatusOK, result)
}
