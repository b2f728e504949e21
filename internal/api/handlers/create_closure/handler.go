package create_closure

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/middleware"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/closures"
)

const (
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBarberNotFound     = "барбер не найден"
	msgClosureExists      = "закрытие уже существует"
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

// Handle POST /api/v1/barbers/{barberId}/closures
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /barbers/{id}/closures - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /barbers/{id}/closures - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateClosureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /barbers/{id}/closures - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(barberID, strconv.FormatInt(userID, 10))
	if err != nil {
		h.logger.Warn("POST /barbers/{id}/closures - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, closures.ErrBarberNotFound):
			h.logger.Warn("POST /barbers/{id}/closures - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, closures.ErrClosureExists):
			h.logger.Warn("POST /barbers/{id}/closures - Closure exists: barber_id=%d, date=%s, type=%s",
				barberID, req.Date, req.Type)
			handlers.RespondConflict(w, msgClosureExists)

		case errors.Is(err, closures.ErrInvalidInput):
			h.logger.Warn("POST /barbers/{id}/closures - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /barbers/{id}/closures - Failed to create closure: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /barbers/{id}/closures - Closure created: closure_id=%d, barber_id=%d, date=%s, type=%s",
		result.ID, barberID, req.Date, req.Type)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
