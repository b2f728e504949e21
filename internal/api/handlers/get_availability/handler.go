package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/availability"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate     = "отсутствует параметр date"
	msgBarberNotFound  = "барбер не найден"
	msgBarberInactive  = "барбер не принимает бронирования"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/availability - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /barbers/{id}/availability - Missing date parameter: barber_id=%d", barberID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/availability - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	day, err := h.service.Resolve(r.Context(), barberID, date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{id}/availability - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, availability.ErrBarberInactive):
			h.logger.Warn("GET /barbers/{id}/availability - Barber inactive: barber_id=%d", barberID)
			handlers.RespondBadRequest(w, msgBarberInactive)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /barbers/{id}/availability - Failed to resolve: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/availability - Resolved: barber_id=%d, date=%s, available=%d",
		barberID, dateStr, day.AvailableCount())
	handlers.RespondJSON(w, http.StatusOK, FromDomainAvailability(day))
}
