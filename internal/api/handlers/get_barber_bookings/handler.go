package get_barber_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/middleware"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/bookings"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/bookings/models"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest  = "некорректные параметры запроса"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgBarberNotFound  = "барбер не найден"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/bookings?startDate=...&endDate=...&status=...&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/bookings - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /barbers/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetRole(r.Context())

	query := r.URL.Query()
	req := &models.GetBarberBookingsRequest{
		Actor:           models.Actor{UserID: userID, Role: role},
		BarberID:        barberID,
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			h.logger.Warn("GET /barbers/{id}/bookings - Invalid startDate %q: %v", startDateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			h.logger.Warn("GET /barbers/{id}/bookings - Invalid endDate %q: %v", endDateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetBarberBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{id}/bookings - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /barbers/{id}/bookings - Access denied: barber_id=%d, user_id=%d",
				barberID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /barbers/{id}/bookings - Failed to get bookings: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/bookings - Retrieved %d bookings: barber_id=%d",
		len(result.Bookings), barberID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
