package get_availability_batch

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/availability"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidDates    = "некорректный параметр dates, ожидается список дат YYYY-MM-DD через запятую"
	msgInvalidFrom     = "некорректный параметр from, ожидается дата YYYY-MM-DD"
	msgInvalidDays     = "некорректный параметр days"
	msgMissingDates    = "укажите параметр dates либо пару from и days"
	msgTooManyDates    = "слишком много дат в одном запросе"
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

// Handle GET /api/v1/barbers/{barberId}/availability/batch?dates=d1,d2,...
// Альтернативно принимает пару from=YYYY-MM-DD&days=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/availability/batch - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	dates, errMsg := parseDates(r)
	if errMsg != "" {
		h.logger.Warn("GET /barbers/{id}/availability/batch - %s: barber_id=%d", errMsg, barberID)
		handlers.RespondBadRequest(w, errMsg)
		return
	}

	result, err := h.service.ResolveBatch(r.Context(), barberID, dates)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{id}/availability/batch - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, availability.ErrBarberInactive):
			h.logger.Warn("GET /barbers/{id}/availability/batch - Barber inactive: barber_id=%d", barberID)
			handlers.RespondBadRequest(w, msgBarberInactive)

		case errors.Is(err, availability.ErrTooManyDates):
			h.logger.Warn("GET /barbers/{id}/availability/batch - Too many dates: barber_id=%d, count=%d",
				barberID, len(dates))
			handlers.RespondBadRequest(w, msgTooManyDates)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/availability/batch - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDates)

		default:
			h.logger.Error("GET /barbers/{id}/availability/batch - Failed to resolve: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/availability/batch - Resolved: barber_id=%d, dates=%d", barberID, len(dates))
	handlers.RespondJSON(w, http.StatusOK, FromBatchResult(result))
}

// parseDates извлекает набор дат из query параметров
func parseDates(r *http.Request) ([]time.Time, string) {
	query := r.URL.Query()

	if datesParam := query.Get("dates"); datesParam != "" {
		parts := strings.Split(datesParam, ",")
		dates := make([]time.Time, 0, len(parts))
		for _, part := range parts {
			date, err := time.Parse(domain.DateFormat, strings.TrimSpace(part))
			if err != nil {
				return nil, msgInvalidDates
			}
			dates = append(dates, date)
		}
		return dates, ""
	}

	fromParam := query.Get("from")
	daysParam := query.Get("days")
	if fromParam == "" || daysParam == "" {
		return nil, msgMissingDates
	}

	from, err := time.Parse(domain.DateFormat, fromParam)
	if err != nil {
		return nil, msgInvalidFrom
	}

	days, err := strconv.Atoi(daysParam)
	if err != nil || days <= 0 || days > domain.MaxBatchDates {
		return nil, msgInvalidDays
	}

	dates := make([]time.Time, 0, days)
	for offset := 0; offset < days; offset++ {
		dates = append(dates, from.AddDate(0, 0, offset))
	}
	return dates, ""
}
