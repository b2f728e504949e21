package update_schedule_day

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/schedule"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/schedule/models"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

const (
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBarberNotFound     = "барбер не найден"
	msgDayNotFound        = "день расписания не найден"
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

// UpdateScheduleDayRequest HTTP request model
// Наборы слотов заменяют существующие целиком
type UpdateScheduleDayRequest struct {
	AvailableSlots   []string `json:"availableSlots"`
	UnavailableSlots []string `json:"unavailableSlots"`
	DayOff           bool     `json:"dayOff"`
}

// Handle PUT /api/v1/barbers/{barberId}/schedule/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /barbers/{id}/schedule/{date} - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("PUT /barbers/{id}/schedule/{date} - Invalid date %q: %v", vars["date"], err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req UpdateScheduleDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /barbers/{id}/schedule/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateDay(r.Context(), &models.UpdateDayRequest{
		BarberID:         barberID,
		Date:             date,
		AvailableSlots:   toTimeStrings(req.AvailableSlots),
		UnavailableSlots: toTimeStrings(req.UnavailableSlots),
		DayOff:           req.DayOff,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrBarberNotFound):
			h.logger.Warn("PUT /barbers/{id}/schedule/{date} - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, schedule.ErrScheduleDayNotFound):
			h.logger.Warn("PUT /barbers/{id}/schedule/{date} - Schedule day not found: barber_id=%d, date=%s",
				barberID, vars["date"])
			handlers.RespondNotFound(w, msgDayNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /barbers/{id}/schedule/{date} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /barbers/{id}/schedule/{date} - Failed to update schedule day: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /barbers/{id}/schedule/{date} - Schedule day updated: barber_id=%d, date=%s, day_off=%v",
		barberID, vars["date"], result.DayOff)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func toTimeStrings(values []string) []types.TimeString {
	result := make([]types.TimeString, len(values))
	for i, v := range values {
		result[i] = types.TimeString(v)
	}
	return result
}
