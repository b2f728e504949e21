package join_waitlist

import (
	"errors"
	"net/http"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/middleware"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/waitlist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBarberNotFound     = "барбер не найден"
	msgDayNotFull         = "на выбранную дату еще есть свободные слоты"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req JoinWaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /waitlist - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("POST /waitlist - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	entry, err := h.service.Join(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrBarberNotFound):
			h.logger.Warn("POST /waitlist - Barber not found: barber_id=%d", req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, waitlist.ErrDayNotFull):
			h.logger.Warn("POST /waitlist - Day not full: barber_id=%d, date=%s", req.BarberID, req.Date)
			handlers.RespondConflict(w, msgDayNotFull)

		case errors.Is(err, waitlist.ErrInvalidInput):
			h.logger.Warn("POST /waitlist - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /waitlist - Failed to join waitlist: user_id=%d, barber_id=%d, error=%v",
				userID, req.BarberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist - Waitlist entry created: entry_id=%d, user_id=%d, barber_id=%d, position=%d",
		entry.ID, userID, req.BarberID, entry.Position)
	handlers.RespondJSON(w, http.StatusCreated, entry)
}
