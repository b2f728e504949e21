package create_booking

import (
	"errors"
	"net/http"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/middleware"
	createBooking "github.com/dambystudio/maskio-barber-booking-sub003/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBarberNotFound     = "барбер не найден"
	msgBarberInactive     = "барбер не принимает бронирования"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgSlotTaken          = "выбранный временной слот уже занят"
	msgInvalidDate        = "некорректная дата бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetRole(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(userID, role)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrBarberNotFound):
			h.logger.Warn("POST /bookings - Barber not found: barber_id=%d", req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, createBooking.ErrBarberInactive):
			h.logger.Warn("POST /bookings - Barber inactive: barber_id=%d", req.BarberID)
			handlers.RespondBadRequest(w, msgBarberInactive)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: barber_id=%d, date=%s, time=%s",
				req.BarberID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: barber_id=%d, date=%s, time=%s",
				req.BarberID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: barber_id=%d, date=%s", req.BarberID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, barber_id=%d, error=%v",
				userID, req.BarberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, barber_id=%d",
		result.ID, userID, req.BarberID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
