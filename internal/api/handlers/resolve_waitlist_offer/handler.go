package resolve_waitlist_offer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/waitlist"
)

const (
	msgInvalidEntryID     = "некорректный ID записи листа ожидания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgEntryNotFound      = "запись листа ожидания не найдена"
	msgNoOffer            = "для записи нет активного предложения"
	msgOfferExpired       = "срок действия предложения истек"
	msgInvalidToken       = "некорректный токен предложения"
	msgSlotTaken          = "предложенный слот уже занят"
	msgSlotNotAvailable   = "выбранное время недоступно для бронирования"
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

// Handle POST /api/v1/waitlist/{entryId}/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /waitlist/{id}/resolve - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	var req ResolveOfferRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist/{id}/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(entryID)
	if err != nil {
		h.logger.Warn("POST /waitlist/{id}/resolve - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.ResolveOffer(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrEntryNotFound):
			h.logger.Warn("POST /waitlist/{id}/resolve - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, waitlist.ErrNoOffer):
			h.logger.Warn("POST /waitlist/{id}/resolve - No active offer: entry_id=%d", entryID)
			handlers.RespondBadRequest(w, msgNoOffer)

		case errors.Is(err, waitlist.ErrOfferExpired):
			h.logger.Warn("POST /waitlist/{id}/resolve - Offer expired: entry_id=%d", entryID)
			handlers.RespondConflict(w, msgOfferExpired)

		case errors.Is(err, waitlist.ErrInvalidToken):
			h.logger.Warn("POST /waitlist/{id}/resolve - Invalid token: entry_id=%d", entryID)
			handlers.RespondBadRequest(w, msgInvalidToken)

		case errors.Is(err, waitlist.ErrSlotTaken):
			h.logger.Warn("POST /waitlist/{id}/resolve - Slot taken: entry_id=%d", entryID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, waitlist.ErrSlotNotAvailable):
			h.logger.Warn("POST /waitlist/{id}/resolve - Slot not available: entry_id=%d", entryID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, waitlist.ErrInvalidInput):
			h.logger.Warn("POST /waitlist/{id}/resolve - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /waitlist/{id}/resolve - Failed to resolve offer: entry_id=%d, error=%v",
				entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist/{id}/resolve - Offer resolved: entry_id=%d, status=%s",
		entryID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
