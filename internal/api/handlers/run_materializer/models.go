package run_materializer

import (
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	materializeSchedules "github.com/dambystudio/maskio-barber-booking-sub003/internal/usecase/materialize_schedules"
)

// MaterializeResponse HTTP response model
type MaterializeResponse struct {
	From            string `json:"from"`
	To              string `json:"to"`
	WindowDays      int    `json:"windowDays"`
	Barbers         int    `json:"barbers"`
	DaysCreated     int    `json:"daysCreated"`
	DaysSkipped     int    `json:"daysSkipped"`
	ClosuresCreated int    `json:"closuresCreated"`
	Failed          int    `json:"failed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *materializeSchedules.Response) *MaterializeResponse {
	return &MaterializeResponse{
		From:            resp.From.Format(domain.DateFormat),
		To:              resp.To.Format(domain.DateFormat),
		WindowDays:      resp.WindowDays,
		Barbers:         resp.Barbers,
		DaysCreated:     resp.DaysCreated,
		DaysSkipped:     resp.DaysSkipped,
		ClosuresCreated: resp.ClosuresCreated,
		Failed:          resp.Failed,
	}
}
