package create_booking

import (
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	createBooking "github.com/dkarlovs/SBM-ScheduleService/internal/usecase/create_booking"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProfessionalID int64  `json:"professionalId"`
	StaffID        int64  `json:"staffId"`
	ServiceID      int64  `json:"serviceId"`
	Date           string `json:"date"`      // "2026-07-06"
	StartTime      string `json:"startTime"` // "10:00"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// ClientID приходит из контекста аутентификации, не из тела запроса.
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:       clientID,
		ProfessionalID: r.ProfessionalID,
		StaffID:        r.StaffID,
		ServiceID:      r.ServiceID,
		Date:           date,
		StartTime:      startTime,
	}, nil
}
