package create_booking

import (
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID       int64
	ProfessionalID int64
	StaffID        int64
	ServiceID      int64
	Date           time.Time
	StartTime      types.TimeOfDay
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
