package apply_schedule_exception

import (
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
)

// Request модель запроса на создание исключения расписания.
// StaffID == nil означает исключение для всех сотрудников профессионала.
type Request struct {
	ProfessionalID int64
	StaffID        *int64
	Date           time.Time
	IsClosed       bool
	TimeRanges     []domain.TimeRange
}

// Response результат создания исключения.
// BookingsCancelled заполняется только для закрытых дней: это число
// бронирований, переведенных в cancelled_system этим запросом.
type Response struct {
	Exception         *domain.ScheduleException
	BookingsCancelled int
}
