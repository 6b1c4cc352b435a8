package get_month_availability

import (
	"context"
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetWithFilter получает блокирующие бронирования профессионала за период
	GetWithFilter(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
	GetEligibleStaff(ctx context.Context, professionalID, serviceID int64) ([]*domain.StaffMember, error)
	GetPlanLimits(ctx context.Context, professionalID int64) (domain.PlanLimits, error)
	GetWeeklySchedules(ctx context.Context, staffIDs []int64, dayOfWeek *int) ([]*domain.WeeklySchedule, error)
	GetExceptions(ctx context.Context, professionalID int64, dateFrom, dateTo time.Time) ([]*domain.ScheduleException, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования).
// Реализация обязана возвращать время в Europe/Riga.
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
