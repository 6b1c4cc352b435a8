package create_booking

import (
	"context"
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// Create создает бронирование в статусе pending
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)

	// GetWithFilter получает блокирующие бронирования; внутри транзакции
	// однодневная выборка выполняется с блокировкой FOR UPDATE
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

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	// DoSerializable выполняет функцию в сериализуемой транзакции
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
