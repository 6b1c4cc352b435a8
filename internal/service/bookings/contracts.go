package bookings

import (
	"context"
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	"github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/audit"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string, now time.Time) error
	CompleteManually(ctx context.Context, id int64) error
}

// AuditRepository интерфейс репозитория аудита
type AuditRepository interface {
	Record(ctx context.Context, event *audit.Event) error
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
