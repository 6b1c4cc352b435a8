package apply_schedule_exception

import (
	"context"
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	"github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/audit"
	"github.com/dkarlovs/SBM-ScheduleService/internal/integrations/notifyservice"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	CreateException(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CancelByClosedDay атомарно отменяет все pending/confirmed бронирования
	// сотрудников на дату и возвращает отмененные строки
	CancelByClosedDay(ctx context.Context, professionalID int64, staffID *int64, date time.Time, now time.Time) ([]*domain.Booking, error)
}

// AuditRepository интерфейс репозитория аудита
type AuditRepository interface {
	Record(ctx context.Context, event *audit.Event) error
}

// NotifyClient интерфейс клиента сервиса уведомлений
type NotifyClient interface {
	SendCancellationNotice(ctx context.Context, notice *notifyservice.CancellationNotice) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

// Metrics интерфейс счетчиков каскадной отмены
type Metrics interface {
	AddCascadeCancelled(count int)
	IncNotifyFailure()
}
