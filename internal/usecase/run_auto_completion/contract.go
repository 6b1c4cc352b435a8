package run_auto_completion

import (
	"context"
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	"github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/audit"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListAutoCompleteCandidates получает подтвержденные бронирования,
	// еще не завершенные автоматически, в пределах окна дат
	ListAutoCompleteCandidates(ctx context.Context, windowStart, maxDate time.Time, limit int) ([]*domain.Booking, error)

	// CompleteIfStillConfirmed условно завершает бронирование: обновление
	// проходит только если статус все еще confirmed. Возвращает true,
	// когда строка была обновлена этим вызовом
	CompleteIfStillConfirmed(ctx context.Context, id int64, now time.Time) (bool, error)
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

// Metrics интерфейс счетчиков авто-завершения
type Metrics interface {
	AddAutoCompleted(count int)
}
