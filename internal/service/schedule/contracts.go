package schedule

import (
	"context"
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetStaffMember(ctx context.Context, staffID int64) (*domain.StaffMember, error)
	GetWeeklySchedules(ctx context.Context, staffIDs []int64, dayOfWeek *int) ([]*domain.WeeklySchedule, error)
	ReplaceWeeklySchedule(ctx context.Context, staffID int64, rows []*domain.WeeklySchedule) error
	GetExceptions(ctx context.Context, professionalID int64, dateFrom, dateTo time.Time) ([]*domain.ScheduleException, error)
	DeleteException(ctx context.Context, id, professionalID int64) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
