package list_schedule_exceptions

import (
	"context"
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListExceptions(ctx context.Context, professionalID, userID int64, dateFrom, dateTo time.Time) ([]models.ExceptionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
