package delete_schedule_exception

import "context"

type ScheduleService interface {
	DeleteException(ctx context.Context, exceptionID, professionalID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
