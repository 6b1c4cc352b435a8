package create_schedule_exception

import (
	"context"

	applyScheduleException "github.com/dkarlovs/SBM-ScheduleService/internal/usecase/apply_schedule_exception"
)

type ApplyScheduleExceptionUseCase interface {
	Execute(ctx context.Context, req *applyScheduleException.Request) (*applyScheduleException.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
