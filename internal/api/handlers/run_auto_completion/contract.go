package run_auto_completion

import (
	"context"

	runAutoCompletionUC "github.com/dkarlovs/SBM-ScheduleService/internal/usecase/run_auto_completion"
)

type RunAutoCompletionUseCase interface {
	Execute(ctx context.Context) (*runAutoCompletionUC.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
