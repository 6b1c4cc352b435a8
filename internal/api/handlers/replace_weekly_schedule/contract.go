package replace_weekly_schedule

import (
	"context"

	"github.com/dkarlovs/SBM-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	ReplaceWeeklySchedule(ctx context.Context, req *models.ReplaceWeeklyScheduleRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
