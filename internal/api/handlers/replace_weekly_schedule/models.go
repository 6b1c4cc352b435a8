package replace_weekly_schedule

import (
	"github.com/dkarlovs/SBM-ScheduleService/internal/service/schedule/models"
)

// ReplaceWeeklyScheduleRequest HTTP request model
type ReplaceWeeklyScheduleRequest struct {
	Rows []WeeklyScheduleRow `json:"rows"`
}

// WeeklyScheduleRow одно рабочее окно
type WeeklyScheduleRow struct {
	DayOfWeek  int     `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime  string  `json:"startTime"` // "09:00"
	EndTime    string  `json:"endTime"`   // "17:00"
	ServiceIDs []int64 `json:"serviceIds,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ReplaceWeeklyScheduleRequest) ToServiceRequest(staffID, userID int64) *models.ReplaceWeeklyScheduleRequest {
	rows := make([]models.WeeklyScheduleRow, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = models.WeeklyScheduleRow{
			DayOfWeek:  row.DayOfWeek,
			StartTime:  row.StartTime,
			EndTime:    row.EndTime,
			ServiceIDs: row.ServiceIDs,
		}
	}

	return &models.ReplaceWeeklyScheduleRequest{
		UserID:  userID,
		StaffID: staffID,
		Rows:    rows,
	}
}
