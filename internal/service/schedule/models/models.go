package models

import (
	"fmt"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

// Request модели

// WeeklyScheduleRow одно рабочее окно недельного расписания
type WeeklyScheduleRow struct {
	DayOfWeek  int     `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime  string  `json:"startTime"` // "09:00"
	EndTime    string  `json:"endTime"`   // "17:00"
	ServiceIDs []int64 `json:"serviceIds,omitempty"`
}

// ReplaceWeeklyScheduleRequest запрос на полную замену недельного расписания
type ReplaceWeeklyScheduleRequest struct {
	UserID  int64               `json:"userId"`
	StaffID int64               `json:"staffId"`
	Rows    []WeeklyScheduleRow `json:"rows"`
}

// ToDomainRows конвертирует строки запроса в domain модели,
// разбирая строки времени на границе
func (r *ReplaceWeeklyScheduleRequest) ToDomainRows() ([]*domain.WeeklySchedule, error) {
	rows := make([]*domain.WeeklySchedule, 0, len(r.Rows))
	for _, row := range r.Rows {
		start, err := types.ParseTimeOfDay(row.StartTime)
		if err != nil {
			return nil, fmt.Errorf("start time %q: %w", row.StartTime, err)
		}
		end, err := types.ParseTimeOfDay(row.EndTime)
		if err != nil {
			return nil, fmt.Errorf("end time %q: %w", row.EndTime, err)
		}
		rows = append(rows, &domain.WeeklySchedule{
			StaffID:    r.StaffID,
			DayOfWeek:  row.DayOfWeek,
			StartTime:  start,
			EndTime:    end,
			Active:     true,
			ServiceIDs: row.ServiceIDs,
		})
	}
	return rows, nil
}

// Response модели

// WeeklyScheduleResponse ответ с расписанием одного сотрудника
type WeeklyScheduleResponse struct {
	StaffID int64                    `json:"staffId"`
	Rows    []WeeklyScheduleRowEntry `json:"rows"`
}

// WeeklyScheduleRowEntry рабочее окно в ответе
type WeeklyScheduleRowEntry struct {
	ID         int64   `json:"id"`
	DayOfWeek  int     `json:"dayOfWeek"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	ServiceIDs []int64 `json:"serviceIds,omitempty"`
}

// FromDomainSchedules конвертирует domain модели в DTO
func FromDomainSchedules(staffID int64, rows []*domain.WeeklySchedule) *WeeklyScheduleResponse {
	resp := &WeeklyScheduleResponse{
		StaffID: staffID,
		Rows:    make([]WeeklyScheduleRowEntry, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, WeeklyScheduleRowEntry{
			ID:         row.ID,
			DayOfWeek:  row.DayOfWeek,
			StartTime:  row.StartTime.String(),
			EndTime:    row.EndTime.String(),
			ServiceIDs: row.ServiceIDs,
		})
	}
	return resp
}

// ExceptionResponse исключение расписания в ответе
type ExceptionResponse struct {
	ID             int64            `json:"id"`
	ProfessionalID int64            `json:"professionalId"`
	StaffID        *int64           `json:"staffId,omitempty"`
	Date           string           `json:"date"`
	IsClosed       bool             `json:"isClosed"`
	TimeRanges     []TimeRangeEntry `json:"timeRanges,omitempty"`
}

// TimeRangeEntry интервал в ответе
type TimeRangeEntry struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromDomainException конвертирует domain модель в DTO
func FromDomainException(exc *domain.ScheduleException) *ExceptionResponse {
	if exc == nil {
		return nil
	}
	resp := &ExceptionResponse{
		ID:             exc.ID,
		ProfessionalID: exc.ProfessionalID,
		StaffID:        exc.StaffID,
		Date:           exc.Date.Format(domain.DateFormat),
		IsClosed:       exc.IsClosed,
	}
	for _, tr := range exc.TimeRanges {
		resp.TimeRanges = append(resp.TimeRanges, TimeRangeEntry{
			StartTime: tr.Start.String(),
			EndTime:   tr.End.String(),
		})
	}
	return resp
}

// FromDomainExceptionList конвертирует список исключений в DTO
func FromDomainExceptionList(exceptions []*domain.ScheduleException) []ExceptionResponse {
	out := make([]ExceptionResponse, 0, len(exceptions))
	for _, exc := range exceptions {
		out = append(out, *FromDomainException(exc))
	}
	return out
}
