package create_schedule_exception

import (
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	applyScheduleException "github.com/dkarlovs/SBM-ScheduleService/internal/usecase/apply_schedule_exception"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

// CreateExceptionRequest HTTP request model
type CreateExceptionRequest struct {
	StaffID    *int64      `json:"staffId,omitempty"` // nil - для всех сотрудников
	Date       string      `json:"date"`              // "2026-07-06"
	IsClosed   bool        `json:"isClosed"`
	TimeRanges []TimeRange `json:"timeRanges,omitempty"`
}

// TimeRange интервал особого рабочего дня
type TimeRange struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "14:00"
}

// CreateExceptionResponse HTTP response model
type CreateExceptionResponse struct {
	ID                int64       `json:"id"`
	ProfessionalID    int64       `json:"professionalId"`
	StaffID           *int64      `json:"staffId,omitempty"`
	Date              string      `json:"date"`
	IsClosed          bool        `json:"isClosed"`
	TimeRanges        []TimeRange `json:"timeRanges,omitempty"`
	BookingsCancelled int         `json:"bookingsCancelled"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateExceptionRequest) ToUseCaseRequest(professionalID int64) (*applyScheduleException.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим интервалы
	ranges := make([]domain.TimeRange, 0, len(r.TimeRanges))
	for _, tr := range r.TimeRanges {
		start, err := types.ParseTimeOfDay(tr.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := types.ParseTimeOfDay(tr.EndTime)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, domain.TimeRange{Start: start, End: end})
	}

	return &applyScheduleException.Request{
		ProfessionalID: professionalID,
		StaffID:        r.StaffID,
		Date:           date,
		IsClosed:       r.IsClosed,
		TimeRanges:     ranges,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *applyScheduleException.Response) *CreateExceptionResponse {
	exc := resp.Exception

	out := &CreateExceptionResponse{
		ID:                exc.ID,
		ProfessionalID:    exc.ProfessionalID,
		StaffID:           exc.StaffID,
		Date:              exc.Date.Format(domain.DateFormat),
		IsClosed:          exc.IsClosed,
		BookingsCancelled: resp.BookingsCancelled,
	}
	for _, tr := range exc.TimeRanges {
		out.TimeRanges = append(out.TimeRanges, TimeRange{
			StartTime: tr.Start.String(),
			EndTime:   tr.End.String(),
		})
	}
	return out
}
