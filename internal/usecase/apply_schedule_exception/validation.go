package apply_schedule_exception

import (
	"fmt"
	"time"
)

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request, now time.Time) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professional ID must be positive", ErrInvalidInput)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staff ID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	dateOnly := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if dateOnly.Before(nowOnly) {
		return fmt.Errorf("%w: %s", ErrDateInPast, req.Date.Format("2006-01-02"))
	}

	if req.IsClosed && len(req.TimeRanges) > 0 {
		return fmt.Errorf("%w: closed day cannot carry time ranges", ErrInvalidInput)
	}
	for _, tr := range req.TimeRanges {
		if !tr.IsValid() {
			return fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, tr.Start, tr.End)
		}
	}
	return nil
}
