package create_booking

import (
	"fmt"
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: client ID must be positive", ErrInvalidInput)
	}
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professional ID must be positive", ErrInvalidInput)
	}
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staff ID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service ID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !req.StartTime.IsValid() {
		return fmt.Errorf("%w: start time is out of range", ErrInvalidInput)
	}
	return nil
}

// validateService проверяет, что услуга принадлежит профессионалу и активна
func validateService(svc *domain.Service, professionalID int64) error {
	if svc.ProfessionalID != professionalID {
		return fmt.Errorf("%w: service %d does not belong to professional %d", ErrServiceNotFound, svc.ID, professionalID)
	}
	if !svc.Active {
		return fmt.Errorf("%w: service %d", ErrServiceInactive, svc.ID)
	}
	return nil
}

// validateDate проверяет дату: прошлое запрещено, будущее ограничено тарифом
func validateDate(date, now time.Time, limits domain.PlanLimits) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if dateOnly.Before(nowOnly) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}
	if limits.HasAdvanceLimit() {
		maxDate := nowOnly.AddDate(0, 0, limits.MaxAdvanceBookingDays)
		if dateOnly.After(maxDate) {
			return fmt.Errorf("%w: booking horizon is %d days", ErrDateTooFarInFuture, limits.MaxAdvanceBookingDays)
		}
	}
	return nil
}
