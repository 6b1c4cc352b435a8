package get_day_slots

import (
	"fmt"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professional ID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service ID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
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
	if svc.DurationMinutes < domain.MinServiceDurationMinutes || svc.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: service duration %d is out of range", ErrInvalidInput, svc.DurationMinutes)
	}
	return nil
}
