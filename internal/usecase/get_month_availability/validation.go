package get_month_availability

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
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professional ID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service ID must be positive", ErrInvalidInput)
	}
	if req.Year < 2000 || req.Year > 2200 {
		return fmt.Errorf("%w: year %d is out of range", ErrInvalidInput, req.Year)
	}
	if req.Month < time.January || req.Month > time.December {
		return fmt.Errorf("%w: month %d is out of range", ErrInvalidInput, req.Month)
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
