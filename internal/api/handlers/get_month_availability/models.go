package get_month_availability

import (
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	getMonthAvailability "github.com/dkarlovs/SBM-ScheduleService/internal/usecase/get_month_availability"
)

// MonthAvailabilityResponse HTTP response model
type MonthAvailabilityResponse struct {
	Month          string            `json:"month"`
	ProfessionalID int64             `json:"professionalId"`
	ServiceID      int64             `json:"serviceId"`
	Days           []DayAvailability `json:"days"`
}

// DayAvailability доступность одного дня месяца
type DayAvailability struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getMonthAvailability.Response) *MonthAvailabilityResponse {
	days := make([]DayAvailability, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = DayAvailability{
			Date:      day.Date.Format(domain.DateFormat),
			Available: day.Available,
		}
	}

	return &MonthAvailabilityResponse{
		Month:          time.Date(resp.Year, resp.Month, 1, 0, 0, 0, 0, time.UTC).Format(domain.MonthFormat),
		ProfessionalID: resp.ProfessionalID,
		ServiceID:      resp.ServiceID,
		Days:           days,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(professionalID, serviceID int64, monthStr string) (*getMonthAvailability.Request, error) {
	// Парсим месяц в формате YYYY-MM
	month, err := time.Parse(domain.MonthFormat, monthStr)
	if err != nil {
		return nil, err
	}

	return &getMonthAvailability.Request{
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Year:           month.Year(),
		Month:          month.Month(),
	}, nil
}
