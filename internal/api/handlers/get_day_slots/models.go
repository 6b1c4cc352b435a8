package get_day_slots

import (
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	getDaySlots "github.com/dkarlovs/SBM-ScheduleService/internal/usecase/get_day_slots"
)

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	Date           string       `json:"date"`
	ProfessionalID int64        `json:"professionalId"`
	ServiceID      int64        `json:"serviceId"`
	Staff          []StaffSlots `json:"staff"`
}

// StaffSlots слоты одного сотрудника
type StaffSlots struct {
	StaffID int64  `json:"staffId"`
	Slots   []Slot `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	StartTime string `json:"startTime"`
	IsBooked  bool   `json:"isBooked"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySlots.Response) *DaySlotsResponse {
	staff := make([]StaffSlots, len(resp.Staff))
	for i, member := range resp.Staff {
		slots := make([]Slot, len(member.Slots))
		for j, slot := range member.Slots {
			slots[j] = Slot{
				StartTime: slot.StartTime.String(),
				IsBooked:  slot.IsBooked,
			}
		}
		staff[i] = StaffSlots{
			StaffID: member.StaffID,
			Slots:   slots,
		}
	}

	return &DaySlotsResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		ProfessionalID: resp.ProfessionalID,
		ServiceID:      resp.ServiceID,
		Staff:          staff,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(professionalID, serviceID int64, dateStr string) (*getDaySlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getDaySlots.Request{
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	}, nil
}
