package get_day_slots

import (
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

// Request модель запроса доступных слотов на день
type Request struct {
	ProfessionalID int64     // ID профессионала
	ServiceID      int64     // ID услуги
	Date           time.Time // Дата (без времени)
}

// Response модель ответа: слоты по каждому подходящему сотруднику.
// Сотрудники без единого сгенерированного слота в ответ не попадают.
type Response struct {
	Date           time.Time
	ProfessionalID int64
	ServiceID      int64
	Staff          []StaffSlots
}

// StaffSlots слоты одного сотрудника, отсортированные по времени начала
type StaffSlots struct {
	StaffID int64
	Slots   []Slot
}

// Slot кандидат на бронирование длиной ровно в длительность услуги
type Slot struct {
	StartTime types.TimeOfDay
	IsBooked  bool
}
