package get_month_availability

import "time"

// Request модель запроса доступности по дням месяца
type Request struct {
	ProfessionalID int64
	ServiceID      int64
	Year           int
	Month          time.Month
}

// Response модель ответа: по одной записи на каждый календарный день месяца
type Response struct {
	ProfessionalID int64
	ServiceID      int64
	Year           int
	Month          time.Month
	Days           []DayAvailability
}

// DayAvailability доступность одного дня.
// Available == true, когда хотя бы у одного сотрудника есть хотя бы один
// свободный слот. Прошедшие дни и дни за горизонтом тарифа недоступны.
type DayAvailability struct {
	Date      time.Time
	Available bool
}
