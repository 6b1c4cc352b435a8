package domain

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// TimezoneName единственный часовой пояс системы. Все сравнения с "сейчас"
// выполняются по гражданскому времени Риги независимо от локали сервера.
const TimezoneName = "Europe/Riga"

// Auto-completion defaults
const (
	DefaultAutoCompleteWindowDays    = 30  // Исторический горизонт поиска кандидатов
	DefaultAutoCompleteBatchSize     = 200 // Лимит строк на один прогон
	DefaultAutoCompleteBufferSeconds = 30  // Буфер от гонок с действиями клиентов
)

// SystemCancellationReason причина, записываемая при каскадной отмене
const SystemCancellationReason = "closed day"

// UnlimitedSentinel значение лимита тарифного плана, означающее "без ограничений"
const UnlimitedSentinel = 0

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MaxCancellationReasonLength = 500
)

// BlockingStatuses список статусов, которые занимают интервал сотрудника.
// Используется при подсчете занятости слотов и при проверке конфликтов.
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// CancelledStatuses список статусов отмененных бронирований
var CancelledStatuses = []BookingStatus{
	StatusCanceled,
	StatusCancelledSystem,
}
