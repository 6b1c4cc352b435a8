package schedule

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("service.schedule: staff member not found")

	// ErrExceptionNotFound возвращается, когда исключение не найдено
	ErrExceptionNotFound = errors.New("service.schedule: schedule exception not found")

	// ErrAccessDenied возвращается при попытке менять чужое расписание
	ErrAccessDenied = errors.New("service.schedule: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service.schedule: invalid input data")

	// ErrInvalidTimeRange возвращается для окон с end <= start
	ErrInvalidTimeRange = errors.New("service.schedule: invalid time range")

	// ErrOverlappingRanges возвращается при пересекающихся окнах одного дня
	ErrOverlappingRanges = errors.New("service.schedule: overlapping time ranges")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("service.schedule: internal error")
)
