package apply_schedule_exception

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("apply_schedule_exception: invalid input data")

	// ErrInvalidTimeRange возвращается для интервалов с end <= start
	ErrInvalidTimeRange = errors.New("apply_schedule_exception: invalid time range")

	// ErrDateInPast возвращается для исключений на прошедшие даты
	ErrDateInPast = errors.New("apply_schedule_exception: date is in the past")

	// ErrInternal возвращается при сбое создания исключения или каскадной отмены
	ErrInternal = errors.New("apply_schedule_exception: internal error")
)
