package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга выключена
	ErrServiceInactive = errors.New("create_booking: service is inactive")

	// ErrStaffNotEligible возвращается, когда сотрудник не оказывает услугу
	// или скрыт лимитом тарифа
	ErrStaffNotEligible = errors.New("create_booking: staff is not eligible for this service")

	// ErrInvalidDate возвращается для дат в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid date")

	// ErrDateTooFarInFuture возвращается за горизонтом тарифа
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrSlotNotAvailable возвращается, когда запрошенное время не входит
	// в рабочее расписание сотрудника на эту дату
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrSlotTaken возвращается при конфликте с существующим бронированием
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create_booking: internal error")
)
