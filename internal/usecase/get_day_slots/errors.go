package get_day_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_day_slots: service not found")

	// ErrServiceInactive возвращается, когда услуга выключена профессионалом
	ErrServiceInactive = errors.New("get_day_slots: service is inactive")

	// ErrInvalidDate возвращается для дат в прошлом
	ErrInvalidDate = errors.New("get_day_slots: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата за горизонтом тарифа
	ErrDateTooFarInFuture = errors.New("get_day_slots: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_day_slots: invalid input data")

	// ErrRepository возвращается при сбое чтения из хранилища.
	// Ошибка ретраябельна: вызывающая сторона может повторить запрос.
	ErrRepository = errors.New("get_day_slots: repository read failed")
)
