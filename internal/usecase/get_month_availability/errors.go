package get_month_availability

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_month_availability: service not found")

	// ErrServiceInactive возвращается, когда услуга выключена профессионалом
	ErrServiceInactive = errors.New("get_month_availability: service is inactive")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_month_availability: invalid input data")

	// ErrRepository возвращается при сбое чтения из хранилища
	ErrRepository = errors.New("get_month_availability: repository read failed")
)
