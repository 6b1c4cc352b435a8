package notifyservice

import "errors"

var (
	// ErrInternal возвращается при ошибках создания или выполнения запроса
	ErrInternal = errors.New("notifyservice: internal error")

	// ErrInvalidResponse возвращается при неожиданном ответе сервиса
	ErrInvalidResponse = errors.New("notifyservice: invalid response")
)
