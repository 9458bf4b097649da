package barberapi

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("barberapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от backend
	ErrInvalidResponse = errors.New("barberapi client: invalid response")

	// ErrUnauthorized возвращается при 401: токен отсутствует, просрочен или отозван
	ErrUnauthorized = errors.New("barberapi client: unauthorized")

	// ErrConflict возвращается при 409: слот уже занят
	ErrConflict = errors.New("barberapi client: conflict")

	// ErrNotFound возвращается при 404
	ErrNotFound = errors.New("barberapi client: not found")

	// ErrBadRequest возвращается при 4xx с сообщением backend'а
	ErrBadRequest = errors.New("barberapi client: bad request")
)
