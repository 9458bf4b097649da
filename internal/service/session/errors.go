package session

import "errors"

var (
	// ErrValidation возвращается при ошибках клиентской валидации формы
	// Такие ошибки блокируют отправку и никогда не доходят до сети
	ErrValidation = errors.New("session: validation error")

	// ErrInvalidCredentials возвращается, когда backend отверг логин или регистрацию
	ErrInvalidCredentials = errors.New("session: invalid credentials")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("session: internal error")
)
