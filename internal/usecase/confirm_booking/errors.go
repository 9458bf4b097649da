package confirm_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном черновике бронирования
	ErrInvalidInput = errors.New("confirm_booking: invalid booking draft")

	// ErrNoSlotSelected возвращается, когда в черновике нет выбранного слота
	ErrNoSlotSelected = errors.New("confirm_booking: no slot selected")

	// ErrSlotUnavailable возвращается, когда слот заняли между выбором и подтверждением
	// Caller обязан принудительно обновить список слотов перед новым выбором
	ErrSlotUnavailable = errors.New("confirm_booking: slot is no longer available")

	// ErrSessionExpired возвращается при 401 на отправке: токен просрочен или отозван
	ErrSessionExpired = errors.New("confirm_booking: session expired")

	// ErrSubmissionFailed возвращается при прочих ошибках создания бронирования
	// Сообщение backend'а сохраняется в обёртке, если оно есть
	ErrSubmissionFailed = errors.New("confirm_booking: submission failed")
)
