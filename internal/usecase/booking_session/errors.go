package booking_session

import "errors"

var (
	// ErrNoSlotSelected возвращается при RequestBooking/Confirm без выбранного слота
	// Вызов отклоняется явно, а не игнорируется молча
	ErrNoSlotSelected = errors.New("booking_session: no slot selected")

	// ErrAlreadySubmitting возвращается при повторном Confirm, пока отправка в полёте
	// Повторные вызовы отклоняются, а не ставятся в очередь
	ErrAlreadySubmitting = errors.New("booking_session: submission already in flight")

	// ErrInvalidTransition возвращается при вызове, недопустимом в текущем состоянии
	ErrInvalidTransition = errors.New("booking_session: invalid state transition")

	// ErrSuperseded возвращается, когда результат отправки относится к черновику,
	// который уже не активен (пользователь начал новый flow) - результат не применяется
	ErrSuperseded = errors.New("booking_session: result refers to a superseded draft")

	// ErrAuthRequired возвращается из Confirm, когда сессии нет
	ErrAuthRequired = errors.New("booking_session: authentication required")
)
