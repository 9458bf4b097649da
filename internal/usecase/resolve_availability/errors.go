package resolve_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resolve_availability: invalid input data")

	// ErrDateOutOfWindow возвращается, когда дата вне окна бронирования
	// (раньше сегодняшнего дня или дальше 14 дней вперёд)
	ErrDateOutOfWindow = errors.New("resolve_availability: date is outside the booking window")

	// ErrFetchFailed возвращается при сетевой или серверной ошибке загрузки слотов
	// Отличим от пустого списка: caller показывает retry, а не "нет слотов"
	ErrFetchFailed = errors.New("resolve_availability: failed to fetch slots")

	// ErrSuperseded возвращается, когда результат запроса перекрыт более поздним
	// запросом слотов (last-write-wins) и не был применён
	ErrSuperseded = errors.New("resolve_availability: fetch superseded by a newer request")

	// ErrUnknownSlot возвращается при попытке выбрать слот, которого нет в текущем списке
	ErrUnknownSlot = errors.New("resolve_availability: slot is not in the current list")

	// ErrNoContext возвращается при Refresh без предшествующего LoadSlots
	ErrNoContext = errors.New("resolve_availability: no slot context loaded yet")
)
