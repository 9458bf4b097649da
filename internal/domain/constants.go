package domain

import "errors"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Booking window constants
const (
	// BookingWindowDays сколько дней вперёд (включая сегодня) доступно для выбора даты
	BookingWindowDays = 14

	// MaxCustomerNoteLength максимальная длина заметки клиента
	MaxCustomerNoteLength = 500
)

// Auth validation constants
const (
	MinPasswordLength = 6
)

// Currency display label. Цены backend'а номинированы в быррах.
const CurrencyLabel = "Birr"

var (
	// ErrInvalidServiceDuration возвращается, когда длительность услуги не положительна
	ErrInvalidServiceDuration = errors.New("domain: service duration must be positive")

	// ErrInvalidServicePrice возвращается при отрицательной цене услуги
	ErrInvalidServicePrice = errors.New("domain: service price must be non-negative")
)
