package confirm_booking

import (
	"context"
	"time"

	"github.com/m04kA/HBS-BookingFlow/internal/integrations/barberapi"
)

// BookingAPI интерфейс booking-endpoint'ов backend'а
type BookingAPI interface {
	ValidateAvailability(ctx context.Context, req barberapi.ValidateAvailabilityRequest) error
	CreateBooking(ctx context.Context, req barberapi.CreateBookingRequest) (*barberapi.CreatedBooking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
