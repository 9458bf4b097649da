package resolve_availability

import (
	"context"
	"time"

	"github.com/m04kA/HBS-BookingFlow/internal/domain"
)

// AvailabilityAPI интерфейс availability-endpoint'а backend'а
type AvailabilityAPI interface {
	GetAvailability(ctx context.Context, barberID string, date time.Time, serviceDuration int) ([]domain.TimeSlot, error)
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
