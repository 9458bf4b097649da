package resolve_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/HBS-BookingFlow/internal/domain"
	"github.com/m04kA/HBS-BookingFlow/pkg/types"
)

// validateContext валидирует параметры запроса слотов
func validateContext(barberID string, date time.Time, durationMinutes int, now time.Time) error {
	if barberID == "" {
		return fmt.Errorf("%w: barberID is required", ErrInvalidInput)
	}
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	dateOnly := types.DateOnly(date)
	today := types.DateOnly(now)

	if dateOnly.Before(today) {
		return fmt.Errorf("%w: date is in the past", ErrDateOutOfWindow)
	}

	lastDay := today.AddDate(0, 0, domain.BookingWindowDays-1)
	if dateOnly.After(lastDay) {
		return fmt.Errorf("%w: can only book %d days ahead", ErrDateOutOfWindow, domain.BookingWindowDays)
	}

	return nil
}
