package confirm_booking

import (
	"fmt"

	"github.com/m04kA/HBS-BookingFlow/internal/domain"
)

// validateDraft валидирует черновик перед отправкой
func validateDraft(draft *domain.BookingDraft) error {
	if draft == nil {
		return fmt.Errorf("%w: draft is nil", ErrInvalidInput)
	}
	if draft.BarberID == "" {
		return fmt.Errorf("%w: barberID is required", ErrInvalidInput)
	}
	if draft.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !draft.HasSlot() {
		return ErrNoSlotSelected
	}
	if err := draft.Slot.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := draft.Service.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if draft.CustomerNote != nil && len(*draft.CustomerNote) > domain.MaxCustomerNoteLength {
		return fmt.Errorf("%w: customer note exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNoteLength)
	}
	return nil
}
