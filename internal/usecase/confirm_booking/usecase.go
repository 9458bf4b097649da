package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/HBS-BookingFlow/internal/domain"
	"github.com/m04kA/HBS-BookingFlow/internal/integrations/barberapi"
)

// UseCase use case подтверждения бронирования (Confirmation Submitter)
//
// Перед созданием перепроверяет актуальность слота - защита от гонки,
// когда другой клиент занял слот между выбором и подтверждением.
// Сам по себе stateless: защита от двойной отправки живёт в состоянии
// Submitting контроллера booking_session.
type UseCase struct {
	api          BookingAPI
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(api BookingAPI, logger Logger) *UseCase {
	return &UseCase{
		api:          api,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет подтверждение бронирования
// Порядок шагов фиксирован: валидация черновика -> проверка слота -> создание
func (uc *UseCase) Execute(ctx context.Context, draft *domain.BookingDraft) (*domain.BookingResult, error) {
	// 1. Валидация черновика (fail fast при отсутствии слота)
	if err := validateDraft(draft); err != nil {
		uc.logger.Warn("ConfirmBooking: draft validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ConfirmBooking: barber=%s, date=%s, start=%s, service=%s",
		draft.BarberID, draft.Date.Format(domain.DateFormat), draft.Slot.StartTime, draft.Service.Name)

	// 2. Перепроверяем, что слот всё ещё свободен
	err := uc.api.ValidateAvailability(ctx, barberapi.ValidateAvailabilityRequest{
		BarberID:        draft.BarberID,
		Date:            draft.Date.Format(domain.DateFormat),
		StartTime:       draft.Slot.StartTime.String(),
		ServiceDuration: draft.Service.DurationMinutes,
	})
	if err != nil {
		return nil, uc.mapAPIError("validate availability", err)
	}

	// 3. Создаем бронирование
	created, err := uc.api.CreateBooking(ctx, barberapi.NewCreateBookingRequest(draft))
	if err != nil {
		return nil, uc.mapAPIError("create booking", err)
	}

	// 4. Формируем результат с локальной человекочитаемой ссылкой
	result := &domain.BookingResult{
		Reference:  newReference(),
		BookingID:  created.BookingID(),
		BarberID:   draft.BarberID,
		BarberName: draft.BarberName,
		Date:       draft.Date,
		StartTime:  draft.Slot.StartTime,
		Service:    draft.Service,
		CreatedAt:  uc.timeProvider.Now(),
	}

	uc.logger.Info("ConfirmBooking: booking created, reference=%s, backend_id=%s",
		result.Reference, result.BookingID)

	return result, nil
}

// mapAPIError маппит ошибки клиента API в таксономию подтверждения
func (uc *UseCase) mapAPIError(step string, err error) error {
	switch {
	case errors.Is(err, barberapi.ErrConflict):
		uc.logger.Warn("ConfirmBooking: slot taken during %s: %v", step, err)
		return fmt.Errorf("%w: %v", ErrSlotUnavailable, err)

	case errors.Is(err, barberapi.ErrUnauthorized):
		uc.logger.Warn("ConfirmBooking: session rejected during %s: %v", step, err)
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)

	default:
		uc.logger.Error("ConfirmBooking: %s failed: %v", step, err)
		return fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
}

// newReference генерирует человекочитаемую ссылку бронирования, например "HB-9F4A2C71"
func newReference() string {
	id := uuid.NewString()
	return "HB-" + strings.ToUpper(id[:8])
}
