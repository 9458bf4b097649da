package resolve_availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/HBS-BookingFlow/internal/domain"
)

// UseCase use case выбора доступного слота (Availability Resolver)
//
// Держит текущий список слотов и выбранный слот для одного контекста
// (барбер, дата, длительность услуги). Любая смена контекста инвалидирует
// список и сбрасывает выбор ДО начала загрузки - устаревший выбор не может
// пережить смену даты или барбера. Из двух конкурирующих загрузок
// применяется более поздняя (last-write-wins), без слияния.
type UseCase struct {
	api          AvailabilityAPI
	timeProvider TimeProvider
	logger       Logger

	mu         sync.Mutex
	generation uint64
	barberID   string
	date       time.Time
	duration   int
	hasContext bool
	slots      []domain.TimeSlot
	selected   *domain.TimeSlot
	loading    bool
	lastErr    error
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(api AvailabilityAPI, logger Logger) *UseCase {
	return &UseCase{
		api:          api,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// LoadSlots загружает слоты для (барбер, дата, длительность)
// Список и выбор очищаются до выполнения запроса; при ошибке список остаётся
// пустым и возвращается ErrFetchFailed - caller показывает retry, а не "нет слотов"
func (uc *UseCase) LoadSlots(ctx context.Context, barberID string, date time.Time, durationMinutes int) ([]domain.TimeSlot, error) {
	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	if err := validateContext(barberID, date, durationMinutes, now); err != nil {
		uc.logger.Warn("LoadSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Инвалидируем предыдущий контекст до начала загрузки
	uc.mu.Lock()
	uc.generation++
	gen := uc.generation
	uc.barberID = barberID
	uc.date = date
	uc.duration = durationMinutes
	uc.hasContext = true
	uc.slots = nil
	uc.selected = nil
	uc.loading = true
	uc.lastErr = nil
	uc.mu.Unlock()

	uc.logger.Info("LoadSlots: fetching slots for barber=%s, date=%s, duration=%d",
		barberID, date.Format(domain.DateFormat), durationMinutes)

	// 3. Загружаем слоты (сетевой вызов вне блокировки)
	fetched, fetchErr := uc.api.GetAvailability(ctx, barberID, date, durationMinutes)

	// 4. Применяем результат, только если запрос всё ещё актуален
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if gen != uc.generation {
		uc.logger.Info("LoadSlots: result superseded by a newer request, discarding (barber=%s, date=%s)",
			barberID, date.Format(domain.DateFormat))
		return nil, ErrSuperseded
	}

	uc.loading = false

	if fetchErr != nil {
		uc.logger.Error("LoadSlots: fetch failed for barber=%s, date=%s: %v",
			barberID, date.Format(domain.DateFormat), fetchErr)
		uc.lastErr = fmt.Errorf("%w: %v", ErrFetchFailed, fetchErr)
		return nil, uc.lastErr
	}

	uc.slots = fetched
	uc.logger.Info("LoadSlots: loaded %d slots for barber=%s, date=%s",
		len(fetched), barberID, date.Format(domain.DateFormat))

	return uc.copySlots(), nil
}

// Refresh повторяет загрузку для последнего контекста
func (uc *UseCase) Refresh(ctx context.Context) error {
	uc.mu.Lock()
	if !uc.hasContext {
		uc.mu.Unlock()
		return ErrNoContext
	}
	barberID, date, duration := uc.barberID, uc.date, uc.duration
	uc.mu.Unlock()

	_, err := uc.LoadSlots(ctx, barberID, date, duration)
	return err
}

// SelectSlot выбирает слот из текущего списка - чистый переход состояния
// Повторный выбор того же слота идемпотентен
func (uc *UseCase) SelectSlot(slot domain.TimeSlot) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for i := range uc.slots {
		if uc.slots[i].SameStart(slot) {
			chosen := uc.slots[i]
			uc.selected = &chosen
			return nil
		}
	}
	return fmt.Errorf("%w: startTime=%s", ErrUnknownSlot, slot.StartTime)
}

// Slots возвращает копию текущего списка слотов
func (uc *UseCase) Slots() []domain.TimeSlot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.copySlots()
}

// Selected возвращает копию выбранного слота или nil
func (uc *UseCase) Selected() *domain.TimeSlot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.selected == nil {
		return nil
	}
	slot := *uc.selected
	return &slot
}

// Loading возвращает true, пока запрос слотов в полёте
func (uc *UseCase) Loading() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.loading
}

// LastErr возвращает ошибку последней загрузки или nil
func (uc *UseCase) LastErr() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.lastErr
}

// Context возвращает последний загруженный контекст (барбер, дата, длительность)
func (uc *UseCase) Context() (barberID string, date time.Time, durationMinutes int, ok bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.barberID, uc.date, uc.duration, uc.hasContext
}

func (uc *UseCase) copySlots() []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(uc.slots))
	copy(out, uc.slots)
	return out
}
