package booking_session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/HBS-BookingFlow/internal/domain"
	confirmBooking "github.com/m04kA/HBS-BookingFlow/internal/usecase/confirm_booking"
	"github.com/m04kA/HBS-BookingFlow/pkg/ptr"
)

// Flow outcome labels для метрик
const (
	outcomeConfirmed        = "confirmed"
	outcomeSlotUnavailable  = "slot_unavailable"
	outcomeSessionExpired   = "session_expired"
	outcomeSubmissionFailed = "submission_failed"
	outcomeCancelled        = "cancelled"
)

// Controller контроллер booking-сессии (Booking Session Controller)
//
// Владеет жизненным циклом черновика бронирования и переживает прерывание
// на аутентификацию: черновик, созданный до auth-промпта, обязан выйти из
// него с неизменными полями барбера/услуги/слота. Машина состояний - один
// enum плюс черновик под общим мьютексом, вместо россыпи независимых флагов.
//
// Черновик мутирует только контроллер; Resolver и Submitter видят его
// read-only копии.
type Controller struct {
	submitter Submitter
	resolver  SlotResolver
	sessions  SessionState
	prompter  AuthPrompter
	metrics   FlowMetrics
	logger    Logger

	mu           sync.Mutex
	state        domain.FlowState
	draft        *domain.BookingDraft
	result       *domain.BookingResult
	failure      error
	draftGen     uint64
	pendingRetry bool // повторить Confirm один раз после re-login (SessionExpired)
}

// NewController создает контроллер и подписывается на смену статуса сессии
// metrics может быть nil
func NewController(
	submitter Submitter,
	resolver SlotResolver,
	sessions SessionState,
	prompter AuthPrompter,
	metrics FlowMetrics,
	logger Logger,
) *Controller {
	c := &Controller{
		submitter: submitter,
		resolver:  resolver,
		sessions:  sessions,
		prompter:  prompter,
		metrics:   metrics,
		logger:    logger,
		state:     domain.StateIdle,
	}

	// Переход AwaitingAuth -> ReadyToSubmit обязан сработать и когда логин
	// случился вне booking flow, поэтому подписка, а не прямой callback
	sessions.Subscribe(c.onSessionChange)

	return c
}

// ChooseSlot фиксирует выбранный слот для (барбер, услуга, дата)
// Если контекст совпадает с текущим черновиком, заменяется только слот
// (заметка сохраняется); иначе создаётся новый черновик
func (c *Controller) ChooseSlot(barber domain.BarberRef, service domain.Service, date time.Time, slot domain.TimeSlot) error {
	if err := service.Validate(); err != nil {
		return err
	}
	if err := slot.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == domain.StateSubmitting {
		return fmt.Errorf("%w: cannot choose a slot while submitting", ErrInvalidTransition)
	}

	sameContext := c.draft != nil &&
		c.draft.BarberID == barber.ID &&
		c.draft.Service.ID == service.ID &&
		c.draft.Date.Equal(date)

	if sameContext {
		c.draft.Slot = ptr.Ptr(slot)
	} else {
		c.draft = &domain.BookingDraft{
			BarberID:   barber.ID,
			BarberName: barber.Name,
			Date:       date,
			Service:    service,
			Slot:       ptr.Ptr(slot),
		}
		c.draftGen++
	}

	c.state = domain.StateSlotChosen
	c.result = nil
	c.failure = nil
	c.pendingRetry = false

	c.logger.Info("BookingSession: slot chosen, barber=%s, service=%s, date=%s, start=%s",
		barber.ID, service.Name, date.Format(domain.DateFormat), slot.StartTime)

	return nil
}

// SetNote добавляет заметку клиента в черновик
func (c *Controller) SetNote(note string) error {
	if len(note) > domain.MaxCustomerNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidTransition, domain.MaxCustomerNoteLength)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return ErrNoSlotSelected
	}
	if note == "" {
		c.draft.CustomerNote = nil
	} else {
		c.draft.CustomerNote = ptr.Ptr(note)
	}
	return nil
}

// RequestBooking запускает оформление бронирования по текущему черновику
// Без сессии переводит flow в AwaitingAuth и открывает auth-промпт;
// с сессией сразу в ReadyToSubmit. Без выбранного слота отклоняется явно.
func (c *Controller) RequestBooking() error {
	c.mu.Lock()

	switch c.state {
	case domain.StateIdle:
		c.mu.Unlock()
		return ErrNoSlotSelected

	case domain.StateSubmitting:
		c.mu.Unlock()
		return ErrAlreadySubmitting

	case domain.StateConfirmed:
		c.mu.Unlock()
		return fmt.Errorf("%w: flow already confirmed", ErrInvalidTransition)

	case domain.StateReadyToSubmit:
		c.mu.Unlock()
		return nil

	case domain.StateAwaitingAuth:
		c.mu.Unlock()
		c.prompter.PromptLogin()
		return nil
	}

	// SlotChosen или Failed
	if !c.draft.HasSlot() {
		c.mu.Unlock()
		return ErrNoSlotSelected
	}

	if c.sessions.IsAuthenticated() {
		c.state = domain.StateReadyToSubmit
		c.mu.Unlock()
		c.logger.Info("BookingSession: session present, ready to submit")
		return nil
	}

	c.state = domain.StateAwaitingAuth
	c.mu.Unlock()

	c.logger.Info("BookingSession: no session, suspending flow for authentication")
	c.prompter.PromptLogin()
	return nil
}

// CancelAuth обрабатывает закрытие auth-промпта пользователем
// Намерение бронирования отменяется целиком: черновик сбрасывается,
// "возобновить позже" нет - нужен новый выбор слота
func (c *Controller) CancelAuth() {
	c.mu.Lock()
	if c.state != domain.StateAwaitingAuth {
		c.mu.Unlock()
		return
	}
	c.reset()
	c.mu.Unlock()

	c.logger.Info("BookingSession: auth prompt cancelled, booking intent discarded")
	c.countOutcome(outcomeCancelled)
}

// Cancel явная отмена flow из любого состояния
// Результат отправки, оставшейся в полёте, будет отброшен по draftGen
func (c *Controller) Cancel() {
	c.mu.Lock()
	hadDraft := c.state != domain.StateIdle && c.state != domain.StateConfirmed
	c.reset()
	c.mu.Unlock()

	if hadDraft {
		c.logger.Info("BookingSession: flow cancelled by user")
		c.countOutcome(outcomeCancelled)
	}
}

// Confirm отправляет бронирование
// Допустим из ReadyToSubmit и из Failed (ручной retry с сохранённым черновиком);
// повторный вызов во время отправки отклоняется, а не ставится в очередь
func (c *Controller) Confirm(ctx context.Context) (*domain.BookingResult, error) {
	c.mu.Lock()

	switch c.state {
	case domain.StateSubmitting:
		c.mu.Unlock()
		return nil, ErrAlreadySubmitting
	case domain.StateIdle:
		c.mu.Unlock()
		return nil, ErrNoSlotSelected
	case domain.StateReadyToSubmit, domain.StateFailed:
		// Продолжаем
	default:
		state := c.state
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: confirm from %s", ErrInvalidTransition, state)
	}

	if !c.draft.HasSlot() {
		c.mu.Unlock()
		return nil, ErrNoSlotSelected
	}

	if !c.sessions.IsAuthenticated() {
		c.state = domain.StateAwaitingAuth
		c.mu.Unlock()
		c.prompter.PromptLogin()
		return nil, ErrAuthRequired
	}

	gen := c.draftGen
	draftCopy := c.draft.Clone()
	c.state = domain.StateSubmitting
	c.mu.Unlock()

	result, err := c.submitter.Execute(ctx, draftCopy)

	return c.applyOutcome(ctx, gen, result, err)
}

// AcknowledgeConfirmed завершает показ подтверждения и возвращает flow в Idle
func (c *Controller) AcknowledgeConfirmed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != domain.StateConfirmed {
		return
	}
	c.reset()
}

// State возвращает текущее состояние flow
func (c *Controller) State() domain.FlowState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft возвращает read-only копию черновика или nil
func (c *Controller) Draft() *domain.BookingDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Clone()
}

// Result возвращает результат подтверждённого бронирования или nil
func (c *Controller) Result() *domain.BookingResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return nil
	}
	result := *c.result
	return &result
}

// Failure возвращает ошибку последней неуспешной отправки или nil
func (c *Controller) Failure() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure
}

// applyOutcome применяет результат отправки к состоянию flow
// Результат применяется, только если черновик всё ещё активен: пользователь
// мог закрыть модалку и начать новый flow, пока запрос был в полёте
func (c *Controller) applyOutcome(ctx context.Context, gen uint64, result *domain.BookingResult, err error) (*domain.BookingResult, error) {
	c.mu.Lock()

	if gen != c.draftGen {
		c.mu.Unlock()
		c.logger.Warn("BookingSession: submission result refers to a superseded draft, discarding")
		return nil, ErrSuperseded
	}

	if err == nil {
		c.state = domain.StateConfirmed
		c.result = result
		c.failure = nil
		c.pendingRetry = false
		c.mu.Unlock()

		c.logger.Info("BookingSession: booking confirmed, reference=%s", result.Reference)
		c.countOutcome(outcomeConfirmed)
		return result, nil
	}

	switch {
	case errors.Is(err, confirmBooking.ErrSlotUnavailable):
		// Слот заняли: чистим поле слота и возвращаемся к выбору,
		// список слотов обновляется принудительно - показать пользователю
		// устаревший список после этой ошибки нельзя
		c.draft.Slot = nil
		c.state = domain.StateSlotChosen
		c.failure = err
		c.mu.Unlock()

		c.logger.Warn("BookingSession: slot no longer available, forcing slot refresh")
		c.countOutcome(outcomeSlotUnavailable)
		if refreshErr := c.resolver.Refresh(ctx); refreshErr != nil {
			c.logger.Error("BookingSession: forced slot refresh failed: %v", refreshErr)
		}
		return nil, err

	case errors.Is(err, confirmBooking.ErrSessionExpired):
		// Токен умер между логином и отправкой: черновик сохраняем,
		// переоткрываем auth-промпт и после re-login повторяем ровно один раз.
		// Мёртвую сессию сбрасываем - иначе re-login не даст перехода
		// absent->present и возобновление не сработает
		c.state = domain.StateAwaitingAuth
		c.failure = err
		c.pendingRetry = true
		c.mu.Unlock()

		c.logger.Warn("BookingSession: session expired on submit, reopening auth prompt")
		c.countOutcome(outcomeSessionExpired)
		c.sessions.Invalidate()
		c.prompter.PromptLogin()
		return nil, err

	default:
		c.state = domain.StateFailed
		c.failure = err
		c.mu.Unlock()

		c.logger.Error("BookingSession: submission failed: %v", err)
		c.countOutcome(outcomeSubmissionFailed)
		return nil, err
	}
}

// onSessionChange реагирует на смену статуса сессии
func (c *Controller) onSessionChange(present bool) {
	c.mu.Lock()

	if present && c.state == domain.StateAwaitingAuth {
		// Черновик не трогаем: поля услуги/слота/барбера обязаны выйти
		// из прерывания ровно такими, какими вошли
		c.state = domain.StateReadyToSubmit
		retry := c.pendingRetry
		c.pendingRetry = false
		c.mu.Unlock()

		c.logger.Info("BookingSession: session established, resuming booking flow")

		if retry {
			if _, err := c.Confirm(context.Background()); err != nil {
				c.logger.Warn("BookingSession: automatic retry after re-login failed: %v", err)
			}
		}
		return
	}

	if !present && c.state == domain.StateReadyToSubmit {
		// Сессия исчезла до отправки - отправлять нечем
		c.state = domain.StateAwaitingAuth
		c.mu.Unlock()
		c.logger.Warn("BookingSession: session lost before submit, awaiting authentication")
		return
	}

	c.mu.Unlock()
}

// reset возвращает flow в Idle; вызывается под мьютексом
func (c *Controller) reset() {
	c.state = domain.StateIdle
	c.draft = nil
	c.result = nil
	c.failure = nil
	c.pendingRetry = false
	c.draftGen++
}

func (c *Controller) countOutcome(outcome string) {
	if c.metrics != nil {
		c.metrics.CountFlowOutcome(outcome)
	}
}
