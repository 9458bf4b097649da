package booking_session

import (
	"context"

	"github.com/m04kA/HBS-BookingFlow/internal/domain"
)

// Submitter интерфейс подтверждения бронирования (usecase confirm_booking)
type Submitter interface {
	Execute(ctx context.Context, draft *domain.BookingDraft) (*domain.BookingResult, error)
}

// SlotResolver интерфейс принудительного обновления слотов (usecase resolve_availability)
type SlotResolver interface {
	Refresh(ctx context.Context) error
}

// SessionState интерфейс состояния сессии
// Subscribe обязан срабатывать и когда логин случился вне booking flow -
// контроллер не полагается на прямой callback от вызванного им auth-промпта.
// Invalidate сбрасывает сессию после отказа backend'а принять токен: без сброса
// re-login ляжет поверх живой сессии и перехода absent->present не случится.
type SessionState interface {
	IsAuthenticated() bool
	Subscribe(fn func(present bool))
	Invalidate()
}

// AuthPrompter интерфейс внешнего auth UI
// PromptLogin открывает форму аутентификации в режиме login
type AuthPrompter interface {
	PromptLogin()
}

// FlowMetrics интерфейс счётчиков исходов booking flow (опционален, может быть nil)
type FlowMetrics interface {
	CountFlowOutcome(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
