package session

import (
	"context"

	"github.com/m04kA/HBS-BookingFlow/internal/domain"
	"github.com/m04kA/HBS-BookingFlow/internal/integrations/barberapi"
)

// SessionStore интерфейс хранилища сессии
type SessionStore interface {
	Load() (*domain.Session, error)
	Save(session *domain.Session) error
	Clear() error
}

// AuthAPI интерфейс auth-endpoint'ов backend'а
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Register(ctx context.Context, req barberapi.RegisterRequest) (domain.Session, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
