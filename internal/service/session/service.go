package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/HBS-BookingFlow/internal/domain"
	"github.com/m04kA/HBS-BookingFlow/internal/infra/sessionstore"
	"github.com/m04kA/HBS-BookingFlow/internal/integrations/barberapi"
)

// Service единая точка доступа к состоянию сессии.
// Гидрируется из хранилища при создании, мутируется на login/logout,
// читается любым компонентом, которому нужен статус аутентификации.
// Прямого доступа к хранилищу у остальных слоёв нет.
type Service struct {
	store  SessionStore
	api    AuthAPI
	logger Logger

	mu      sync.RWMutex
	current *domain.Session
	subs    []func(present bool)
}

// NewService создает сервис сессии и гидрирует состояние из хранилища
func NewService(store SessionStore, api AuthAPI, logger Logger) *Service {
	s := &Service{
		store:  store,
		api:    api,
		logger: logger,
	}

	stored, err := store.Load()
	switch {
	case err == nil:
		s.current = stored
		logger.Info("Session: hydrated stored session for user=%s role=%s", stored.User.ID, stored.User.Role)
	case errors.Is(err, sessionstore.ErrNoSession):
		logger.Info("Session: no stored session, starting unauthenticated")
	default:
		logger.Warn("Session: failed to hydrate session: %v", err)
	}

	return s
}

// Current возвращает копию текущей сессии или nil
func (s *Service) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	session := *s.current
	return &session
}

// IsAuthenticated возвращает true при наличии сессии
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Token реализует barberapi.TokenSource
func (s *Service) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Subscribe регистрирует подписчика на смену статуса сессии
// Подписчик вызывается на переходах absent->present и present->absent,
// независимо от того, каким путём случился login/logout
func (s *Service) Subscribe(fn func(present bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Login выполняет вход и сохраняет сессию
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if err := validateLoginInput(email, password); err != nil {
		s.logger.Warn("Login: validation failed: %v", err)
		return nil, err
	}

	established, err := s.api.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, barberapi.ErrUnauthorized) || errors.Is(err, barberapi.ErrBadRequest) {
			s.logger.Warn("Login: rejected for email=%s", email)
			return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
		s.logger.Error("Login: request failed for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: login request failed: %v", ErrInternal, err)
	}

	s.establish(&established)
	s.logger.Info("Login: session established for user=%s role=%s", established.User.ID, established.User.Role)

	user := established.User
	return &user, nil
}

// Register регистрирует пользователя и сохраняет сессию
func (s *Service) Register(ctx context.Context, form RegisterForm) (*domain.User, error) {
	if err := validateRegisterInput(form); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	established, err := s.api.Register(ctx, barberapi.RegisterRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Phone:    form.Phone,
	})
	if err != nil {
		if errors.Is(err, barberapi.ErrBadRequest) || errors.Is(err, barberapi.ErrConflict) {
			s.logger.Warn("Register: rejected for email=%s", form.Email)
			return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
		s.logger.Error("Register: request failed for email=%s: %v", form.Email, err)
		return nil, fmt.Errorf("%w: register request failed: %v", ErrInternal, err)
	}

	s.establish(&established)
	s.logger.Info("Register: session established for user=%s", established.User.ID)

	user := established.User
	return &user, nil
}

// Logout сбрасывает сессию
func (s *Service) Logout() {
	s.mu.Lock()
	wasPresent := s.current != nil
	s.current = nil
	subs := append([]func(bool){}, s.subs...)
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		s.logger.Warn("Logout: failed to clear stored session: %v", err)
	}

	if wasPresent {
		s.logger.Info("Logout: session cleared")
		for _, fn := range subs {
			fn(false)
		}
	}
}

// Invalidate сбрасывает сессию после отказа backend'а принять токен (401)
// В отличие от Logout пишет warning: это не действие пользователя
func (s *Service) Invalidate() {
	s.logger.Warn("Session: token rejected by backend, invalidating session")
	s.Logout()
}

// establish фиксирует новую сессию и оповещает подписчиков
func (s *Service) establish(established *domain.Session) {
	s.mu.Lock()
	wasPresent := s.current != nil
	session := *established
	s.current = &session
	subs := append([]func(bool){}, s.subs...)
	s.mu.Unlock()

	if err := s.store.Save(established); err != nil {
		s.logger.Warn("Session: failed to persist session: %v", err)
	}

	if !wasPresent {
		for _, fn := range subs {
			fn(true)
		}
	}
}
