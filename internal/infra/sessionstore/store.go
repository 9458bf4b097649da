package sessionstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/HBS-BookingFlow/internal/domain"
)

// Store файловое хранилище сессии - аналог localStorage браузера.
// Хранит токен и минимальный профиль пользователя под фиксированными ключами
// в одном JSON-файле; читается один раз при старте процесса.
type Store struct {
	path string
	now  func() time.Time
}

// fileLayout фиксированный формат файла сессии
type fileLayout struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

// New создает хранилище сессии по указанному пути
func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Load читает сохранённую сессию
// Повреждённый файл и просроченный токен считаются отсутствием сессии,
// а не ошибкой - клиент просто стартует неаутентифицированным
func (s *Store) Load() (*domain.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	var layout fileLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("%w: corrupt session file", ErrNoSession)
	}
	if layout.Token == "" {
		return nil, ErrNoSession
	}

	if s.tokenExpired(layout.Token) {
		// Просроченный токен не реанимируем - файл вычищается,
		// чтобы следующий Load не перечитывал мёртвую сессию
		_ = s.Clear()
		return nil, fmt.Errorf("%w: token expired", ErrNoSession)
	}

	return &domain.Session{
		Token: layout.Token,
		User: domain.User{
			ID:    layout.User.ID,
			Name:  layout.User.Name,
			Email: layout.User.Email,
			Role:  domain.UserRole(layout.User.Role),
		},
	}, nil
}

// Save записывает сессию на диск
func (s *Store) Save(session *domain.Session) error {
	var layout fileLayout
	layout.Token = session.Token
	layout.User.ID = session.User.ID
	layout.User.Name = session.User.Name
	layout.User.Email = session.User.Email
	layout.User.Role = string(session.User.Role)

	data, err := json.MarshalIndent(&layout, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// Clear удаляет сохранённую сессию
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// tokenExpired проверяет exp claim токена без верификации подписи
// Секрет подписи знает только backend; клиенту достаточно прочитать срок.
// Непарсящийся (не-JWT) токен считается живым - решает backend через 401.
func (s *Store) tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.Time.After(s.now())
}
