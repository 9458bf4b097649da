package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HBS-BookingFlow/internal/domain"
	"github.com/m04kA/HBS-BookingFlow/internal/infra/sessionstore"
	"github.com/m04kA/HBS-BookingFlow/internal/integrations/barberapi"
)

type stubLogger struct{}

func (stubLogger) Info(string, ...interface{})  {}
func (stubLogger) Warn(string, ...interface{})  {}
func (stubLogger) Error(string, ...interface{}) {}

type fakeStore struct {
	stored     *domain.Session
	loadErr    error
	saveCalls  int
	clearCalls int
}

func (f *fakeStore) Load() (*domain.Session, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.stored == nil {
		return nil, sessionstore.ErrNoSession
	}
	return f.stored, nil
}

func (f *fakeStore) Save(session *domain.Session) error {
	f.saveCalls++
	f.stored = session
	return nil
}

func (f *fakeStore) Clear() error {
	f.clearCalls++
	f.stored = nil
	return nil
}

type fakeAuthAPI struct {
	session       domain.Session
	loginErr      error
	registerErr   error
	loginCalls    int
	registerCalls int
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (domain.Session, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return domain.Session{}, f.loginErr
	}
	return f.session, nil
}

func (f *fakeAuthAPI) Register(ctx context.Context, req barberapi.RegisterRequest) (domain.Session, error) {
	f.registerCalls++
	if f.registerErr != nil {
		return domain.Session{}, f.registerErr
	}
	return f.session, nil
}

func backendSession() domain.Session {
	return domain.Session{
		Token: "fresh-token",
		User:  domain.User{ID: "u1", Name: "Sara", Email: "sara@example.com", Role: domain.RoleClient},
	}
}

func validForm() RegisterForm {
	return RegisterForm{
		Name:            "Sara",
		Email:           "sara@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Phone:           "+251900000000",
	}
}

func TestService_HydratesFromStore(t *testing.T) {
	stored := backendSession()
	store := &fakeStore{stored: &stored}

	svc := NewService(store, &fakeAuthAPI{}, stubLogger{})

	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, "fresh-token", svc.Token())
	require.NotNil(t, svc.Current())
	assert.Equal(t, "Sara", svc.Current().User.Name)
}

func TestService_StartsUnauthenticatedWithoutStoredSession(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeAuthAPI{}, stubLogger{})

	assert.False(t, svc.IsAuthenticated())
	assert.Empty(t, svc.Token())
	assert.Nil(t, svc.Current())
}

func TestService_Login_Success(t *testing.T) {
	store := &fakeStore{}
	api := &fakeAuthAPI{session: backendSession()}
	svc := NewService(store, api, stubLogger{})

	var notified []bool
	svc.Subscribe(func(present bool) { notified = append(notified, present) })

	user, err := svc.Login(context.Background(), "sara@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, 1, store.saveCalls)
	assert.Equal(t, []bool{true}, notified)
}

func TestService_Login_ValidationNeverReachesNetwork(t *testing.T) {
	api := &fakeAuthAPI{session: backendSession()}
	svc := NewService(&fakeStore{}, api, stubLogger{})

	_, err := svc.Login(context.Background(), "", "secret123")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Login(context.Background(), "not-an-email", "secret123")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Login(context.Background(), "sara@example.com", "")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, 0, api.loginCalls)
	assert.False(t, svc.IsAuthenticated())
}

func TestService_Login_RejectedByBackend(t *testing.T) {
	api := &fakeAuthAPI{loginErr: barberapi.ErrUnauthorized}
	svc := NewService(&fakeStore{}, api, stubLogger{})

	_, err := svc.Login(context.Background(), "sara@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, svc.IsAuthenticated())
}

func TestService_Login_NetworkFailure(t *testing.T) {
	api := &fakeAuthAPI{loginErr: errors.New("connection refused")}
	svc := NewService(&fakeStore{}, api, stubLogger{})

	_, err := svc.Login(context.Background(), "sara@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Register_Success(t *testing.T) {
	store := &fakeStore{}
	api := &fakeAuthAPI{session: backendSession()}
	svc := NewService(store, api, stubLogger{})

	user, err := svc.Register(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, 1, store.saveCalls)
}

func TestService_Register_Validation(t *testing.T) {
	api := &fakeAuthAPI{session: backendSession()}
	svc := NewService(&fakeStore{}, api, stubLogger{})

	missingName := validForm()
	missingName.Name = ""
	_, err := svc.Register(context.Background(), missingName)
	assert.ErrorIs(t, err, ErrValidation)

	shortPassword := validForm()
	shortPassword.Password = "12345"
	shortPassword.ConfirmPassword = "12345"
	_, err = svc.Register(context.Background(), shortPassword)
	assert.ErrorIs(t, err, ErrValidation)

	mismatch := validForm()
	mismatch.ConfirmPassword = "different1"
	_, err = svc.Register(context.Background(), mismatch)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, 0, api.registerCalls)
}

func TestService_Register_EmailTaken(t *testing.T) {
	api := &fakeAuthAPI{registerErr: barberapi.ErrConflict}
	svc := NewService(&fakeStore{}, api, stubLogger{})

	_, err := svc.Register(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Logout(t *testing.T) {
	stored := backendSession()
	store := &fakeStore{stored: &stored}
	svc := NewService(store, &fakeAuthAPI{}, stubLogger{})

	var notified []bool
	svc.Subscribe(func(present bool) { notified = append(notified, present) })

	svc.Logout()
	assert.False(t, svc.IsAuthenticated())
	assert.Equal(t, 1, store.clearCalls)
	assert.Equal(t, []bool{false}, notified)

	// Повторный Logout без сессии не оповещает подписчиков
	svc.Logout()
	assert.Equal(t, []bool{false}, notified)
}

func TestService_Invalidate(t *testing.T) {
	stored := backendSession()
	store := &fakeStore{stored: &stored}
	svc := NewService(store, &fakeAuthAPI{}, stubLogger{})

	svc.Invalidate()
	assert.False(t, svc.IsAuthenticated())
	assert.Equal(t, 1, store.clearCalls)
}

func TestService_ReloginDoesNotRenotify(t *testing.T) {
	store := &fakeStore{}
	api := &fakeAuthAPI{session: backendSession()}
	svc := NewService(store, api, stubLogger{})

	var notified []bool
	svc.Subscribe(func(present bool) { notified = append(notified, present) })

	_, err := svc.Login(context.Background(), "sara@example.com", "secret123")
	require.NoError(t, err)

	// Login поверх живой сессии обновляет токен, но переход
	// absent->present уже случился - подписчики молчат
	_, err = svc.Login(context.Background(), "sara@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, []bool{true}, notified)
	assert.Equal(t, 2, store.saveCalls)
}

func TestService_CurrentReturnsCopy(t *testing.T) {
	stored := backendSession()
	store := &fakeStore{stored: &stored}
	svc := NewService(store, &fakeAuthAPI{}, stubLogger{})

	first := svc.Current()
	first.Token = "tampered"

	assert.Equal(t, "fresh-token", svc.Token())
}
