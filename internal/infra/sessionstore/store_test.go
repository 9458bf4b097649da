package sessionstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HBS-BookingFlow/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "session.json"))
}

// signedToken собирает настоящий JWT с указанным exp
// Подпись не важна: хранилище читает claims без верификации
func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("not-the-real-secret"))
	require.NoError(t, err)
	return signed
}

func testSession(token string) *domain.Session {
	return &domain.Session{
		Token: token,
		User: domain.User{
			ID:    "u1",
			Name:  "Sara",
			Email: "sara@example.com",
			Role:  domain.RoleClient,
		},
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	token := signedToken(t, time.Now().Add(24*time.Hour))

	require.NoError(t, store.Save(testSession(token)))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, token, loaded.Token)
	assert.Equal(t, "Sara", loaded.User.Name)
	assert.Equal(t, domain.RoleClient, loaded.User.Role)
}

func TestStore_Load_MissingFile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_Load_CorruptFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte("{not json"), 0o600))

	// Повреждённый файл - это отсутствие сессии, а не фатальная ошибка
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_Load_EmptyToken(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte(`{"token":"","user":{}}`), 0o600))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_Load_ExpiredTokenIsDiscarded(t *testing.T) {
	store := newTestStore(t)
	expired := signedToken(t, time.Now().Add(-time.Hour))
	require.NoError(t, store.Save(testSession(expired)))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	// Файл вычищен: повторный Load не перечитывает мёртвую сессию
	_, statErr := os.Stat(store.path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_Load_OpaqueTokenIsKept(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(testSession("opaque-session-token")))

	// Не-JWT токен считается живым - его судьбу решает backend через 401
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "opaque-session-token", loaded.Token)
}

func TestStore_Save_CreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	store := New(filepath.Join(dir, "nested", "deeper", "session.json"))

	require.NoError(t, store.Save(testSession(signedToken(t, time.Now().Add(time.Hour)))))

	info, err := os.Stat(store.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(testSession(signedToken(t, time.Now().Add(time.Hour)))))

	require.NoError(t, store.Clear())
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	// Повторный Clear по отсутствующему файлу - no-op
	assert.NoError(t, store.Clear())
}
