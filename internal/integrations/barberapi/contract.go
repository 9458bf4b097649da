package barberapi

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TokenSource отдаёт текущий bearer-токен сессии
// Пустая строка означает отсутствие сессии - запрос уходит без Authorization header
type TokenSource interface {
	Token() string
}
