package sessionstore

import "errors"

var (
	// ErrNoSession возвращается, когда сохранённой сессии нет
	// (файл отсутствует, повреждён или токен просрочен)
	ErrNoSession = errors.New("sessionstore: no stored session")

	// ErrPersist возвращается при ошибке записи файла сессии
	ErrPersist = errors.New("sessionstore: failed to persist session")
)
