package slots

import "errors"

var (
	// ErrCache возвращается при ошибках обращения к Redis
	ErrCache = errors.New("slots.cache: redis error")

	// ErrDecode возвращается, когда закэшированное значение не удается разобрать
	ErrDecode = errors.New("slots.cache: failed to decode cached slots")
)
