package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotTaken возвращается, когда вставка нарушает уникальность (мастер, начало) или (кабинет, начало)
	ErrSlotTaken = errors.New("reservation.repository: slot already taken")

	// ErrDuplicateCode возвращается при совпадении кода бронирования
	ErrDuplicateCode = errors.New("reservation.repository: duplicate reservation code")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
