package schedule

import "errors"

var (
	// ErrOpeningHoursNotFound возвращается, когда для дня недели нет правила
	ErrOpeningHoursNotFound = errors.New("schedule.repository: opening hours not found")

	// ErrDateOverrideNotFound возвращается, когда для даты нет исключения
	ErrDateOverrideNotFound = errors.New("schedule.repository: date override not found")

	// ErrSettingsNotFound возвращается, когда строка глобальных настроек отсутствует
	ErrSettingsNotFound = errors.New("schedule.repository: booking settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
