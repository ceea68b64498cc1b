package schedule

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// StaffRepository источник персональных настроек мастера
type StaffRepository interface {
	GetStaff(ctx context.Context, id int64) (*domain.Staff, error)
}

// SettingsRepository источник глобальных настроек бронирования
type SettingsRepository interface {
	GetGlobalSlotIntervalSetting(ctx context.Context) (*int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
