package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CatalogRepository интерфейс репозитория услуг и мастеров
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetActiveStaffIDsForService(ctx context.Context, serviceID int64) ([]int64, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetOpeningHours(ctx context.Context, weekday time.Weekday) (*domain.OpeningHours, error)
	GetDateOverride(ctx context.Context, date time.Time) (*domain.DateOverride, error)
	GetShifts(ctx context.Context, staffIDs []int64, from, to time.Time) ([]domain.Shift, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetNonCanceledByStaff бронирования мастеров, чей интервал с буферами пересекается с [from, to)
	GetNonCanceledByStaff(ctx context.Context, staffIDs []int64, from, to time.Time) ([]*domain.Reservation, error)
}

// IntervalResolver определяет шаг сетки для пары мастер/услуга
type IntervalResolver interface {
	ResolveSlotIntervalMinutes(ctx context.Context, staffID *int64, service *domain.Service) (int, error)
}

// SlotsCache кэш сгенерированных слотов
type SlotsCache interface {
	Get(ctx context.Context, serviceID int64, date string, staffID *int64) ([]domain.Slot, bool, error)
	Set(ctx context.Context, serviceID int64, date string, staffID *int64, slots []domain.Slot) error
}

// Metrics бизнес-метрики выдачи слотов
type Metrics interface {
	ObserveSlotsReturned(source string, count int)
	ObserveSlotsCache(hit bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
