package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CatalogRepository интерфейс репозитория услуг
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetNonCanceledForResource бронирования мастера ИЛИ кабинета, чей интервал с буферами пересекается с [from, to)
	GetNonCanceledForResource(ctx context.Context, staffID, roomID *int64, from, to time.Time) ([]*domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправляет клиенту подтверждение бронирования
type Notifier interface {
	NotifyReservationConfirmed(ctx context.Context, reservation *domain.Reservation) error
}

// SlotsCacheInvalidator сбрасывает кэш слотов на дату
type SlotsCacheInvalidator interface {
	InvalidateDate(ctx context.Context, date string) error
}

// Metrics бизнес-метрики создания бронирований
type Metrics interface {
	ObserveReservationOutcome(outcome string)
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
