package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
)

// IntervalLookup ленивый источник шага сетки; nil означает "не задано"
type IntervalLookup func(ctx context.Context) (*int, error)

// CoalesceInterval возвращает первое положительное значение из lookups
// Источники опрашиваются по порядку, следующий вызывается только если предыдущий ничего не дал
func CoalesceInterval(ctx context.Context, fallback int, lookups ...IntervalLookup) (int, error) {
	for _, lookup := range lookups {
		value, err := lookup(ctx)
		if err != nil {
			return 0, err
		}
		if value != nil && *value > 0 {
			return *value, nil
		}
	}
	return fallback, nil
}

// IntervalResolver определяет шаг сетки слотов: мастер → услуга → глобальная настройка → fallback
type IntervalResolver struct {
	staffRepo    StaffRepository
	settingsRepo SettingsRepository
	fallback     int
	logger       Logger
}

// NewIntervalResolver создает резолвер шага сетки
// Неположительный fallback заменяется на domain.DefaultSlotIntervalMinutes
func NewIntervalResolver(
	staffRepo StaffRepository,
	settingsRepo SettingsRepository,
	fallback int,
	logger Logger,
) *IntervalResolver {
	if fallback <= 0 {
		fallback = domain.DefaultSlotIntervalMinutes
	}
	return &IntervalResolver{
		staffRepo:    staffRepo,
		settingsRepo: settingsRepo,
		fallback:     fallback,
		logger:       logger,
	}
}

// ResolveSlotIntervalMinutes возвращает шаг сетки в минутах для пары мастер/услуга
// Доменных ошибок нет, результат всегда положительный; наружу выходят только ошибки хранилища
func (r *IntervalResolver) ResolveSlotIntervalMinutes(ctx context.Context, staffID *int64, service *domain.Service) (int, error) {
	minutes, err := CoalesceInterval(ctx, r.fallback,
		r.staffLookup(staffID),
		serviceLookup(service),
		r.globalLookup(),
	)
	if err != nil {
		r.logger.Error("ResolveSlotIntervalMinutes: staff=%v, service=%d: %v", staffID, service.ID, err)
		return 0, err
	}
	return minutes, nil
}

func (r *IntervalResolver) staffLookup(staffID *int64) IntervalLookup {
	return func(ctx context.Context) (*int, error) {
		if staffID == nil {
			return nil, nil
		}
		staff, err := r.staffRepo.GetStaff(ctx, *staffID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrStaffNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("%w: failed to get staff id=%d: %v", ErrInternal, *staffID, err)
		}
		return staff.SlotIntervalMin, nil
	}
}

func serviceLookup(service *domain.Service) IntervalLookup {
	return func(context.Context) (*int, error) {
		if service == nil {
			return nil, nil
		}
		return service.SlotIntervalMin, nil
	}
}

func (r *IntervalResolver) globalLookup() IntervalLookup {
	return func(ctx context.Context) (*int, error) {
		minutes, err := r.settingsRepo.GetGlobalSlotIntervalSetting(ctx)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrSettingsNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("%w: failed to get global slot interval: %v", ErrInternal, err)
		}
		return minutes, nil
	}
}
