package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
)

const (
	sourceDB    = "db"
	sourceCache = "cache"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	catalogRepo     CatalogRepository
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	resolver        IntervalResolver
	cache           SlotsCache
	metrics         Metrics
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	resolver IntervalResolver,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &UseCase{
		catalogRepo:     catalogRepo,
		scheduleRepo:    scheduleRepo,
		reservationRepo: reservationRepo,
		resolver:        resolver,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithCache включает кэширование результатов
func (uc *UseCase) WithCache(cache SlotsCache) *UseCase {
	uc.cache = cache
	return uc
}

// WithMetrics включает бизнес-метрики
func (uc *UseCase) WithMetrics(metrics Metrics) *UseCase {
	uc.metrics = metrics
	return uc
}

// Execute выполняет use case получения доступных слотов
// Результат не зависит от побочных эффектов и может кэшироваться
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	loc := uc.settings.Location
	y, m, d := req.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, loc)
	dateKey := date.Format(domain.DateFormat)

	uc.logger.Info("GetAvailableSlots: service=%d, date=%s, staff=%s",
		req.ServiceID, dateKey, staffLabel(req.StaffID))

	response := &Response{Date: date, ServiceID: req.ServiceID, Slots: []domain.Slot{}}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	earliestStart := now.Add(uc.settings.MinLeadTime)

	// 3. Пробуем кэш; минимальное время до начала проверяем заново
	if cached, ok := uc.readCache(ctx, req.ServiceID, dateKey, req.StaffID); ok {
		response.Slots = FilterByLeadTime(cached, earliestStart)
		uc.observeReturned(sourceCache, len(response.Slots))
		return response, nil
	}

	if uc.settings.DatastoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.settings.DatastoreTimeout)
		defer cancel()
	}

	// 4. Параллельно загружаем услугу, мастеров, часы работы и исключение на дату
	var (
		service  *domain.Service
		staffIDs []int64
		hours    *domain.OpeningHours
		override *domain.DateOverride
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		service, err = uc.catalogRepo.GetService(gctx, req.ServiceID)
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		return err
	})
	g.Go(func() error {
		if req.StaffID != nil {
			staffIDs = []int64{*req.StaffID}
			return nil
		}
		var err error
		staffIDs, err = uc.catalogRepo.GetActiveStaffIDsForService(gctx, req.ServiceID)
		return err
	})
	g.Go(func() error {
		var err error
		hours, err = uc.scheduleRepo.GetOpeningHours(gctx, date.Weekday())
		if errors.Is(err, scheduleRepo.ErrOpeningHoursNotFound) {
			hours, err = nil, nil
		}
		return err
	})
	g.Go(func() error {
		var err error
		override, err = uc.scheduleRepo.GetDateOverride(gctx, date)
		if errors.Is(err, scheduleRepo.ErrDateOverrideNotFound) {
			override, err = nil, nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to load service and schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to load service and schedule: %v", ErrInternal, err)
	}

	// 5. Неактивная услуга или услуга без мастеров - слотов нет
	if !service.IsActive {
		uc.logger.Info("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return uc.finish(ctx, req, dateKey, response), nil
	}
	if len(staffIDs) == 0 {
		uc.logger.Info("GetAvailableSlots: service id=%d has no active staff", req.ServiceID)
		return uc.finish(ctx, req, dateKey, response), nil
	}

	// 6. Окно работы салона на дату
	openWindow, err := schedule.ResolveOpenWindow(date, loc, hours, override)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve open window for %s: %v", dateKey, err)
		return nil, fmt.Errorf("%w: failed to resolve open window: %v", ErrInternal, err)
	}
	if openWindow == nil {
		uc.logger.Info("GetAvailableSlots: salon is closed on %s", dateKey)
		return uc.finish(ctx, req, dateKey, response), nil
	}

	// 7. Параллельно загружаем смены и бронирования мастеров
	var (
		shifts       []domain.Shift
		reservations []*domain.Reservation
	)

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		shifts, err = uc.scheduleRepo.GetShifts(gctx, staffIDs, openWindow.Start, openWindow.End)
		return err
	})
	g.Go(func() error {
		var err error
		reservations, err = uc.reservationRepo.GetNonCanceledByStaff(gctx, staffIDs, openWindow.Start, openWindow.End)
		return err
	})

	if err := g.Wait(); err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load shifts and reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to load shifts and reservations: %v", ErrInternal, err)
	}

	// 8. Собираем расписание каждого мастера
	shiftsByStaff := make(map[int64][]domain.Shift, len(staffIDs))
	for _, shift := range shifts {
		shiftsByStaff[shift.StaffID] = append(shiftsByStaff[shift.StaffID], shift)
	}
	reservationsByStaff := make(map[int64][]*domain.Reservation, len(staffIDs))
	for _, r := range reservations {
		if r.StaffID != nil {
			reservationsByStaff[*r.StaffID] = append(reservationsByStaff[*r.StaffID], r)
		}
	}

	schedules := make([]StaffSchedule, 0, len(staffIDs))
	for _, staffID := range staffIDs {
		id := staffID
		step, err := uc.resolver.ResolveSlotIntervalMinutes(ctx, &id, service)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to resolve slot interval for staff=%d: %v", id, err)
			return nil, fmt.Errorf("%w: failed to resolve slot interval: %v", ErrInternal, err)
		}

		schedules = append(schedules, StaffSchedule{
			StaffID:         id,
			SlotIntervalMin: step,
			Windows:         schedule.WorkingWindows(*openWindow, shiftsByStaff[id]),
			Reservations:    reservationsByStaff[id],
		})
	}

	// 9. Генерируем слоты
	response.Slots = GenerateSlots(service, schedules, earliestStart)

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%d, date=%s, staff=%s",
		len(response.Slots), req.ServiceID, dateKey, staffLabel(req.StaffID))

	return uc.finish(ctx, req, dateKey, response), nil
}

// finish кэширует результат и учитывает метрики
func (uc *UseCase) finish(ctx context.Context, req *Request, dateKey string, response *Response) *Response {
	uc.writeCache(ctx, req.ServiceID, dateKey, req.StaffID, response.Slots)
	uc.observeReturned(sourceDB, len(response.Slots))
	return response
}

// readCache ошибки кэша не влияют на результат, хранилище остается источником истины
func (uc *UseCase) readCache(ctx context.Context, serviceID int64, date string, staffID *int64) ([]domain.Slot, bool) {
	if uc.cache == nil {
		return nil, false
	}
	slots, found, err := uc.cache.Get(ctx, serviceID, date, staffID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cache read failed: %v", err)
		return nil, false
	}
	if uc.metrics != nil {
		uc.metrics.ObserveSlotsCache(found)
	}
	return slots, found
}

func (uc *UseCase) writeCache(ctx context.Context, serviceID int64, date string, staffID *int64, slots []domain.Slot) {
	if uc.cache == nil || ctx.Err() != nil {
		return
	}
	if err := uc.cache.Set(ctx, serviceID, date, staffID, slots); err != nil {
		uc.logger.Warn("GetAvailableSlots: cache write failed: %v", err)
	}
}

func (uc *UseCase) observeReturned(source string, count int) {
	if uc.metrics != nil {
		uc.metrics.ObserveSlotsReturned(source, count)
	}
}

func staffLabel(staffID *int64) string {
	if staffID == nil {
		return "all"
	}
	return fmt.Sprintf("%d", *staffID)
}
