package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	reservationRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/pkg/interval"
)

// maxCodeAttempts сколько раз генерируем код при коллизии
const maxCodeAttempts = 3

const (
	outcomeCreated  = "created"
	outcomeInternal = "internal"
)

// UseCase use case для создания бронирования
type UseCase struct {
	catalogRepo     CatalogRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	notifier        Notifier
	cache           SlotsCacheInvalidator
	metrics         Metrics
	settings        Settings
	timeProvider    TimeProvider
	generateCode    func(start time.Time, loc *time.Location) (string, error)
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &UseCase{
		catalogRepo:     catalogRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		generateCode:    generateCode,
		logger:          logger,
	}
}

// WithNotifier включает отправку подтверждений
func (uc *UseCase) WithNotifier(notifier Notifier) *UseCase {
	uc.notifier = notifier
	return uc
}

// WithCache включает сброс кэша слотов после создания бронирования
func (uc *UseCase) WithCache(cache SlotsCacheInvalidator) *UseCase {
	uc.cache = cache
	return uc
}

// WithMetrics включает бизнес-метрики
func (uc *UseCase) WithMetrics(metrics Metrics) *UseCase {
	uc.metrics = metrics
	return uc
}

// Execute выполняет use case создания бронирования
//
// Защита от двойного бронирования двухуровневая: проверка пересечений в транзакции
// и уникальные индексы (мастер, начало) и (кабинет, начало) в БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.observeOutcome(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	uc.logger.Info("CreateReservation: service=%d, staff=%s, room=%s, start=%s",
		req.ServiceID, idLabel(req.StaffID), idLabel(req.RoomID), req.StartAt.Format(time.RFC3339))

	// 1. Нормализуем контакты, без них дальше не идем
	email := normalizeEmail(req.CustomerEmail)
	phone := normalizePhone(req.CustomerPhone)
	if email == nil && phone == nil {
		uc.logger.Warn("CreateReservation: neither email nor phone provided")
		return nil, ErrContactRequired
	}

	// 2. Валидация остальных полей
	if err := validateRequest(req, email, phone); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем минимальное время до начала
	now := uc.timeProvider.Now()
	earliest := now.Add(uc.settings.MinLeadTime)
	if req.StartAt.Before(earliest) {
		uc.logger.Warn("CreateReservation: start %s is earlier than %s",
			req.StartAt.Format(time.RFC3339), earliest.Format(time.RFC3339))
		return nil, ErrLeadTime
	}

	dbCtx := ctx
	if uc.settings.DatastoreTimeout > 0 {
		var cancel context.CancelFunc
		dbCtx, cancel = context.WithTimeout(ctx, uc.settings.DatastoreTimeout)
		defer cancel()
	}

	// 4. Получаем услугу
	service, err := uc.catalogRepo.GetService(dbCtx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateReservation: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateReservation: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 5. Конец записи: явный или начало + длительность услуги
	endAt := req.StartAt.Add(time.Duration(service.DurationMin) * time.Minute)
	if req.EndAt != nil {
		endAt = *req.EndAt
	}

	// 6. Собираем бронирование
	reservation := &domain.Reservation{
		ServiceID:       req.ServiceID,
		StaffID:         req.StaffID,
		RoomID:          req.RoomID,
		StartAt:         req.StartAt,
		EndAt:           endAt,
		Status:          initialStatus(service),
		PaymentOption:   req.PaymentOption,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   email,
		CustomerPhone:   phone,
		Locale:          req.Locale,
		Notes:           req.Notes,
		ServicePrice:    service.Price,
		BufferBeforeMin: service.BufferBeforeMin,
		BufferAfterMin:  service.BufferAfterMin,
	}
	if reservation.PaymentOption == "" {
		reservation.PaymentOption = domain.DefaultPaymentOption
	}
	if reservation.Locale == "" {
		reservation.Locale = domain.DefaultLocale
	}

	padded := schedule.PaddedCandidate(interval.New(reservation.StartAt, reservation.EndAt), service)

	// 7. Проверка пересечений и вставка в одной транзакции
	// При коллизии кода бронирования генерируем новый
	var created *domain.Reservation
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := uc.generateCode(reservation.StartAt, uc.settings.Location)
		if err != nil {
			uc.logger.Error("CreateReservation: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		reservation.Code = code

		created, err = uc.admit(dbCtx, reservation, padded)
		if errors.Is(err, reservationRepo.ErrDuplicateCode) {
			uc.logger.Warn("CreateReservation: code %s already exists, attempt %d/%d", code, attempt, maxCodeAttempts)
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}
	if created == nil {
		uc.logger.Error("CreateReservation: failed to generate unique code after %d attempts", maxCodeAttempts)
		return nil, fmt.Errorf("%w: failed to generate unique reservation code", ErrInternal)
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, code=%s, status=%s",
		created.ID, created.Code, created.Status)

	// 8. Подтверждение отправляем только для записей без предоплаты
	if created.Status == domain.StatusUnpaid {
		uc.notify(ctx, created)
	}

	// 9. Сбрасываем кэш слотов на дату записи
	uc.invalidateCache(ctx, created)

	return newResponse(created), nil
}

// admit проверяет пересечения и сохраняет бронирование в одной транзакции
func (uc *UseCase) admit(ctx context.Context, reservation *domain.Reservation, padded interval.Interval) (*domain.Reservation, error) {
	var created *domain.Reservation

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 7.1. Пересечения с бронированиями мастера или кабинета
		if reservation.StaffID != nil || reservation.RoomID != nil {
			existing, err := uc.reservationRepo.GetNonCanceledForResource(
				txCtx, reservation.StaffID, reservation.RoomID, padded.Start, padded.End)
			if err != nil {
				uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
				return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
			}
			if schedule.HasConflict(padded, existing) {
				uc.logger.Warn("CreateReservation: slot %s is taken (staff=%s, room=%s)",
					reservation.StartAt.Format(time.RFC3339), idLabel(reservation.StaffID), idLabel(reservation.RoomID))
				return ErrSlotTaken
			}
		}

		// 7.2. Вставка; уникальный индекс ловит параллельную запись на то же время
		row := *reservation
		result, err := uc.reservationRepo.Create(txCtx, &row)
		if err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrSlotTaken):
				uc.logger.Warn("CreateReservation: slot %s taken by concurrent request", reservation.StartAt.Format(time.RFC3339))
				return ErrSlotTaken
			case errors.Is(err, reservationRepo.ErrDuplicateCode):
				return err
			default:
				uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
				return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
			}
		}

		created = result
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrInternal) || errors.Is(err, reservationRepo.ErrDuplicateCode) {
			return nil, err
		}
		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	return created, nil
}

// notify ошибки отправки логируются, бронирование уже создано
func (uc *UseCase) notify(ctx context.Context, reservation *domain.Reservation) {
	if uc.notifier == nil {
		return
	}

	notifyCtx := context.WithoutCancel(ctx)
	if uc.settings.NotifyTimeout > 0 {
		var cancel context.CancelFunc
		notifyCtx, cancel = context.WithTimeout(notifyCtx, uc.settings.NotifyTimeout)
		defer cancel()
	}

	if err := uc.notifier.NotifyReservationConfirmed(notifyCtx, reservation); err != nil {
		uc.logger.Error("CreateReservation: failed to send confirmation for reservation id=%d: %v", reservation.ID, err)
		return
	}
	uc.logger.Info("CreateReservation: confirmation sent for reservation id=%d", reservation.ID)
}

func (uc *UseCase) invalidateCache(ctx context.Context, reservation *domain.Reservation) {
	if uc.cache == nil {
		return
	}
	date := reservation.StartAt.In(uc.settings.Location).Format(domain.DateFormat)
	if err := uc.cache.InvalidateDate(context.WithoutCancel(ctx), date); err != nil {
		uc.logger.Warn("CreateReservation: failed to invalidate slots cache for %s: %v", date, err)
	}
}

func (uc *UseCase) observeOutcome(err error) {
	if uc.metrics == nil {
		return
	}
	switch code := ErrorCode(err); {
	case err == nil:
		uc.metrics.ObserveReservationOutcome(outcomeCreated)
	case code != "":
		uc.metrics.ObserveReservationOutcome(code)
	default:
		uc.metrics.ObserveReservationOutcome(outcomeInternal)
	}
}

// initialStatus при предоплате запись ждет оплаты, иначе оплата на месте
func initialStatus(service *domain.Service) domain.ReservationStatus {
	if service.RequiresPrepayment {
		return domain.StatusPending
	}
	return domain.StatusUnpaid
}

func idLabel(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}
