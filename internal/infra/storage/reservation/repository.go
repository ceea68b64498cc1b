package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Интервал брони с буферами её услуги
const (
	paddedStart = "r.start_at - s.buffer_before_min * interval '1 minute'"
	paddedEnd   = "r.end_at + s.buffer_after_min * interval '1 minute'"
)

// reservationColumns колонки бронирования вместе с буферами услуги
var reservationColumns = []string{
	"r.id",
	"r.code",
	"r.service_id",
	"r.staff_id",
	"r.room_id",
	"r.start_at",
	"r.end_at",
	"r.status",
	"r.payment_option",
	"r.customer_name",
	"r.customer_email",
	"r.customer_phone",
	"r.locale",
	"r.notes",
	"r.service_price",
	"s.buffer_before_min",
	"s.buffer_after_min",
	"r.created_at",
	"r.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
//
// Нарушение уникальности (мастер, начало) или (кабинет, начало) возвращается как ErrSlotTaken,
// совпадение кода как ErrDuplicateCode.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"code",
			"service_id",
			"staff_id",
			"room_id",
			"start_at",
			"end_at",
			"status",
			"payment_option",
			"customer_name",
			"customer_email",
			"customer_phone",
			"locale",
			"notes",
			"service_price",
		).
		Values(
			reservation.Code,
			reservation.ServiceID,
			reservation.StaffID,
			reservation.RoomID,
			reservation.StartAt,
			reservation.EndAt,
			reservation.Status,
			reservation.PaymentOption,
			reservation.CustomerName,
			reservation.CustomerEmail,
			reservation.CustomerPhone,
			reservation.Locale,
			reservation.Notes,
			reservation.ServicePrice,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, classifyInsertError(err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetNonCanceledByStaff получает неотмененные бронирования мастеров,
// чей интервал с буферами пересекается с [from, to)
func (r *Repository) GetNonCanceledByStaff(ctx context.Context, staffIDs []int64, from, to time.Time) ([]*domain.Reservation, error) {
	if len(staffIDs) == 0 {
		return []*domain.Reservation{}, nil
	}

	return r.selectNonCanceled(ctx, "GetNonCanceledByStaff",
		squirrel.Eq{"r.staff_id": staffIDs}, from, to)
}

// GetNonCanceledForResource получает неотмененные бронирования, занимающие мастера ИЛИ кабинет,
// чей интервал с буферами пересекается с [from, to)
func (r *Repository) GetNonCanceledForResource(ctx context.Context, staffID, roomID *int64, from, to time.Time) ([]*domain.Reservation, error) {
	resource := squirrel.Or{}
	if staffID != nil {
		resource = append(resource, squirrel.Eq{"r.staff_id": *staffID})
	}
	if roomID != nil {
		resource = append(resource, squirrel.Eq{"r.room_id": *roomID})
	}
	if len(resource) == 0 {
		return []*domain.Reservation{}, nil
	}

	return r.selectNonCanceled(ctx, "GetNonCanceledForResource", resource, from, to)
}

// GetByCode получает бронирование по коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Join("services s ON s.id = r.service_id").
		Where(squirrel.Eq{"r.code": code}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, ErrReservationNotFound
	}

	return reservations[0], nil
}

func (r *Repository) selectNonCanceled(
	ctx context.Context,
	op string,
	scope squirrel.Sqlizer,
	from, to time.Time,
) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Join("services s ON s.id = r.service_id").
		Where(scope).
		Where(squirrel.Eq{"r.status": domain.NonCanceledStatuses}).
		Where(squirrel.Expr(paddedStart+" < ?", to)).
		Where(squirrel.Expr(paddedEnd+" > ?", from)).
		OrderBy("r.start_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var reservation domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&reservation.ID,
			&reservation.Code,
			&reservation.ServiceID,
			&reservation.StaffID,
			&reservation.RoomID,
			&reservation.StartAt,
			&reservation.EndAt,
			&reservation.Status,
			&reservation.PaymentOption,
			&reservation.CustomerName,
			&reservation.CustomerEmail,
			&reservation.CustomerPhone,
			&reservation.Locale,
			&reservation.Notes,
			&reservation.ServicePrice,
			&reservation.BufferBeforeMin,
			&reservation.BufferAfterMin,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		reservation.CreatedAt = createdAt.Time
		reservation.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
