package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository репозиторий расписания салона: часы работы, исключения, смены, настройки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOpeningHours получает недельное правило для дня недели (0 = воскресенье)
func (r *Repository) GetOpeningHours(ctx context.Context, weekday time.Weekday) (*domain.OpeningHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"open_at",
		"close_at",
		"is_open",
	).
		From("opening_hours").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOpeningHours - build select query: %v", ErrBuildQuery, err)
	}

	var (
		hours domain.OpeningHours
		day   int
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&day,
		&hours.OpenAt,
		&hours.CloseAt,
		&hours.IsOpen,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOpeningHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpeningHours - scan row: %v", ErrScanRow, err)
	}

	hours.Weekday = time.Weekday(day)

	return &hours, nil
}

// GetDateOverride получает исключение для календарной даты
// Дата передается строкой, чтобы часовой пояс соединения не сдвигал день
func (r *Repository) GetDateOverride(ctx context.Context, date time.Time) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"open_at",
		"close_at",
		"is_open",
		"note",
	).
		From("date_overrides").
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDateOverride - build select query: %v", ErrBuildQuery, err)
	}

	override := domain.DateOverride{Date: date}
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&override.OpenAt,
		&override.CloseAt,
		&override.IsOpen,
		&override.Note,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDateOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDateOverride - scan row: %v", ErrScanRow, err)
	}

	return &override, nil
}

// GetGlobalSlotIntervalSetting получает глобальный шаг сетки
// Возвращает nil, если строка настроек есть, но значение не задано
func (r *Repository) GetGlobalSlotIntervalSetting(ctx context.Context) (*int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("default_slot_interval_min").
		From("booking_settings").
		OrderBy("id").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetGlobalSlotIntervalSetting - build select query: %v", ErrBuildQuery, err)
	}

	var minutes sql.NullInt64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&minutes)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetGlobalSlotIntervalSetting - scan row: %v", ErrScanRow, err)
	}

	if !minutes.Valid {
		return nil, nil
	}
	value := int(minutes.Int64)
	return &value, nil
}

// GetShifts получает смены мастеров, пересекающиеся с [from, to)
func (r *Repository) GetShifts(ctx context.Context, staffIDs []int64, from, to time.Time) ([]domain.Shift, error) {
	if len(staffIDs) == 0 {
		return []domain.Shift{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"start_at",
		"end_at",
	).
		From("shifts").
		Where(squirrel.Eq{"staff_id": staffIDs}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("staff_id", "start_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetShifts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetShifts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	shifts := make([]domain.Shift, 0)
	for rows.Next() {
		var shift domain.Shift
		if err := rows.Scan(&shift.ID, &shift.StaffID, &shift.StartAt, &shift.EndAt); err != nil {
			return nil, fmt.Errorf("%w: GetShifts - scan row: %v", ErrScanRow, err)
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetShifts - rows error: %v", ErrScanRow, err)
	}

	return shifts, nil
}
