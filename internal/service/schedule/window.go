package schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/interval"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ResolveOpenWindow возвращает окно работы салона на дату или nil, если салон закрыт
//
// Переопределение на дату важнее недельного правила. Незаданное в переопределении время
// берется из недельного правила. Окно с close <= open считается закрытым.
func ResolveOpenWindow(
	date time.Time,
	loc *time.Location,
	weekdayRule *domain.OpeningHours,
	override *domain.DateOverride,
) (*domain.Window, error) {
	if override != nil {
		if !override.IsOpen {
			return nil, nil
		}
		openAt, closeAt := override.OpenAt, override.CloseAt
		if weekdayRule != nil {
			if openAt.IsZero() {
				openAt = weekdayRule.OpenAt
			}
			if closeAt.IsZero() {
				closeAt = weekdayRule.CloseAt
			}
		}
		return buildWindow(date, loc, openAt, closeAt)
	}

	if weekdayRule == nil || !weekdayRule.IsOpen {
		return nil, nil
	}
	return buildWindow(date, loc, weekdayRule.OpenAt, weekdayRule.CloseAt)
}

func buildWindow(date time.Time, loc *time.Location, openAt, closeAt types.TimeString) (*domain.Window, error) {
	if openAt.IsZero() || closeAt.IsZero() {
		return nil, nil
	}

	start, err := openAt.OnDate(date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: open time %q: %v", ErrInvalidSchedule, openAt, err)
	}
	end, err := closeAt.OnDate(date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: close time %q: %v", ErrInvalidSchedule, closeAt, err)
	}

	if !start.Before(end) {
		return nil, nil
	}

	window := interval.New(start, end)
	return &window, nil
}

// WorkingWindows пересекает смены мастера с окном работы салона
// Без смен рабочим окном считается всё окно салона
func WorkingWindows(open domain.Window, shifts []domain.Shift) []domain.Window {
	if len(shifts) == 0 {
		return []domain.Window{open}
	}

	windows := make([]domain.Window, 0, len(shifts))
	for _, shift := range shifts {
		w := shift.Window()
		start := w.Start
		if open.Start.After(start) {
			start = open.Start
		}
		end := w.End
		if open.End.Before(end) {
			end = open.End
		}
		// Смена вне окна салона
		if !start.Before(end) {
			continue
		}
		windows = append(windows, interval.New(start, end))
	}
	return windows
}
