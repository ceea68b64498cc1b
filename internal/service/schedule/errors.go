package schedule

import "errors"

var (
	// ErrInvalidSchedule возвращается, когда время в расписании не удается разобрать
	ErrInvalidSchedule = errors.New("schedule: invalid schedule data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
