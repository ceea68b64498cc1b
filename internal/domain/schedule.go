package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/interval"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Window absolute time range during which bookings can happen
type Window = interval.Interval

// Shift concrete working interval of a staff member
type Shift struct {
	ID      int64
	StaffID int64
	StartAt time.Time
	EndAt   time.Time
}

// Window returns the shift as an absolute interval
func (s Shift) Window() Window {
	return interval.New(s.StartAt, s.EndAt)
}

// OpeningHours weekly recurring opening rule
// Zero OpenAt/CloseAt means the time is not set
type OpeningHours struct {
	Weekday time.Weekday
	OpenAt  types.TimeString
	CloseAt types.TimeString
	IsOpen  bool
}

// DateOverride replaces OpeningHours for a single calendar date
// Zero OpenAt/CloseAt falls back to the weekday rule
type DateOverride struct {
	Date    time.Time
	OpenAt  types.TimeString
	CloseAt types.TimeString
	IsOpen  bool
	Note    *string
}
