package domain

import "time"

// Slot bookable time window for a particular staff member
type Slot struct {
	StaffID int64
	Start   time.Time
	End     time.Time

	// PaddedStart is Start minus the service's buffer before; lead time is checked against it
	PaddedStart time.Time
}
