package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/interval"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusUnpaid    ReservationStatus = "unpaid"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusPaid      ReservationStatus = "paid"
	StatusCanceled  ReservationStatus = "canceled"
	StatusCompleted ReservationStatus = "completed"
	StatusNoShow    ReservationStatus = "no_show"
)

// PaymentOption how the customer intends to pay
type PaymentOption string

const (
	PaymentOnline PaymentOption = "online"
	PaymentOnsite PaymentOption = "onsite"
)

// IsValid checks that the payment option is known
func (p PaymentOption) IsValid() bool {
	return p == PaymentOnline || p == PaymentOnsite
}

// Reservation a booked interval occupying a staff member and optionally a room
type Reservation struct {
	ID            int64
	Code          string
	ServiceID     int64
	StaffID       *int64
	RoomID        *int64
	StartAt       time.Time
	EndAt         time.Time
	Status        ReservationStatus
	PaymentOption PaymentOption

	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string
	Locale        string
	Notes         *string

	// Denormalized data for history
	ServicePrice float64

	// Buffers of the reserved service, joined on read
	BufferBeforeMin int
	BufferAfterMin  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCanceled returns true if the reservation no longer occupies its slot
func (r *Reservation) IsCanceled() bool {
	return r.Status == StatusCanceled
}

// IsActive returns true if the reservation blocks its staff and room
func (r *Reservation) IsActive() bool {
	return !r.IsCanceled()
}

// Padded returns the reservation interval expanded by its service buffers
func (r *Reservation) Padded() interval.Interval {
	return interval.Expand(interval.New(r.StartAt, r.EndAt), r.BufferBeforeMin, r.BufferAfterMin)
}
