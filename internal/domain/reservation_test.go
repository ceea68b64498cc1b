package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservation_Padded(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	r := &Reservation{
		StartAt:         start,
		EndAt:           start.Add(time.Hour),
		BufferBeforeMin: 10,
		BufferAfterMin:  5,
	}

	padded := r.Padded()

	assert.Equal(t, time.Date(2025, 3, 10, 13, 50, 0, 0, time.UTC), padded.Start)
	assert.Equal(t, time.Date(2025, 3, 10, 15, 5, 0, 0, time.UTC), padded.End)
}

func TestReservation_IsActive(t *testing.T) {
	assert.True(t, (&Reservation{Status: StatusUnpaid}).IsActive())
	assert.True(t, (&Reservation{Status: StatusNoShow}).IsActive())
	assert.False(t, (&Reservation{Status: StatusCanceled}).IsActive())
}

func TestNonCanceledStatuses_MatchIsActive(t *testing.T) {
	for _, status := range NonCanceledStatuses {
		assert.True(t, (&Reservation{Status: status}).IsActive(), status)
	}
	assert.NotContains(t, NonCanceledStatuses, StatusCanceled)
	assert.Len(t, NonCanceledStatuses, 6)
}

func TestShift_Window(t *testing.T) {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	shift := Shift{StaffID: 1, StartAt: start, EndAt: start.Add(3 * time.Hour)}

	w := shift.Window()

	assert.Equal(t, start, w.Start)
	assert.Equal(t, start.Add(3*time.Hour), w.End)
}

func TestPaymentOption_IsValid(t *testing.T) {
	assert.True(t, PaymentOnline.IsValid())
	assert.True(t, PaymentOnsite.IsValid())
	assert.False(t, PaymentOption("crypto").IsValid())
}
