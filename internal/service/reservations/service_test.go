package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

func TestGetByCode(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	store := memstore.New()
	store.AddService(domain.Service{ID: 7, DurationMin: 60, BufferBeforeMin: 10, IsActive: true})
	store.AddReservation(domain.Reservation{
		Code:          "COT-20250310-K7QX",
		ServiceID:     7,
		StaffID:       ptr.Ptr(int64(1)),
		StartAt:       time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC),
		EndAt:         time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC),
		Status:        domain.StatusUnpaid,
		PaymentOption: domain.PaymentOnsite,
		CustomerName:  "Hanako",
		Locale:        "ja",
	})
	svc := NewService(store, loc, logger.NewNop())

	resp, err := svc.GetByCode(context.Background(), " cot-20250310-k7qx ")

	require.NoError(t, err)
	assert.Equal(t, "COT-20250310-K7QX", resp.Code)
	assert.Equal(t, "2025-03-10T14:00:00+09:00", resp.Start)
	assert.Equal(t, "2025-03-10T15:00:00+09:00", resp.End)
	assert.Equal(t, "unpaid", resp.Status)
}

func TestGetByCode_Errors(t *testing.T) {
	store := memstore.New()
	svc := NewService(store, nil, logger.NewNop())

	_, err := svc.GetByCode(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetByCode(context.Background(), "COT-20250310-XXXX")
	assert.ErrorIs(t, err, ErrReservationNotFound)

	store.FailWith = errors.New("connection refused")
	_, err = svc.GetByCode(context.Background(), "COT-20250310-XXXX")
	assert.ErrorIs(t, err, ErrInternal)
}
