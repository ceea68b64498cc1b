package create_reservation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

const (
	serviceID      int64 = 7
	prepaidService int64 = 8
	staffID        int64 = 1
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeNotifier struct {
	mu    sync.Mutex
	calls []*domain.Reservation
	err   error
}

func (n *fakeNotifier) NotifyReservationConfirmed(_ context.Context, r *domain.Reservation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, r)
	return n.err
}

type fakeCache struct {
	mu    sync.Mutex
	dates []string
}

func (c *fakeCache) InvalidateDate(_ context.Context, date string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dates = append(c.dates, date)
	return nil
}

type fakeMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *fakeMetrics) ObserveReservationOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

type fixture struct {
	store    *memstore.Store
	uc       *UseCase
	notifier *fakeNotifier
	cache    *fakeCache
	metrics  *fakeMetrics
	loc      *time.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	store := memstore.New()
	store.AddService(domain.Service{
		ID:              serviceID,
		Name:            "Cut",
		DurationMin:     60,
		BufferBeforeMin: 10,
		BufferAfterMin:  5,
		Price:           5500,
		IsActive:        true,
	})
	store.AddService(domain.Service{
		ID:                 prepaidService,
		Name:               "Color",
		DurationMin:        90,
		Price:              12000,
		RequiresPrepayment: true,
		IsActive:           true,
	})
	store.AddStaff(domain.Staff{ID: staffID, IsActive: true}, serviceID, prepaidService)

	f := &fixture{
		store:    store,
		notifier: &fakeNotifier{},
		cache:    &fakeCache{},
		metrics:  &fakeMetrics{},
		loc:      loc,
	}

	f.uc = NewUseCase(store, store, memstore.TxManager{}, Settings{
		Location:    loc,
		MinLeadTime: 2 * time.Hour,
	}, logger.NewNop()).
		WithNotifier(f.notifier).
		WithCache(f.cache).
		WithMetrics(f.metrics)
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 3, 10, 8, 0, 0, 0, loc)}

	return f
}

func (f *fixture) at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, f.loc)
}

func (f *fixture) request(start time.Time) *Request {
	return &Request{
		ServiceID:     serviceID,
		StaffID:       ptr.Ptr(staffID),
		StartAt:       start,
		CustomerName:  "  Hanako Yamada ",
		CustomerEmail: ptr.Ptr(" Hanako@Example.COM "),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(f.at(14, 0)))

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Regexp(t, `^COT-20250310-[BCDFGHJKLMNPQRSTVWXZ2-9]{4}$`, resp.Code)
	assert.Equal(t, f.at(15, 0), resp.EndAt)
	assert.Equal(t, domain.StatusUnpaid, resp.Status)
	assert.Equal(t, domain.PaymentOnsite, resp.PaymentOption)
	assert.Equal(t, "Hanako Yamada", resp.CustomerName)
	assert.Equal(t, "hanako@example.com", *resp.CustomerEmail)
	assert.Nil(t, resp.CustomerPhone)
	assert.Equal(t, domain.DefaultLocale, resp.Locale)
	assert.Equal(t, 5500.0, resp.ServicePrice)

	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, resp.ID, f.notifier.calls[0].ID)
	assert.Equal(t, []string{"2025-03-10"}, f.cache.dates)
	assert.Equal(t, []string{outcomeCreated}, f.metrics.outcomes)
}

func TestExecute_ExplicitEnd(t *testing.T) {
	f := newFixture(t)
	req := f.request(f.at(14, 0))
	req.EndAt = ptr.Ptr(f.at(14, 30))

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, f.at(14, 30), resp.EndAt)
}

func TestExecute_ContactRequiredBeforeDatastore(t *testing.T) {
	tests := []struct {
		name  string
		email *string
		phone *string
	}{
		{name: "both nil"},
		{name: "blank email", email: ptr.Ptr("   ")},
		{name: "phone without digits", phone: ptr.Ptr("+-() ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.request(f.at(14, 0))
			req.CustomerEmail = tt.email
			req.CustomerPhone = tt.phone

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrContactRequired)
			assert.Equal(t, CodeContactRequired, ErrorCode(err))
			assert.Empty(t, f.store.Calls)
			assert.Equal(t, []string{CodeContactRequired}, f.metrics.outcomes)
		})
	}
}

func TestExecute_PhoneOnly(t *testing.T) {
	f := newFixture(t)
	req := f.request(f.at(14, 0))
	req.CustomerEmail = nil
	req.CustomerPhone = ptr.Ptr("+81 (90) 1234-5678")

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "819012345678", *resp.CustomerPhone)
	assert.Nil(t, resp.CustomerEmail)
}

func TestExecute_FieldsAtColumnLimits(t *testing.T) {
	f := newFixture(t)
	req := f.request(f.at(14, 0))
	req.Locale = "zh-Hant-TW"
	req.CustomerEmail = ptr.Ptr(strings.Repeat("a", 308) + "@example.com")
	req.CustomerPhone = ptr.Ptr(strings.Repeat("9", domain.MaxCustomerPhoneLength))

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "zh-Hant-TW", resp.Locale)
	assert.Len(t, *resp.CustomerEmail, domain.MaxCustomerEmailLength)
}

func TestExecute_FullWidthPhoneDigits(t *testing.T) {
	f := newFixture(t)
	req := f.request(f.at(14, 0))
	req.CustomerEmail = nil
	req.CustomerPhone = ptr.Ptr("０９０-１２３４-５６７８")

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "09012345678", *resp.CustomerPhone)
}

func TestExecute_LeadTime(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request(f.at(9, 59)))
	assert.ErrorIs(t, err, ErrLeadTime)
	assert.Empty(t, f.store.Calls)

	_, err = f.uc.Execute(context.Background(), f.request(f.at(10, 0)))
	assert.NoError(t, err)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture(t)
	req := f.request(f.at(14, 0))
	req.ServiceID = 404

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Equal(t, CodeServiceNotFound, ErrorCode(err))
}

func TestExecute_InactiveServiceNotFound(t *testing.T) {
	f := newFixture(t)
	f.store.AddService(domain.Service{ID: 9, DurationMin: 30, IsActive: false})
	req := f.request(f.at(14, 0))
	req.ServiceID = 9

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "no name", mutate: func(r *Request) { r.CustomerName = "  " }},
		{name: "end before start", mutate: func(r *Request) { r.EndAt = ptr.Ptr(r.StartAt.Add(-time.Minute)) }},
		{name: "bad payment option", mutate: func(r *Request) { r.PaymentOption = "cash" }},
		{name: "bad staff", mutate: func(r *Request) { r.StaffID = ptr.Ptr(int64(0)) }},
		{name: "no start", mutate: func(r *Request) { r.StartAt = time.Time{} }},
		{name: "locale too long", mutate: func(r *Request) { r.Locale = "ja-JP-x-salon1" }},
		{name: "email too long", mutate: func(r *Request) {
			r.CustomerEmail = ptr.Ptr(strings.Repeat("a", 310) + "@example.com")
		}},
		{name: "phone too long", mutate: func(r *Request) {
			r.CustomerPhone = ptr.Ptr("+81 " + strings.Repeat("9", 33))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request(f.at(14, 0))
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, CodeInvalidInput, ErrorCode(err))
			assert.Zero(t, f.store.Calls["Create"])
		})
	}
}

func TestExecute_SlotTakenByOverlap(t *testing.T) {
	f := newFixture(t)
	f.store.AddReservation(domain.Reservation{
		ServiceID: serviceID,
		StaffID:   ptr.Ptr(staffID),
		StartAt:   f.at(14, 0),
		EndAt:     f.at(15, 0),
		Status:    domain.StatusPaid,
	})

	// 15:10 с буфером 10 минут начинается в 15:00, до конца буфера существующей записи (15:05)
	_, err := f.uc.Execute(context.Background(), f.request(f.at(15, 10)))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, 0, f.store.Calls["Create"])

	// 15:15 начинается ровно в 15:05, граница не пересечение
	_, err = f.uc.Execute(context.Background(), f.request(f.at(15, 15)))
	assert.NoError(t, err)
}

func TestExecute_RoomConflictBlocksOtherStaff(t *testing.T) {
	f := newFixture(t)
	f.store.AddReservation(domain.Reservation{
		ServiceID: serviceID,
		StaffID:   ptr.Ptr(int64(2)),
		RoomID:    ptr.Ptr(int64(3)),
		StartAt:   f.at(14, 0),
		EndAt:     f.at(15, 0),
		Status:    domain.StatusUnpaid,
	})
	req := f.request(f.at(14, 30))
	req.RoomID = ptr.Ptr(int64(3))

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_CanceledReservationDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.store.AddReservation(domain.Reservation{
		ServiceID: serviceID,
		StaffID:   ptr.Ptr(staffID),
		StartAt:   f.at(14, 0),
		EndAt:     f.at(15, 0),
		Status:    domain.StatusCanceled,
	})

	_, err := f.uc.Execute(context.Background(), f.request(f.at(14, 0)))

	assert.NoError(t, err)
}

// blindRepo пропускает проверку пересечений, чтобы сработал уникальный индекс
type blindRepo struct {
	*memstore.Store
}

func (b blindRepo) GetNonCanceledForResource(context.Context, *int64, *int64, time.Time, time.Time) ([]*domain.Reservation, error) {
	return nil, nil
}

func TestExecute_SlotTakenByUniqueBackstop(t *testing.T) {
	f := newFixture(t)
	f.store.AddReservation(domain.Reservation{
		ServiceID: serviceID,
		StaffID:   ptr.Ptr(staffID),
		StartAt:   f.at(14, 0),
		EndAt:     f.at(15, 0),
		Status:    domain.StatusUnpaid,
	})
	f.uc.reservationRepo = blindRepo{Store: f.store}

	_, err := f.uc.Execute(context.Background(), f.request(f.at(14, 0)))

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, CodeSlotTaken, ErrorCode(err))
	assert.Equal(t, 1, f.store.Calls["Create"])
	assert.Equal(t, []string{CodeSlotTaken}, f.metrics.outcomes)
}

func TestExecute_ConcurrentSameStartExactlyOneWins(t *testing.T) {
	f := newFixture(t)

	const workers = 8
	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		results = make([]error, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, results[i] = f.uc.Execute(context.Background(), f.request(f.at(10, 0)))
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotTaken)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, f.store.Reservations(), 1)
}

func TestExecute_PrepaymentIsPendingWithoutNotification(t *testing.T) {
	f := newFixture(t)
	req := f.request(f.at(14, 0))
	req.ServiceID = prepaidService
	req.PaymentOption = domain.PaymentOnline

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, domain.PaymentOnline, resp.PaymentOption)
	assert.Equal(t, f.at(15, 30), resp.EndAt)
	assert.Empty(t, f.notifier.calls)
}

func TestExecute_NotificationFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("smtp down")

	resp, err := f.uc.Execute(context.Background(), f.request(f.at(14, 0)))

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Len(t, f.notifier.calls, 1)
	assert.Len(t, f.store.Reservations(), 1)
}

func TestExecute_RetriesDuplicateCode(t *testing.T) {
	f := newFixture(t)
	f.store.AddReservation(domain.Reservation{
		Code:      "COT-20250310-BBBB",
		ServiceID: serviceID,
		StartAt:   f.at(18, 0),
		EndAt:     f.at(19, 0),
		Status:    domain.StatusUnpaid,
	})

	codes := []string{"COT-20250310-BBBB", "COT-20250310-BBBB", "COT-20250310-CCCC"}
	attempt := 0
	f.uc.generateCode = func(time.Time, *time.Location) (string, error) {
		code := codes[attempt]
		attempt++
		return code, nil
	}

	resp, err := f.uc.Execute(context.Background(), f.request(f.at(14, 0)))

	require.NoError(t, err)
	assert.Equal(t, "COT-20250310-CCCC", resp.Code)
	assert.Equal(t, 3, f.store.Calls["Create"])
}

func TestExecute_GivesUpAfterDuplicateCodes(t *testing.T) {
	f := newFixture(t)
	f.store.AddReservation(domain.Reservation{
		Code:      "COT-20250310-BBBB",
		ServiceID: serviceID,
		StartAt:   f.at(18, 0),
		EndAt:     f.at(19, 0),
		Status:    domain.StatusUnpaid,
	})
	f.uc.generateCode = func(time.Time, *time.Location) (string, error) {
		return "COT-20250310-BBBB", nil
	}

	_, err := f.uc.Execute(context.Background(), f.request(f.at(14, 0)))

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, ErrorCode(err))
	assert.Equal(t, maxCodeAttempts, f.store.Calls["Create"])
	assert.Equal(t, []string{outcomeInternal}, f.metrics.outcomes)
}

func TestExecute_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.store.FailWith = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), f.request(f.at(14, 0)))

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, ErrorCode(err))
	assert.Empty(t, f.notifier.calls)
}
