package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createReservation "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createReservation.Response)
	return resp, args.Error(1)
}

func tokyo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	return loc
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body)))
	return rec
}

const validBody = `{
	"serviceId": 7,
	"staffId": 1,
	"start": "2025-03-10T14:00",
	"customerName": "Hanako",
	"customerEmail": "hanako@example.com"
}`

func TestHandle_Created(t *testing.T) {
	loc := tokyo(t)
	uc := &mockUseCase{}
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, loc)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createReservation.Request) bool {
		return req.ServiceID == 7 && *req.StaffID == 1 && req.StartAt.Equal(start) && req.EndAt == nil
	})).Return(&createReservation.Response{
		ID:            10,
		Code:          "COT-20250310-K7QX",
		ServiceID:     7,
		StartAt:       start,
		EndAt:         start.Add(time.Hour),
		Status:        domain.StatusUnpaid,
		PaymentOption: domain.PaymentOnsite,
		CustomerName:  "Hanako",
		Locale:        "ja",
	}, nil)

	rec := post(NewHandler(uc, loc, logger.NewNop()), validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "COT-20250310-K7QX", body.Data["code"])
	assert.Equal(t, "2025-03-10T14:00:00+09:00", body.Data["start"])
	assert.Equal(t, "2025-03-10T15:00:00+09:00", body.Data["end"])
	assert.Equal(t, "unpaid", body.Data["status"])
	uc.AssertExpectations(t)
}

func TestHandle_DomainErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{err: createReservation.ErrContactRequired, wantStatus: http.StatusBadRequest, wantCode: "CONTACT_REQUIRED"},
		{err: createReservation.ErrLeadTime, wantStatus: http.StatusBadRequest, wantCode: "LEAD_TIME"},
		{err: createReservation.ErrServiceNotFound, wantStatus: http.StatusNotFound, wantCode: "SERVICE_NOT_FOUND"},
		{err: createReservation.ErrSlotTaken, wantStatus: http.StatusConflict, wantCode: "SLOT_TAKEN"},
		{err: fmt.Errorf("%w: name", createReservation.ErrInvalidInput), wantStatus: http.StatusBadRequest, wantCode: "INVALID_INPUT"},
		{err: fmt.Errorf("%w: db down", createReservation.ErrInternal), wantStatus: http.StatusInternalServerError, wantCode: handlers.CodeInternal},
		{err: errors.New("unexpected"), wantStatus: http.StatusInternalServerError, wantCode: handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := post(NewHandler(uc, tokyo(t), logger.NewNop()), validBody)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestHandle_BadRequestBeforeUseCase(t *testing.T) {
	tests := map[string]string{
		"empty body":    ``,
		"broken json":   `{"serviceId":`,
		"unknown field": `{"serviceId": 7, "userId": 1}`,
		"bad start":     `{"serviceId": 7, "start": "tomorrow", "customerName": "a"}`,
		"bad end":       `{"serviceId": 7, "start": "2025-03-10T14:00", "end": "later", "customerName": "a"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			uc := &mockUseCase{}

			rec := post(NewHandler(uc, tokyo(t), logger.NewNop()), body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestToUseCaseRequest_ParsesOffsets(t *testing.T) {
	loc := tokyo(t)
	end := "2025-03-10T06:30:00Z"
	req := CreateReservationRequest{Start: "2025-03-10T14:00:00+09:00", End: &end, PaymentOption: "online"}

	got, err := req.ToUseCaseRequest(loc)

	require.NoError(t, err)
	assert.True(t, got.StartAt.Equal(time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC)))
	assert.True(t, got.EndAt.Equal(time.Date(2025, 3, 10, 6, 30, 0, 0, time.UTC)))
	assert.Equal(t, domain.PaymentOnline, got.PaymentOption)
}

func TestHandle_UnparsableStartWinsOverMissingContact(t *testing.T) {
	uc := &mockUseCase{}

	rec := post(NewHandler(uc, tokyo(t), logger.NewNop()), `{"serviceId": 7, "customerName": "Hanako"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, handlers.CodeBadRequest, body.Error.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
