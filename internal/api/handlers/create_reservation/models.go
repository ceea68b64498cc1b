package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_reservation"
)

// localDateTimeFormat время без смещения трактуется в часовом поясе салона
const localDateTimeFormat = "2006-01-02T15:04"

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ServiceID     int64   `json:"serviceId"`
	StaffID       *int64  `json:"staffId,omitempty"`
	RoomID        *int64  `json:"roomId,omitempty"`
	Start         string  `json:"start"`         // "2025-03-10T14:00:00+09:00" или "2025-03-10T14:00"
	End           *string `json:"end,omitempty"` // опционально
	CustomerName  string  `json:"customerName"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Locale        string  `json:"locale,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	PaymentOption string  `json:"paymentOption,omitempty"` // online | onsite
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(loc *time.Location) (*createReservation.Request, error) {
	start, err := parseInstant(r.Start, loc)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	req := &createReservation.Request{
		ServiceID:     r.ServiceID,
		StaffID:       r.StaffID,
		RoomID:        r.RoomID,
		StartAt:       start,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Locale:        r.Locale,
		Notes:         r.Notes,
		PaymentOption: domain.PaymentOption(r.PaymentOption),
	}

	if r.End != nil {
		end, err := parseInstant(*r.End, loc)
		if err != nil {
			return nil, fmt.Errorf("end: %w", err)
		}
		req.EndAt = &end
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response, loc *time.Location) *models.ReservationResponse {
	return models.FromDomainReservation(&domain.Reservation{
		ID:            resp.ID,
		Code:          resp.Code,
		ServiceID:     resp.ServiceID,
		StaffID:       resp.StaffID,
		RoomID:        resp.RoomID,
		StartAt:       resp.StartAt,
		EndAt:         resp.EndAt,
		Status:        resp.Status,
		PaymentOption: resp.PaymentOption,
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		CustomerPhone: resp.CustomerPhone,
		Locale:        resp.Locale,
		Notes:         resp.Notes,
		ServicePrice:  resp.ServicePrice,
		CreatedAt:     resp.CreatedAt,
		UpdatedAt:     resp.UpdatedAt,
	}, loc)
}

func parseInstant(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation(localDateTimeFormat, value, loc)
}
