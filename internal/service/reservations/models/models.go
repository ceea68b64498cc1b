package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID            int64   `json:"id"`
	Code          string  `json:"code"`
	ServiceID     int64   `json:"serviceId"`
	StaffID       *int64  `json:"staffId,omitempty"`
	RoomID        *int64  `json:"roomId,omitempty"`
	Start         string  `json:"start"` // RFC 3339 в часовом поясе салона
	End           string  `json:"end"`
	Status        string  `json:"status"`
	PaymentOption string  `json:"paymentOption"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Locale        string  `json:"locale"`
	Notes         *string `json:"notes,omitempty"`

	// Денормализованные данные
	ServicePrice float64 `json:"servicePrice"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation, loc *time.Location) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:            r.ID,
		Code:          r.Code,
		ServiceID:     r.ServiceID,
		StaffID:       r.StaffID,
		RoomID:        r.RoomID,
		Start:         r.StartAt.In(loc).Format(time.RFC3339),
		End:           r.EndAt.In(loc).Format(time.RFC3339),
		Status:        string(r.Status),
		PaymentOption: string(r.PaymentOption),
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Locale:        r.Locale,
		Notes:         r.Notes,
		ServicePrice:  r.ServicePrice,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
