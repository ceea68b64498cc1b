package notificationservice

import "time"

// ReservationConfirmedRequest тело запроса на отправку подтверждения бронирования
type ReservationConfirmedRequest struct {
	ReservationID int64     `json:"reservation_id"`
	Code          string    `json:"code"`
	ServiceID     int64     `json:"service_id"`
	StaffID       *int64    `json:"staff_id,omitempty"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail *string   `json:"customer_email,omitempty"`
	CustomerPhone *string   `json:"customer_phone,omitempty"`
	Locale        string    `json:"locale"`
}

// ErrorResponse модель ошибки от NotificationService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
