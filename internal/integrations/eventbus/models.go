package eventbus

import "time"

// ReservationEvent событие о созданном бронировании
type ReservationEvent struct {
	EventID    string             `json:"event_id"`
	EventType  string             `json:"event_type"`
	OccurredAt time.Time          `json:"occurred_at"`
	Data       ReservationPayload `json:"data"`
}

// ReservationPayload данные бронирования в событии
type ReservationPayload struct {
	ReservationID int64     `json:"reservation_id"`
	Code          string    `json:"code"`
	ServiceID     int64     `json:"service_id"`
	StaffID       *int64    `json:"staff_id,omitempty"`
	RoomID        *int64    `json:"room_id,omitempty"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail *string   `json:"customer_email,omitempty"`
	CustomerPhone *string   `json:"customer_phone,omitempty"`
	Locale        string    `json:"locale"`
}
