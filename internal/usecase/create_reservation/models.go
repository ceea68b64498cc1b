package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID     int64                // ID услуги
	StaffID       *int64               // Мастер (опционально)
	RoomID        *int64               // Кабинет (опционально)
	StartAt       time.Time            // Начало услуги
	EndAt         *time.Time           // Явный конец (опционально, иначе начало + длительность услуги)
	CustomerName  string               // Имя клиента
	CustomerEmail *string              // Email (нужен email или телефон)
	CustomerPhone *string              // Телефон
	Locale        string               // Язык уведомлений (по умолчанию ja)
	Notes         *string              // Заметки (опционально)
	PaymentOption domain.PaymentOption // Способ оплаты (по умолчанию onsite)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	Code          string
	ServiceID     int64
	StaffID       *int64
	RoomID        *int64
	StartAt       time.Time
	EndAt         time.Time
	Status        domain.ReservationStatus
	PaymentOption domain.PaymentOption

	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string
	Locale        string
	Notes         *string

	// Денормализованные данные
	ServicePrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Settings параметры создания бронирований
type Settings struct {
	Location         *time.Location // Часовой пояс салона (дата в коде бронирования)
	MinLeadTime      time.Duration  // Минимальное время до начала записи
	DatastoreTimeout time.Duration  // Таймаут на обращения к хранилищу (0 = без таймаута)
	NotifyTimeout    time.Duration  // Таймаут на отправку подтверждения (0 = без таймаута)
}

func newResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:            r.ID,
		Code:          r.Code,
		ServiceID:     r.ServiceID,
		StaffID:       r.StaffID,
		RoomID:        r.RoomID,
		StartAt:       r.StartAt,
		EndAt:         r.EndAt,
		Status:        r.Status,
		PaymentOption: r.PaymentOption,
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
