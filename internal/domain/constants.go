package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes   = 15
	DefaultMinHoursBeforeBooking = 2
	DefaultTimezone              = "Asia/Tokyo"
	DefaultLocale                = "ja"
	DefaultPaymentOption         = PaymentOnsite
	ReservationCodePrefix        = "COT"
	ReservationCodeRandomLength  = 4
	ReservationCodeAlphabet      = "BCDFGHJKLMNPQRSTVWXZ23456789"
)

// Business validation constants
const (
	MaxCustomerNameLength  = 200
	MaxCustomerEmailLength = 320
	MaxCustomerPhoneLength = 32
	MaxNotesLength         = 1000
	MaxLocaleLength        = 10
)

// Time format constants
const (
	TimeFormat     = "15:04"
	DateFormat     = "2006-01-02"
	CodeDateFormat = "20060102"
)

// NonCanceledStatuses статусы, при которых бронирование занимает мастера и кабинет
var NonCanceledStatuses = []ReservationStatus{
	StatusPending,
	StatusUnpaid,
	StatusConfirmed,
	StatusPaid,
	StatusCompleted,
	StatusNoShow,
}
