package create_reservation

import "errors"

var (
	// ErrContactRequired возвращается, когда не указан ни email, ни телефон
	ErrContactRequired = errors.New("create_reservation: email or phone is required")

	// ErrLeadTime возвращается, когда до начала записи осталось меньше минимального времени
	ErrLeadTime = errors.New("create_reservation: start is too soon")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_reservation: service not found")

	// ErrSlotTaken возвращается, когда мастер или кабинет уже заняты
	ErrSlotTaken = errors.New("create_reservation: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// Коды ошибок, которые видит клиент
const (
	CodeContactRequired = "CONTACT_REQUIRED"
	CodeLeadTime        = "LEAD_TIME"
	CodeServiceNotFound = "SERVICE_NOT_FOUND"
	CodeSlotTaken       = "SLOT_TAKEN"
	CodeInvalidInput    = "INVALID_INPUT"
)

// ErrorCode возвращает код доменной ошибки или пустую строку для инфраструктурных
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrContactRequired):
		return CodeContactRequired
	case errors.Is(err, ErrLeadTime):
		return CodeLeadTime
	case errors.Is(err, ErrServiceNotFound):
		return CodeServiceNotFound
	case errors.Is(err, ErrSlotTaken):
		return CodeSlotTaken
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	default:
		return ""
	}
}
