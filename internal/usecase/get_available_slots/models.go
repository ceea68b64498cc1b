package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Календарная дата (время суток игнорируется)
	StaffID   *int64    // Конкретный мастер (опционально, если nil - все активные мастера услуги)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time     // Дата в часовом поясе салона
	ServiceID int64         // ID услуги
	Slots     []domain.Slot // Слоты, отсортированные по началу, затем по мастеру
}

// Settings параметры генерации
type Settings struct {
	Location         *time.Location // Часовой пояс салона
	MinLeadTime      time.Duration  // Минимальное время до начала записи
	DatastoreTimeout time.Duration  // Таймаут на все обращения к хранилищу (0 = без таймаута)
}
