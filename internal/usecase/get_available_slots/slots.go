package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-SalonBooking/pkg/interval"
)

// StaffSchedule всё, что нужно для генерации слотов одного мастера
type StaffSchedule struct {
	StaffID         int64
	SlotIntervalMin int
	Windows         []domain.Window       // Рабочие окна (смены, обрезанные окном салона)
	Reservations    []*domain.Reservation // Неотмененные бронирования мастера
}

// GenerateSlots обходит сетку каждого рабочего окна и возвращает подходящие слоты
//
// Кандидат выдается, если интервал услуги вместе с буферами целиком лежит в окне,
// не пересекается ни с одним бронированием (расширенным своими буферами)
// и начало расширенного интервала не раньше earliestStart.
// Сетка привязана к эпохе Unix, а не к началу окна.
func GenerateSlots(service *domain.Service, schedules []StaffSchedule, earliestStart time.Time) []domain.Slot {
	result := make([]domain.Slot, 0)
	if service == nil || !service.IsActive {
		return result
	}

	for _, s := range schedules {
		for _, window := range s.Windows {
			result = append(result, walkWindow(service, s, window, earliestStart)...)
		}
	}

	return dedupeAndSort(result)
}

func walkWindow(service *domain.Service, s StaffSchedule, window domain.Window, earliestStart time.Time) []domain.Slot {
	step := s.SlotIntervalMin
	if step <= 0 {
		step = domain.DefaultSlotIntervalMinutes
	}
	stepDuration := time.Duration(step) * time.Minute
	duration := time.Duration(service.DurationMin) * time.Minute

	slots := make([]domain.Slot, 0)

	// Буфер перед первой записью дня тоже соблюдается
	firstStart := window.Start.Add(time.Duration(service.BufferBeforeMin) * time.Minute)
	cursor := interval.SnapUpToGrid(firstStart, step, interval.Epoch)

	for cursor.Before(window.End) {
		serviceEnd := cursor.Add(duration)
		padded := schedule.PaddedCandidate(interval.New(cursor, serviceEnd), service)

		// Кандидат с буферами вышел за окно: дальше по сетке только позже
		if !interval.Contains(window, padded) {
			break
		}

		// Конфликт или слишком раннее время не прерывают обход: следующий кандидат может подойти
		if !schedule.HasConflict(padded, s.Reservations) && !padded.Start.Before(earliestStart) {
			slots = append(slots, domain.Slot{
				StaffID:     s.StaffID,
				Start:       cursor,
				End:         serviceEnd,
				PaddedStart: padded.Start,
			})
		}

		cursor = cursor.Add(stepDuration)
	}

	return slots
}

// FilterByLeadTime оставляет слоты, чье начало с буфером не раньше earliestStart
// Нужен для списков из кэша: они посчитаны для более раннего момента
func FilterByLeadTime(slots []domain.Slot, earliestStart time.Time) []domain.Slot {
	result := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if !slot.PaddedStart.Before(earliestStart) {
			result = append(result, slot)
		}
	}
	return result
}

// dedupeAndSort убирает повторы (мастер, начало) и сортирует по началу, затем по мастеру
func dedupeAndSort(slots []domain.Slot) []domain.Slot {
	type key struct {
		staffID int64
		start   int64
	}

	seen := make(map[key]struct{}, len(slots))
	result := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		k := key{staffID: slot.StaffID, start: slot.Start.UnixNano()}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, slot)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Start.Equal(result[j].Start) {
			return result[i].Start.Before(result[j].Start)
		}
		return result[i].StaffID < result[j].StaffID
	})

	return result
}
