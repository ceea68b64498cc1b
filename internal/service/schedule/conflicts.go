package schedule

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/interval"
)

// PaddedCandidate расширяет интервал услуги её буферами
func PaddedCandidate(candidate interval.Interval, service *domain.Service) interval.Interval {
	return interval.Expand(candidate, service.BufferBeforeMin, service.BufferAfterMin)
}

// HasConflict проверяет пересечение уже расширенного кандидата с бронированиями,
// каждое из которых расширяется своими буферами. Отмененные бронирования не учитываются.
func HasConflict(padded interval.Interval, reservations []*domain.Reservation) bool {
	for _, r := range reservations {
		if r == nil || !r.IsActive() {
			continue
		}
		if interval.Overlaps(padded, r.Padded()) {
			return true
		}
	}
	return false
}
