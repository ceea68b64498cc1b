package interval

import "time"

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// New создает интервал из начала и конца
func New(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// Expand расширяет интервал буферами: beforeMin минут до начала и afterMin минут после конца
func Expand(i Interval, beforeMin, afterMin int) Interval {
	return Interval{
		Start: i.Start.Add(-time.Duration(beforeMin) * time.Minute),
		End:   i.End.Add(time.Duration(afterMin) * time.Minute),
	}
}

// Overlaps проверяет пересечение двух интервалов
// Интервалы, которые только касаются друг друга (конец одного = начало другого), НЕ пересекаются
//
// Примеры:
// - 10:00-11:00 и 10:30-11:30 → пересекаются
// - 10:00-11:00 и 11:00-12:00 → НЕ пересекаются (граничат)
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// Contains проверяет, что интервал inner целиком лежит внутри outer
func Contains(outer, inner Interval) bool {
	return !inner.Start.Before(outer.Start) && !inner.End.After(outer.End)
}

// SnapUpToGrid округляет t вверх до ближайшего кратного gridMinutes, отсчитанного от reference
// Если t уже лежит на сетке, возвращается без изменений
func SnapUpToGrid(t time.Time, gridMinutes int, reference time.Time) time.Time {
	if gridMinutes <= 0 {
		return t
	}

	grid := time.Duration(gridMinutes) * time.Minute
	rem := t.Sub(reference) % grid
	switch {
	case rem == 0:
		return t
	case rem > 0:
		return t.Add(grid - rem)
	default:
		// t раньше reference: остаток отрицательный
		return t.Add(-rem)
	}
}

// Epoch опорная точка сетки слотов (Unix epoch)
var Epoch = time.Unix(0, 0).UTC()
