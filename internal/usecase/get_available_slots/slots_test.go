package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/interval"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

func utcAt(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func TestGenerateSlots_InactiveService(t *testing.T) {
	service := &domain.Service{DurationMin: 30, IsActive: false}
	schedules := []StaffSchedule{{StaffID: 1, SlotIntervalMin: 15, Windows: []domain.Window{interval.New(utcAt(10, 0), utcAt(12, 0))}}}

	assert.Empty(t, GenerateSlots(service, schedules, time.Time{}))
}

func TestGenerateSlots_WindowTooShort(t *testing.T) {
	service := &domain.Service{DurationMin: 60, BufferBeforeMin: 10, BufferAfterMin: 5, IsActive: true}
	schedules := []StaffSchedule{{StaffID: 1, SlotIntervalMin: 15, Windows: []domain.Window{interval.New(utcAt(10, 0), utcAt(11, 0))}}}

	assert.Empty(t, GenerateSlots(service, schedules, time.Time{}))
}

func TestGenerateSlots_NonPositiveStepFallsBack(t *testing.T) {
	service := &domain.Service{DurationMin: 30, IsActive: true}
	schedules := []StaffSchedule{{StaffID: 1, SlotIntervalMin: 0, Windows: []domain.Window{interval.New(utcAt(10, 0), utcAt(11, 0))}}}

	slots := GenerateSlots(service, schedules, time.Time{})

	assert.Equal(t, []time.Time{utcAt(10, 0), utcAt(10, 15), utcAt(10, 30)}, starts(slots))
}

func TestGenerateSlots_SkipsWithoutBreaking(t *testing.T) {
	service := &domain.Service{DurationMin: 30, IsActive: true}
	staffID := ptr.Ptr(int64(1))
	schedules := []StaffSchedule{{
		StaffID:         1,
		SlotIntervalMin: 30,
		Windows:         []domain.Window{interval.New(utcAt(10, 0), utcAt(13, 0))},
		Reservations: []*domain.Reservation{
			{StaffID: staffID, StartAt: utcAt(10, 30), EndAt: utcAt(11, 0), Status: domain.StatusPaid},
		},
	}}

	// 10:00 слишком рано, 10:30 занято, дальше свободно
	slots := GenerateSlots(service, schedules, utcAt(10, 15))

	assert.Equal(t, []time.Time{utcAt(11, 0), utcAt(11, 30), utcAt(12, 0), utcAt(12, 30)}, starts(slots))
}

func TestGenerateSlots_DedupesAndSorts(t *testing.T) {
	service := &domain.Service{DurationMin: 30, IsActive: true}
	window := interval.New(utcAt(10, 0), utcAt(11, 0))
	schedules := []StaffSchedule{
		{StaffID: 2, SlotIntervalMin: 30, Windows: []domain.Window{window}},
		{StaffID: 1, SlotIntervalMin: 30, Windows: []domain.Window{window, window}},
	}

	slots := GenerateSlots(service, schedules, time.Time{})

	assert.Equal(t, []domain.Slot{
		{StaffID: 1, Start: utcAt(10, 0), End: utcAt(10, 30), PaddedStart: utcAt(10, 0)},
		{StaffID: 2, Start: utcAt(10, 0), End: utcAt(10, 30), PaddedStart: utcAt(10, 0)},
		{StaffID: 1, Start: utcAt(10, 30), End: utcAt(11, 0), PaddedStart: utcAt(10, 30)},
		{StaffID: 2, Start: utcAt(10, 30), End: utcAt(11, 0), PaddedStart: utcAt(10, 30)},
	}, slots)
}

func TestGenerateSlots_GridAnchoredToEpoch(t *testing.T) {
	service := &domain.Service{DurationMin: 30, IsActive: true}
	schedules := []StaffSchedule{{StaffID: 1, SlotIntervalMin: 15, Windows: []domain.Window{interval.New(utcAt(10, 3), utcAt(11, 0))}}}

	slots := GenerateSlots(service, schedules, time.Time{})

	assert.Equal(t, []time.Time{utcAt(10, 15), utcAt(10, 30)}, starts(slots))
}

func TestFilterByLeadTime(t *testing.T) {
	slots := []domain.Slot{
		{StaffID: 1, Start: utcAt(10, 15), PaddedStart: utcAt(10, 5)},
		{StaffID: 1, Start: utcAt(10, 30), PaddedStart: utcAt(10, 20)},
		{StaffID: 1, Start: utcAt(10, 45), PaddedStart: utcAt(10, 35)},
	}

	got := FilterByLeadTime(slots, utcAt(10, 20))

	assert.Equal(t, []time.Time{utcAt(10, 30), utcAt(10, 45)}, starts(got))
	assert.Empty(t, FilterByLeadTime(nil, utcAt(10, 20)))
}

func starts(slots []domain.Slot) []time.Time {
	result := make([]time.Time, len(slots))
	for i, s := range slots {
		result[i] = s.Start
	}
	return result
}
