package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/interval"
)

func TestHasConflict(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC) }
	service := &domain.Service{DurationMin: 60, BufferBeforeMin: 10, BufferAfterMin: 5}

	// 14:00-15:00, с буферами 13:50-15:05
	existing := []*domain.Reservation{{
		StartAt:         at(14, 0),
		EndAt:           at(15, 0),
		Status:          domain.StatusUnpaid,
		BufferBeforeMin: 10,
		BufferAfterMin:  5,
	}}

	tests := []struct {
		name     string
		start    time.Time
		expected bool
	}{
		{name: "reaches into buffer before", start: at(12, 50), expected: true},
		{name: "touches padded start", start: at(12, 45), expected: false},
		{name: "starts inside buffer after", start: at(15, 10), expected: true},
		{name: "touches padded end", start: at(15, 15), expected: false},
		{name: "same start", start: at(14, 0), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			padded := PaddedCandidate(interval.New(tt.start, tt.start.Add(time.Hour)), service)
			assert.Equal(t, tt.expected, HasConflict(padded, existing))
		})
	}
}

func TestHasConflict_IgnoresCanceled(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC) }
	canceled := []*domain.Reservation{{StartAt: at(14, 0), EndAt: at(15, 0), Status: domain.StatusCanceled}}

	assert.False(t, HasConflict(interval.New(at(14, 0), at(15, 0)), canceled))
	assert.False(t, HasConflict(interval.New(at(14, 0), at(15, 0)), nil))
}
