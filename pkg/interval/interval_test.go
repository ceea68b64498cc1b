package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestExpand(t *testing.T) {
	got := Expand(New(at(10, 15), at(11, 15)), 10, 5)

	assert.Equal(t, at(10, 5), got.Start)
	assert.Equal(t, at(11, 20), got.End)
}

func TestExpand_ZeroBuffers(t *testing.T) {
	i := New(at(9, 0), at(9, 30))
	assert.Equal(t, i, Expand(i, 0, 0))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{"partial overlap", New(at(10, 0), at(11, 0)), New(at(10, 30), at(11, 30)), true},
		{"inner interval", New(at(10, 0), at(12, 0)), New(at(10, 30), at(11, 0)), true},
		{"identical", New(at(10, 0), at(11, 0)), New(at(10, 0), at(11, 0)), true},
		{"touching end to start", New(at(10, 0), at(11, 0)), New(at(11, 0), at(12, 0)), false},
		{"touching start to end", New(at(11, 0), at(12, 0)), New(at(10, 0), at(11, 0)), false},
		{"disjoint", New(at(8, 0), at(9, 0)), New(at(10, 0), at(11, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a))
		})
	}
}

func TestContains(t *testing.T) {
	outer := New(at(10, 0), at(20, 0))

	assert.True(t, Contains(outer, New(at(10, 0), at(20, 0))))
	assert.True(t, Contains(outer, New(at(10, 5), at(11, 20))))
	assert.False(t, Contains(outer, New(at(9, 55), at(11, 0))))
	assert.False(t, Contains(outer, New(at(19, 0), at(20, 5))))
}

func TestSnapUpToGrid(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		grid int
		want time.Time
	}{
		{"already on grid", at(10, 15), 15, at(10, 15)},
		{"rounds up", at(10, 10), 15, at(10, 15)},
		{"one minute past", at(10, 16), 15, at(10, 30)},
		{"rounds into next hour", at(10, 50), 20, at(11, 0)},
		{"seconds are rounded up", at(10, 0).Add(time.Second), 5, at(10, 5)},
		{"non positive grid is identity", at(10, 7), 0, at(10, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(SnapUpToGrid(tt.in, tt.grid, Epoch)),
				"want %s, got %s", tt.want, SnapUpToGrid(tt.in, tt.grid, Epoch))
		})
	}
}

func TestSnapUpToGrid_AnchoredToReference(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	opening := time.Date(2026, 3, 10, 10, 3, 0, 0, tokyo)

	// Сетка 7 минут от epoch не совпадает с 10:03 локального времени
	got := SnapUpToGrid(opening, 7, Epoch)

	assert.False(t, got.Before(opening))
	assert.Less(t, got.Sub(opening), 7*time.Minute)
	assert.Zero(t, got.Sub(Epoch)%(7*time.Minute))
}

func TestSnapUpToGrid_BeforeReference(t *testing.T) {
	ref := at(12, 0)

	assert.Equal(t, at(12, 0), SnapUpToGrid(at(11, 50), 15, ref))
	assert.Equal(t, at(11, 45), SnapUpToGrid(at(11, 40), 15, ref))
}
