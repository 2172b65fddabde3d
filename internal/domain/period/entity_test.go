package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriod_Contains(t *testing.T) {
	p := Period{StartDate: date(2025, 6, 1), EndDate: date(2025, 6, 30)}

	assert.True(t, p.Contains(date(2025, 6, 1)), "start boundary is inclusive")
	assert.True(t, p.Contains(date(2025, 6, 30)), "end boundary is inclusive")
	assert.True(t, p.Contains(date(2025, 6, 15)))
	assert.False(t, p.Contains(date(2025, 5, 31)))
	assert.False(t, p.Contains(date(2025, 7, 1)))
}

func TestPeriod_Contains_IgnoresTimeOfDay(t *testing.T) {
	p := Period{StartDate: date(2025, 6, 1), EndDate: date(2025, 6, 30)}

	lastMoment := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	assert.True(t, p.Contains(lastMoment))
}

func TestPeriod_Overlaps(t *testing.T) {
	p := Period{StartDate: date(2025, 6, 10), EndDate: date(2025, 6, 20)}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"identical range", date(2025, 6, 10), date(2025, 6, 20), true},
		{"fully inside", date(2025, 6, 12), date(2025, 6, 18), true},
		{"fully covering", date(2025, 6, 1), date(2025, 6, 30), true},
		{"partial left", date(2025, 6, 1), date(2025, 6, 10), true},
		{"partial right", date(2025, 6, 20), date(2025, 6, 30), true},
		{"touching start boundary", date(2025, 6, 5), date(2025, 6, 10), true},
		{"touching end boundary", date(2025, 6, 20), date(2025, 6, 25), true},
		{"before", date(2025, 6, 1), date(2025, 6, 9), false},
		{"after", date(2025, 6, 21), date(2025, 6, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Overlaps(tt.start, tt.end))
		})
	}
}

func TestPeriod_WorkingDays(t *testing.T) {
	// 2025-06-02 is a Monday, 2025-06-27 a Friday: four full weeks.
	p := Period{StartDate: date(2025, 6, 2), EndDate: date(2025, 6, 27)}
	assert.Equal(t, 20, p.WorkingDays())

	// Full June 2025 picks up Monday the 30th.
	full := Period{StartDate: date(2025, 6, 1), EndDate: date(2025, 6, 30)}
	assert.Equal(t, 21, full.WorkingDays())

	// Weekend-only period has no working days.
	weekend := Period{StartDate: date(2025, 6, 7), EndDate: date(2025, 6, 8)}
	assert.Equal(t, 0, weekend.WorkingDays())

	// Single working day.
	single := Period{StartDate: date(2025, 6, 4), EndDate: date(2025, 6, 4)}
	assert.Equal(t, 1, single.WorkingDays())
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(date(2025, 6, 7)), "Saturday")
	assert.True(t, IsWeekend(date(2025, 6, 8)), "Sunday")
	assert.False(t, IsWeekend(date(2025, 6, 6)), "Friday")
	assert.False(t, IsWeekend(date(2025, 6, 9)), "Monday")
}
