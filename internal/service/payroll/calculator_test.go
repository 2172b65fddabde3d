package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/payslip"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/period"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func defaultConfig() CalcConfig {
	return CalcConfig{
		OvertimeMultiplier: decimal.NewFromInt(2),
		WorkdayHours:       8,
	}
}

// June 2025: Sundays 1/8/15/22/29, Saturdays 7/14/21/28 → 21 business days.
// A period trimmed to 2025-06-02..2025-06-27 has exactly 20.
func june20DayPeriod() period.Period {
	return period.Period{StartDate: date(2025, time.June, 2), EndDate: date(2025, time.June, 27)}
}

func TestWorkingDays(t *testing.T) {
	assert.Equal(t, 20, june20DayPeriod().WorkingDays())

	full := period.Period{StartDate: date(2025, time.June, 1), EndDate: date(2025, time.June, 30)}
	assert.Equal(t, 21, full.WorkingDays())

	// A single weekday counts itself.
	oneDay := period.Period{StartDate: date(2025, time.June, 2), EndDate: date(2025, time.June, 2)}
	assert.Equal(t, 1, oneDay.WorkingDays())

	// A weekend-only period has no business days.
	weekend := period.Period{StartDate: date(2025, time.June, 7), EndDate: date(2025, time.June, 8)}
	assert.Equal(t, 0, weekend.WorkingDays())
}

func TestCalculate_FullAttendanceProration(t *testing.T) {
	snap := Snapshot{AttendanceDays: 20}

	figures, err := Calculate(decimal.NewFromInt(3200), june20DayPeriod(), snap, defaultConfig())
	require.NoError(t, err)

	assert.True(t, figures.ProratedBaseSalary.Equal(decimal.RequireFromString("3200.00")),
		"got %s", figures.ProratedBaseSalary)
	assert.Equal(t, 20, figures.AttendanceDays)
	assert.True(t, figures.TotalPay.Equal(decimal.RequireFromString("3200.00")))
}

func TestCalculate_HalfAttendanceProration(t *testing.T) {
	snap := Snapshot{AttendanceDays: 10}

	figures, err := Calculate(decimal.NewFromInt(3200), june20DayPeriod(), snap, defaultConfig())
	require.NoError(t, err)

	assert.True(t, figures.ProratedBaseSalary.Equal(decimal.RequireFromString("1600.00")),
		"got %s", figures.ProratedBaseSalary)
}

func TestCalculate_OvertimePay(t *testing.T) {
	// 20 attendance days × 8h = 160 worked hours; 3200 / 160 = 20.00/h.
	// 5 overtime hours × 20.00 × 2 = 200.00.
	snap := Snapshot{
		AttendanceDays: 20,
		OvertimeHours: []decimal.Decimal{
			decimal.NewFromInt(2),
			decimal.NewFromInt(3),
		},
	}

	figures, err := Calculate(decimal.NewFromInt(3200), june20DayPeriod(), snap, defaultConfig())
	require.NoError(t, err)

	assert.True(t, figures.OvertimeHours.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, figures.OvertimePay.Equal(decimal.RequireFromString("200.00")),
		"got %s", figures.OvertimePay)
}

func TestCalculate_EndToEndScenario(t *testing.T) {
	// Full attendance, 2h+3h overtime, 100.00 reimbursement.
	snap := Snapshot{
		AttendanceDays: 20,
		OvertimeHours: []decimal.Decimal{
			decimal.NewFromInt(2),
			decimal.NewFromInt(3),
		},
		Reimbursements: []decimal.Decimal{decimal.NewFromInt(100)},
	}

	figures, err := Calculate(decimal.NewFromInt(3200), june20DayPeriod(), snap, defaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 20, figures.AttendanceDays)
	assert.True(t, figures.ProratedBaseSalary.Equal(decimal.RequireFromString("3200.00")))
	assert.True(t, figures.OvertimePay.Equal(decimal.RequireFromString("200.00")))
	assert.True(t, figures.ReimbursementTotal.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, figures.TotalPay.Equal(decimal.RequireFromString("3500.00")),
		"got %s", figures.TotalPay)
}

func TestCalculate_AggregateTotalProperty(t *testing.T) {
	// Awkward attendance ratios produce repeating decimals; the stored total
	// must still equal the sum of the rounded components.
	cases := []struct {
		salary     string
		attendance int
		overtime   []string
		claims     []string
	}{
		{"3200", 7, []string{"1.5"}, []string{"33.33"}},
		{"2999.99", 13, []string{"0.25", "3"}, nil},
		{"1234.56", 19, nil, []string{"0.01", "99.99"}},
	}

	for _, tc := range cases {
		snap := Snapshot{AttendanceDays: tc.attendance}
		for _, h := range tc.overtime {
			snap.OvertimeHours = append(snap.OvertimeHours, decimal.RequireFromString(h))
		}
		for _, a := range tc.claims {
			snap.Reimbursements = append(snap.Reimbursements, decimal.RequireFromString(a))
		}

		figures, err := Calculate(decimal.RequireFromString(tc.salary), june20DayPeriod(), snap, defaultConfig())
		require.NoError(t, err)

		sum := figures.ProratedBaseSalary.Add(figures.OvertimePay).Add(figures.ReimbursementTotal)
		assert.True(t, figures.TotalPay.Equal(sum), "salary %s: total %s != sum %s",
			tc.salary, figures.TotalPay, sum)
		assert.True(t, figures.TotalPay.Equal(figures.TotalPay.Round(2)))
	}
}

func TestCalculate_DegeneratePeriod(t *testing.T) {
	weekend := period.Period{StartDate: date(2025, time.June, 7), EndDate: date(2025, time.June, 8)}
	snap := Snapshot{AttendanceDays: 0}

	_, err := Calculate(decimal.NewFromInt(3200), weekend, snap, defaultConfig())
	assert.ErrorIs(t, err, payslip.ErrDegeneratePeriod)
}

func TestCalculate_NoHourlyBasis(t *testing.T) {
	snap := Snapshot{AttendanceDays: 0}

	_, err := Calculate(decimal.NewFromInt(3200), june20DayPeriod(), snap, defaultConfig())
	assert.ErrorIs(t, err, payslip.ErrNoHourlyBasis)
}

func TestCalculate_RoundsAtBoundaryOnly(t *testing.T) {
	// 3 of 20 days → factor 0.15; salary 1000.01 → 150.0015, stored 150.00.
	snap := Snapshot{AttendanceDays: 3}

	figures, err := Calculate(decimal.RequireFromString("1000.01"), june20DayPeriod(), snap, defaultConfig())
	require.NoError(t, err)

	assert.True(t, figures.ProratedBaseSalary.Equal(decimal.RequireFromString("150.00")),
		"got %s", figures.ProratedBaseSalary)
}
