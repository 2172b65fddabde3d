package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/payslip"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/period"
)

// CalcConfig carries the calculation constants. It is built once from the
// application config and passed in explicitly; the calculator never reads
// ambient process state.
type CalcConfig struct {
	OvertimeMultiplier decimal.Decimal
	WorkdayHours       int
}

// Snapshot is one employee's ledger restricted to a single period.
type Snapshot struct {
	AttendanceDays int
	OvertimeHours  []decimal.Decimal
	Reimbursements []decimal.Decimal
}

// Figures is the computed payslip. All monetary figures are rounded to two
// decimal places at this boundary only; intermediate values keep full
// precision so rounding error does not compound.
type Figures struct {
	ProratedBaseSalary decimal.Decimal
	AttendanceDays     int
	OvertimeHours      decimal.Decimal
	OvertimePay        decimal.Decimal
	ReimbursementTotal decimal.Decimal
	TotalPay           decimal.Decimal
}

// Calculate derives payslip figures from a monthly base salary and a ledger
// snapshot. It is a pure function: same inputs, same figures.
//
// Proration scales the base salary by attendance over the period's business
// days. Overtime is paid at the employee's derived hourly rate times the
// configured multiplier. Both divisions are guarded: a period without
// business days fails with ErrDegeneratePeriod, an employee without
// attendance fails with ErrNoHourlyBasis. Neither case may ever reach a
// stored payslip as a zero or garbage figure.
func Calculate(monthlySalary decimal.Decimal, p period.Period, snap Snapshot, cfg CalcConfig) (Figures, error) {
	workingDays := p.WorkingDays()
	if workingDays == 0 {
		return Figures{}, payslip.ErrDegeneratePeriod
	}
	if snap.AttendanceDays == 0 {
		return Figures{}, payslip.ErrNoHourlyBasis
	}

	attendanceDays := decimal.NewFromInt(int64(snap.AttendanceDays))

	attendanceFactor := attendanceDays.Div(decimal.NewFromInt(int64(workingDays)))
	proratedBase := monthlySalary.Mul(attendanceFactor)

	workedHours := attendanceDays.Mul(decimal.NewFromInt(int64(cfg.WorkdayHours)))
	hourlyRate := monthlySalary.Div(workedHours)

	totalOvertimeHours := decimal.Zero
	for _, h := range snap.OvertimeHours {
		totalOvertimeHours = totalOvertimeHours.Add(h)
	}
	overtimePay := totalOvertimeHours.Mul(hourlyRate).Mul(cfg.OvertimeMultiplier)

	reimbursementTotal := decimal.Zero
	for _, amount := range snap.Reimbursements {
		reimbursementTotal = reimbursementTotal.Add(amount)
	}

	// Round each figure once at the output boundary. The total is the sum of
	// the rounded components, so stored payslips always satisfy
	// total_pay == prorated_base + overtime_pay + reimbursement_total.
	figures := Figures{
		ProratedBaseSalary: proratedBase.Round(2),
		AttendanceDays:     snap.AttendanceDays,
		OvertimeHours:      totalOvertimeHours.Round(2),
		OvertimePay:        overtimePay.Round(2),
		ReimbursementTotal: reimbursementTotal.Round(2),
	}
	figures.TotalPay = figures.ProratedBaseSalary.Add(figures.OvertimePay).Add(figures.ReimbursementTotal)

	return figures, nil
}
