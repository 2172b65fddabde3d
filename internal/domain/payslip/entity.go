package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payslip is the immutable computed compensation result for one employee in
// one period. It is written exactly once, either by the batch payroll run or
// by the employee's own generation request; the UNIQUE(employee_id,
// period_id) constraint arbitrates between the two. No update path exists.
type Payslip struct {
	ID                 string
	EmployeeID         string
	PeriodID           string
	ProratedBaseSalary decimal.Decimal
	AttendanceDays     int
	OvertimeHours      decimal.Decimal
	OvertimePay        decimal.Decimal
	ReimbursementTotal decimal.Decimal
	TotalPay           decimal.Decimal
	CreatedBy          string
	UpdatedBy          string
	RequestIP          string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	EmployeeName *string
}
