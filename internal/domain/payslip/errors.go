package payslip

import "errors"

var (
	ErrPayslipNotFound         = errors.New("payslip not found")
	ErrPayslipAlreadyGenerated = errors.New("payslip already generated for this period")
	ErrNoPayslipsForPeriod     = errors.New("no payslips found for this period")

	// Computation errors. Either aborts the enclosing run entirely; a payslip
	// must never be stored with figures derived from a division by zero.
	ErrDegeneratePeriod = errors.New("period contains no working days")
	ErrNoHourlyBasis    = errors.New("employee has no attendance to derive an hourly rate from")
)
