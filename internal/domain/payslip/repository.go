package payslip

import "context"

type PayslipRepository interface {
	// Create returns ErrPayslipAlreadyGenerated when a payslip already exists
	// for (employee, period). Both the batch run and the self-service path
	// write through this single uniqueness-guarded insert.
	Create(ctx context.Context, p Payslip) (Payslip, error)
	GetByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) (Payslip, error)
	ListByPeriod(ctx context.Context, periodID string) ([]Payslip, error)
}
