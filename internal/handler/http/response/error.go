package response

import (
	"errors"
	"net/http"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/auth"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/employee"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/ledger"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/payslip"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/period"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/user"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrEmployeeAccessRequired):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, "Username already registered")
	case errors.Is(err, user.ErrAdminNotFound):
		NotFound(w, "Admin not found")

	// Period domain errors
	case errors.Is(err, period.ErrInvalidRange):
		Unprocessable(w, err.Error())
	case errors.Is(err, period.ErrPeriodOverlap):
		Conflict(w, err.Error())
	case errors.Is(err, period.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, period.ErrNoActivePeriod):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, period.ErrPeriodAlreadyLocked):
		Conflict(w, err.Error())

	// Ledger domain errors
	case errors.Is(err, ledger.ErrWeekendAttendance),
		errors.Is(err, ledger.ErrOvertimeInFuture),
		errors.Is(err, ledger.ErrOvertimeExceedsDailyCap):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, ledger.ErrOvertimeAlreadySubmitted):
		Conflict(w, err.Error())

	// Payslip domain errors
	case errors.Is(err, payslip.ErrPayslipNotFound),
		errors.Is(err, payslip.ErrNoPayslipsForPeriod):
		NotFound(w, err.Error())
	case errors.Is(err, payslip.ErrPayslipAlreadyGenerated):
		Conflict(w, err.Error())
	case errors.Is(err, payslip.ErrDegeneratePeriod),
		errors.Is(err, payslip.ErrNoHourlyBasis):
		Unprocessable(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
