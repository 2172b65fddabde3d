package ledger

import (
	"context"
	"time"

	"github.com/paywise-hr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AttendanceResponse struct {
	Date            string `json:"date"`
	PeriodID        string `json:"period_id"`
	AlreadyRecorded bool   `json:"already_recorded"`
}

type SubmitOvertimeRequest struct {
	Date  string          `json:"date"`
	Hours decimal.Decimal `json:"hours"`

	date time.Time
}

func (r *SubmitOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if date, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else {
		r.date = date
	}

	if !r.Hours.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedDate returns the parsed date. Validate must have been called first.
func (r *SubmitOvertimeRequest) ParsedDate() time.Time {
	return r.date
}

type OvertimeResponse struct {
	Date     string          `json:"date"`
	Hours    decimal.Decimal `json:"hours"`
	PeriodID string          `json:"period_id"`
}

type SubmitReimbursementRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        *string         `json:"date,omitempty"`
	Description *string         `json:"description,omitempty"`

	date time.Time
}

func (r *SubmitReimbursementRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be greater than zero",
		})
	}

	// Date defaults to today when omitted.
	if r.Date == nil || validator.IsEmpty(*r.Date) {
		r.date = time.Now().UTC()
	} else if date, ok := validator.IsValidDate(*r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else {
		r.date = date
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedDate returns the claim date. Validate must have been called first.
func (r *SubmitReimbursementRequest) ParsedDate() time.Time {
	return r.date
}

type ReimbursementResponse struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
	PeriodID    string          `json:"period_id"`
}

type LedgerEntriesResponse struct {
	PeriodID       string                  `json:"period_id"`
	Attendance     []AttendanceResponse    `json:"attendance"`
	Overtime       []OvertimeResponse      `json:"overtime"`
	Reimbursements []ReimbursementResponse `json:"reimbursements"`
}

type LedgerService interface {
	SubmitAttendance(ctx context.Context) (AttendanceResponse, error)
	SubmitOvertime(ctx context.Context, req SubmitOvertimeRequest) (OvertimeResponse, error)
	SubmitReimbursement(ctx context.Context, req SubmitReimbursementRequest) (ReimbursementResponse, error)
	ListMine(ctx context.Context, periodID string) (LedgerEntriesResponse, error)
}
