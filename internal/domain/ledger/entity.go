package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// The ledger is append-only: attendance, overtime and reimbursement rows are
// never updated or deleted once written. Every row is stamped with the
// covering period, the submitting actor and the request origin.

type AttendanceRecord struct {
	ID         string
	EmployeeID string
	Date       time.Time
	PeriodID   string
	CreatedBy  string
	UpdatedBy  string
	RequestIP  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type OvertimeRecord struct {
	ID         string
	EmployeeID string
	Date       time.Time
	PeriodID   string
	Hours      decimal.Decimal
	CreatedBy  string
	UpdatedBy  string
	RequestIP  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ReimbursementClaim struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	PeriodID    string
	Amount      decimal.Decimal
	Description *string
	CreatedBy   string
	UpdatedBy   string
	RequestIP   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
