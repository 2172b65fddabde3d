package ledger

import "context"

// Duplicate detection for attendance and overtime rides the storage-level
// UNIQUE(employee_id, date) index: repositories insert and classify the
// violation instead of checking first, which closes the check-then-act race
// between concurrent submissions.

type AttendanceRepository interface {
	// Create returns ErrAttendanceDuplicate when a row already exists for
	// (employee, date). Callers decide whether that is an error.
	Create(ctx context.Context, rec AttendanceRecord) (AttendanceRecord, error)
	CountByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) (int, error)
	ListByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) ([]AttendanceRecord, error)
}

type OvertimeRepository interface {
	// Create returns ErrOvertimeAlreadySubmitted on a duplicate
	// (employee, date) pair.
	Create(ctx context.Context, rec OvertimeRecord) (OvertimeRecord, error)
	ListByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) ([]OvertimeRecord, error)
}

type ReimbursementRepository interface {
	Create(ctx context.Context, claim ReimbursementClaim) (ReimbursementClaim, error)
	ListByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) ([]ReimbursementClaim, error)
}
