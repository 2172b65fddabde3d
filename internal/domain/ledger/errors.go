package ledger

import "errors"

var (
	ErrWeekendAttendance = errors.New("attendance submission is not allowed on weekends")

	// ErrAttendanceDuplicate signals the idempotent path: the day is already
	// recorded and no new row was written.
	ErrAttendanceDuplicate = errors.New("attendance already recorded for this date")

	// Overtime duplicates are conflicts, unlike attendance duplicates which
	// are acknowledged idempotently. Attendance is expected to be submitted
	// redundantly (repeated check-ins); overtime is a one-time claim.
	ErrOvertimeAlreadySubmitted = errors.New("overtime already submitted for this date")
	ErrOvertimeInFuture         = errors.New("cannot submit overtime for future dates")
	ErrOvertimeExceedsDailyCap  = errors.New("overtime cannot exceed 3 hours per day")
)
