package period

import "errors"

var (
	ErrInvalidRange        = errors.New("start date must not be after end date")
	ErrPeriodOverlap       = errors.New("period overlaps with an existing payroll period")
	ErrPeriodNotFound      = errors.New("payroll period not found")
	ErrNoActivePeriod      = errors.New("no active payroll period covers this date")
	ErrPeriodAlreadyLocked = errors.New("payroll already processed for this period")
)
