package period

import "time"

// Period is a payroll accumulation window. Once Locked flips to true it can
// never flip back: the period's payslips are final and its ledger is closed.
type Period struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	Locked    bool
	CreatedBy string
	UpdatedBy string
	RequestIP string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether date falls within [StartDate, EndDate], inclusive
// on both ends. Dates are compared at day granularity.
func (p Period) Contains(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(p.StartDate)) && !d.After(truncateToDay(p.EndDate))
}

// Overlaps performs the closed-interval intersection test against another
// date range: existing.start <= end AND existing.end >= start.
func (p Period) Overlaps(start, end time.Time) bool {
	return !truncateToDay(p.StartDate).After(truncateToDay(end)) &&
		!truncateToDay(p.EndDate).Before(truncateToDay(start))
}

// WorkingDays counts the business days (Monday through Friday) in
// [StartDate, EndDate], inclusive of both ends.
func (p Period) WorkingDays() int {
	count := 0
	end := truncateToDay(p.EndDate)
	for d := truncateToDay(p.StartDate); !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// IsWeekend reports whether date is a designated non-working day.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
