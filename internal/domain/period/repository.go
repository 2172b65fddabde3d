package period

import (
	"context"
	"time"
)

type PeriodRepository interface {
	Create(ctx context.Context, p Period) (Period, error)
	GetByID(ctx context.Context, id string) (Period, error)
	GetAll(ctx context.Context) ([]Period, error)
	// FindOverlapping returns any period whose closed date range intersects
	// [start, end], locked periods included.
	FindOverlapping(ctx context.Context, start, end time.Time) (Period, error)
	// FindUnlockedCovering returns the unlocked period containing date.
	// The non-overlap invariant guarantees at most one match. Inside a
	// transaction the returned row stays share-locked until commit.
	FindUnlockedCovering(ctx context.Context, date time.Time) (Period, error)
	// Lock flips the locked flag, guarded by locked = false. Returns
	// ErrPeriodAlreadyLocked when a concurrent run already committed.
	Lock(ctx context.Context, id string, updatedBy, requestIP string) error
}
