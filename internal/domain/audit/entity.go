package audit

import (
	"context"
	"time"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/user"
)

// Entry is a fire-and-forget record of a significant mutation. Failures to
// record never fail the triggering operation.
type Entry struct {
	Actor     user.Actor
	Action    string
	Entity    string
	EntityID  string
	Detail    map[string]any
	RequestIP string
	CreatedAt time.Time
}

type Recorder interface {
	Record(ctx context.Context, e Entry)
}
