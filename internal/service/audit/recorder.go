package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/audit"
)

type inserter interface {
	Insert(ctx context.Context, e audit.Entry) error
}

type AsyncRecorder struct {
	repo   inserter
	logger *slog.Logger
}

func NewAsyncRecorder(repo inserter, logger *slog.Logger) audit.Recorder {
	return &AsyncRecorder{repo: repo, logger: logger}
}

// Record writes the entry in the background. The insert is detached from the
// request's cancellation so an audit row still lands after the response is
// sent; failures are logged and dropped.
func (r *AsyncRecorder) Record(ctx context.Context, e audit.Entry) {
	bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)

	go func() {
		defer cancel()

		if err := r.repo.Insert(bgCtx, e); err != nil {
			r.logger.Error("failed to record audit entry",
				"action", e.Action,
				"entity", e.Entity,
				"entity_id", e.EntityID,
				"error", err,
			)
		}
	}()
}
