package period

import (
	"context"
	"errors"
	"time"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/audit"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/period"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/jwt"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/requestmeta"
)

type PeriodServiceImpl struct {
	periodRepo    period.PeriodRepository
	auditRecorder audit.Recorder
}

func NewPeriodService(periodRepo period.PeriodRepository, auditRecorder audit.Recorder) period.PeriodService {
	return &PeriodServiceImpl{
		periodRepo:    periodRepo,
		auditRecorder: auditRecorder,
	}
}

// Create adds a payroll period after checking ordering and overlap. The
// overlap pre-check gives a clean error message; the exclusion constraint on
// the table closes the race two concurrent creates would otherwise win.
func (s *PeriodServiceImpl) Create(ctx context.Context, req period.CreatePeriodRequest) (period.PeriodResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return period.PeriodResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return period.PeriodResponse{}, err
	}

	start, end := req.Range()
	if start.After(end) {
		return period.PeriodResponse{}, period.ErrInvalidRange
	}

	_, err = s.periodRepo.FindOverlapping(ctx, start, end)
	if err == nil {
		return period.PeriodResponse{}, period.ErrPeriodOverlap
	}
	if !errors.Is(err, period.ErrPeriodNotFound) {
		return period.PeriodResponse{}, err
	}

	requestIP := requestmeta.ClientIP(ctx)
	created, err := s.periodRepo.Create(ctx, period.Period{
		StartDate: start,
		EndDate:   end,
		CreatedBy: actor.Name,
		UpdatedBy: actor.Name,
		RequestIP: requestIP,
	})
	if err != nil {
		return period.PeriodResponse{}, err
	}

	s.auditRecorder.Record(ctx, audit.Entry{
		Actor:    actor,
		Action:   "period.create",
		Entity:   "payroll_period",
		EntityID: created.ID,
		Detail: map[string]any{
			"start_date": created.StartDate.Format("2006-01-02"),
			"end_date":   created.EndDate.Format("2006-01-02"),
		},
		RequestIP: requestIP,
	})

	return period.ToResponse(created), nil
}

func (s *PeriodServiceImpl) List(ctx context.Context) ([]period.PeriodResponse, error) {
	periods, err := s.periodRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return period.ToResponses(periods), nil
}

// FindActiveCovering resolves the unlocked period containing date, the target
// for every ledger submission.
func (s *PeriodServiceImpl) FindActiveCovering(ctx context.Context, date time.Time) (period.Period, error) {
	return s.periodRepo.FindUnlockedCovering(ctx, date)
}
