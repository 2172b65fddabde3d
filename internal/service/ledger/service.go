package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/audit"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/ledger"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/period"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/user"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/database"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/jwt"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/requestmeta"
	"github.com/paywise-hr/payroll-backend-go/internal/repository/postgresql"
)

// overtimeDailyCap is the maximum overtime hours claimable per date.
var overtimeDailyCap = decimal.NewFromInt(3)

type LedgerServiceImpl struct {
	db                *database.DB
	periodRepo        period.PeriodRepository
	attendanceRepo    ledger.AttendanceRepository
	overtimeRepo      ledger.OvertimeRepository
	reimbursementRepo ledger.ReimbursementRepository
	auditRecorder     audit.Recorder
}

func NewLedgerService(
	db *database.DB,
	periodRepo period.PeriodRepository,
	attendanceRepo ledger.AttendanceRepository,
	overtimeRepo ledger.OvertimeRepository,
	reimbursementRepo ledger.ReimbursementRepository,
	auditRecorder audit.Recorder,
) ledger.LedgerService {
	return &LedgerServiceImpl{
		db:                db,
		periodRepo:        periodRepo,
		attendanceRepo:    attendanceRepo,
		overtimeRepo:      overtimeRepo,
		reimbursementRepo: reimbursementRepo,
		auditRecorder:     auditRecorder,
	}
}

func (s *LedgerServiceImpl) requireEmployee(ctx context.Context) (user.Actor, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return user.Actor{}, err
	}
	if actor.Type != user.RoleEmployee {
		return user.Actor{}, user.ErrEmployeeAccessRequired
	}
	return actor, nil
}

// SubmitAttendance records the submitting employee's presence for today.
// Resubmitting the same day is acknowledged, not rejected: check-in buttons
// get pressed more than once.
func (s *LedgerServiceImpl) SubmitAttendance(ctx context.Context) (ledger.AttendanceResponse, error) {
	actor, err := s.requireEmployee(ctx)
	if err != nil {
		return ledger.AttendanceResponse{}, err
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if period.IsWeekend(today) {
		return ledger.AttendanceResponse{}, ledger.ErrWeekendAttendance
	}

	requestIP := requestmeta.ClientIP(ctx)

	// The covering lookup and the insert share one transaction. The share
	// lock on the period row makes a concurrent lock flip wait, so a write
	// never lands in a locked period.
	var p period.Period
	var created ledger.AttendanceRecord
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		p, err = s.periodRepo.FindUnlockedCovering(txCtx, today)
		if err != nil {
			return err
		}

		created, err = s.attendanceRepo.Create(txCtx, ledger.AttendanceRecord{
			EmployeeID: actor.ID,
			Date:       today,
			PeriodID:   p.ID,
			CreatedBy:  actor.Name,
			UpdatedBy:  actor.Name,
			RequestIP:  requestIP,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, ledger.ErrAttendanceDuplicate) {
			return ledger.AttendanceResponse{
				Date:            today.Format("2006-01-02"),
				PeriodID:        p.ID,
				AlreadyRecorded: true,
			}, nil
		}
		return ledger.AttendanceResponse{}, err
	}

	s.auditRecorder.Record(ctx, audit.Entry{
		Actor:     actor,
		Action:    "attendance.submit",
		Entity:    "attendance_record",
		EntityID:  created.ID,
		Detail:    map[string]any{"date": created.Date.Format("2006-01-02")},
		RequestIP: requestIP,
	})

	return ledger.AttendanceResponse{
		Date:     created.Date.Format("2006-01-02"),
		PeriodID: p.ID,
	}, nil
}

// SubmitOvertime records an overtime claim for a past or current date,
// capped at 3 hours per day. Weekend overtime is allowed.
func (s *LedgerServiceImpl) SubmitOvertime(ctx context.Context, req ledger.SubmitOvertimeRequest) (ledger.OvertimeResponse, error) {
	actor, err := s.requireEmployee(ctx)
	if err != nil {
		return ledger.OvertimeResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return ledger.OvertimeResponse{}, err
	}

	date := req.ParsedDate()
	today := time.Now().UTC()
	if date.After(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)) {
		return ledger.OvertimeResponse{}, ledger.ErrOvertimeInFuture
	}
	if req.Hours.GreaterThan(overtimeDailyCap) {
		return ledger.OvertimeResponse{}, ledger.ErrOvertimeExceedsDailyCap
	}

	requestIP := requestmeta.ClientIP(ctx)

	var p period.Period
	var created ledger.OvertimeRecord
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		p, err = s.periodRepo.FindUnlockedCovering(txCtx, date)
		if err != nil {
			return err
		}

		created, err = s.overtimeRepo.Create(txCtx, ledger.OvertimeRecord{
			EmployeeID: actor.ID,
			Date:       date,
			PeriodID:   p.ID,
			Hours:      req.Hours,
			CreatedBy:  actor.Name,
			UpdatedBy:  actor.Name,
			RequestIP:  requestIP,
		})
		return err
	})
	if err != nil {
		return ledger.OvertimeResponse{}, err
	}

	s.auditRecorder.Record(ctx, audit.Entry{
		Actor:    actor,
		Action:   "overtime.submit",
		Entity:   "overtime_record",
		EntityID: created.ID,
		Detail: map[string]any{
			"date":  created.Date.Format("2006-01-02"),
			"hours": created.Hours.String(),
		},
		RequestIP: requestIP,
	})

	return ledger.OvertimeResponse{
		Date:     created.Date.Format("2006-01-02"),
		Hours:    created.Hours,
		PeriodID: p.ID,
	}, nil
}

func (s *LedgerServiceImpl) SubmitReimbursement(ctx context.Context, req ledger.SubmitReimbursementRequest) (ledger.ReimbursementResponse, error) {
	actor, err := s.requireEmployee(ctx)
	if err != nil {
		return ledger.ReimbursementResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return ledger.ReimbursementResponse{}, err
	}

	date := req.ParsedDate()
	requestIP := requestmeta.ClientIP(ctx)

	var p period.Period
	var created ledger.ReimbursementClaim
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		p, err = s.periodRepo.FindUnlockedCovering(txCtx, date)
		if err != nil {
			return err
		}

		created, err = s.reimbursementRepo.Create(txCtx, ledger.ReimbursementClaim{
			EmployeeID:  actor.ID,
			Date:        date,
			PeriodID:    p.ID,
			Amount:      req.Amount,
			Description: req.Description,
			CreatedBy:   actor.Name,
			UpdatedBy:   actor.Name,
			RequestIP:   requestIP,
		})
		return err
	})
	if err != nil {
		return ledger.ReimbursementResponse{}, err
	}

	s.auditRecorder.Record(ctx, audit.Entry{
		Actor:    actor,
		Action:   "reimbursement.submit",
		Entity:   "reimbursement_claim",
		EntityID: created.ID,
		Detail: map[string]any{
			"date":   created.Date.Format("2006-01-02"),
			"amount": created.Amount.String(),
		},
		RequestIP: requestIP,
	})

	return ledger.ReimbursementResponse{
		Date:        created.Date.Format("2006-01-02"),
		Amount:      created.Amount,
		Description: created.Description,
		PeriodID:    p.ID,
	}, nil
}

// ListMine returns the caller's ledger rows for one period.
func (s *LedgerServiceImpl) ListMine(ctx context.Context, periodID string) (ledger.LedgerEntriesResponse, error) {
	actor, err := s.requireEmployee(ctx)
	if err != nil {
		return ledger.LedgerEntriesResponse{}, err
	}

	p, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return ledger.LedgerEntriesResponse{}, err
	}

	attendance, err := s.attendanceRepo.ListByEmployeeAndPeriod(ctx, actor.ID, p.ID)
	if err != nil {
		return ledger.LedgerEntriesResponse{}, err
	}

	overtime, err := s.overtimeRepo.ListByEmployeeAndPeriod(ctx, actor.ID, p.ID)
	if err != nil {
		return ledger.LedgerEntriesResponse{}, err
	}

	claims, err := s.reimbursementRepo.ListByEmployeeAndPeriod(ctx, actor.ID, p.ID)
	if err != nil {
		return ledger.LedgerEntriesResponse{}, err
	}

	result := ledger.LedgerEntriesResponse{PeriodID: p.ID}
	for _, rec := range attendance {
		result.Attendance = append(result.Attendance, ledger.AttendanceResponse{
			Date:     rec.Date.Format("2006-01-02"),
			PeriodID: rec.PeriodID,
		})
	}
	for _, rec := range overtime {
		result.Overtime = append(result.Overtime, ledger.OvertimeResponse{
			Date:     rec.Date.Format("2006-01-02"),
			Hours:    rec.Hours,
			PeriodID: rec.PeriodID,
		})
	}
	for _, claim := range claims {
		result.Reimbursements = append(result.Reimbursements, ledger.ReimbursementResponse{
			Date:        claim.Date.Format("2006-01-02"),
			Amount:      claim.Amount,
			Description: claim.Description,
			PeriodID:    claim.PeriodID,
		})
	}

	return result, nil
}
