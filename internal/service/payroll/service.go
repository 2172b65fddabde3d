package payroll

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/audit"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/employee"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/ledger"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/payslip"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/period"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/database"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/jwt"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/requestmeta"
	"github.com/paywise-hr/payroll-backend-go/internal/repository/postgresql"
	"github.com/paywise-hr/payroll-backend-go/internal/service/document"
)

type PayrollServiceImpl struct {
	db                *database.DB
	periodRepo        period.PeriodRepository
	employeeRepo      employee.EmployeeRepository
	attendanceRepo    ledger.AttendanceRepository
	overtimeRepo      ledger.OvertimeRepository
	reimbursementRepo ledger.ReimbursementRepository
	payslipRepo       payslip.PayslipRepository
	calcConfig        CalcConfig
	documents         document.Service
	auditRecorder     audit.Recorder
}

func NewPayrollService(
	db *database.DB,
	periodRepo period.PeriodRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo ledger.AttendanceRepository,
	overtimeRepo ledger.OvertimeRepository,
	reimbursementRepo ledger.ReimbursementRepository,
	payslipRepo payslip.PayslipRepository,
	calcConfig CalcConfig,
	documents document.Service,
	auditRecorder audit.Recorder,
) payslip.PayrollService {
	return &PayrollServiceImpl{
		db:                db,
		periodRepo:        periodRepo,
		employeeRepo:      employeeRepo,
		attendanceRepo:    attendanceRepo,
		overtimeRepo:      overtimeRepo,
		reimbursementRepo: reimbursementRepo,
		payslipRepo:       payslipRepo,
		calcConfig:        calcConfig,
		documents:         documents,
		auditRecorder:     auditRecorder,
	}
}

// loadSnapshot reads one employee's ledger rows for the period. When called
// inside the run's transaction the reads happen behind the period lock, so
// the ledger cannot change between employees.
func (s *PayrollServiceImpl) loadSnapshot(ctx context.Context, employeeID, periodID string) (Snapshot, error) {
	attendanceDays, err := s.attendanceRepo.CountByEmployeeAndPeriod(ctx, employeeID, periodID)
	if err != nil {
		return Snapshot{}, err
	}

	overtimeRecords, err := s.overtimeRepo.ListByEmployeeAndPeriod(ctx, employeeID, periodID)
	if err != nil {
		return Snapshot{}, err
	}

	claims, err := s.reimbursementRepo.ListByEmployeeAndPeriod(ctx, employeeID, periodID)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{AttendanceDays: attendanceDays}
	for _, rec := range overtimeRecords {
		snap.OvertimeHours = append(snap.OvertimeHours, rec.Hours)
	}
	for _, claim := range claims {
		snap.Reimbursements = append(snap.Reimbursements, claim.Amount)
	}

	return snap, nil
}

// Run executes the batch payroll for a period: the one-way lock flip, then
// one payslip per employee, all in a single transaction. Any calculator
// failure aborts the whole run, lock flip included; partial payrolls are
// never visible.
func (s *PayrollServiceImpl) Run(ctx context.Context, periodID string) (payslip.RunSummary, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return payslip.RunSummary{}, err
	}
	requestIP := requestmeta.ClientIP(ctx)

	p, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return payslip.RunSummary{}, err
	}
	if p.Locked {
		return payslip.RunSummary{}, period.ErrPeriodAlreadyLocked
	}

	processed := 0
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		// The lock flip goes first. Its row lock waits out any ledger write
		// still holding the period FOR SHARE and fences every later one, so
		// the snapshot reads below see a frozen ledger: an in-flight write
		// either commits before the flip and is counted, or is rejected.
		if err := s.periodRepo.Lock(txCtx, p.ID, actor.Name, requestIP); err != nil {
			return err
		}

		// Loaded behind the lock so the payslip set matches the employee
		// table at lock time.
		employees, err := s.employeeRepo.GetAll(txCtx)
		if err != nil {
			return fmt.Errorf("failed to load employees: %w", err)
		}

		for _, emp := range employees {
			snap, err := s.loadSnapshot(txCtx, emp.ID, p.ID)
			if err != nil {
				return err
			}

			figures, err := Calculate(emp.Salary, p, snap, s.calcConfig)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.Username, err)
			}

			_, err = s.payslipRepo.Create(txCtx, payslip.Payslip{
				EmployeeID:         emp.ID,
				PeriodID:           p.ID,
				ProratedBaseSalary: figures.ProratedBaseSalary,
				AttendanceDays:     figures.AttendanceDays,
				OvertimeHours:      figures.OvertimeHours,
				OvertimePay:        figures.OvertimePay,
				ReimbursementTotal: figures.ReimbursementTotal,
				TotalPay:           figures.TotalPay,
				CreatedBy:          actor.Name,
				UpdatedBy:          actor.Name,
				RequestIP:          requestIP,
			})
			if err != nil {
				return err
			}
			processed++
		}

		return nil
	})
	if err != nil {
		return payslip.RunSummary{}, err
	}

	s.auditRecorder.Record(ctx, audit.Entry{
		Actor:     actor,
		Action:    "payroll.run",
		Entity:    "payroll_period",
		EntityID:  p.ID,
		Detail:    map[string]any{"processed_employees": processed},
		RequestIP: requestIP,
	})

	return payslip.RunSummary{
		PeriodID:           p.ID,
		StartDate:          p.StartDate.Format("2006-01-02"),
		EndDate:            p.EndDate.Format("2006-01-02"),
		ProcessedEmployees: processed,
	}, nil
}

// GenerateOwn lets an employee produce their own payslip ahead of the batch
// run. The UNIQUE(employee_id, period_id) constraint arbitrates between this
// path and the batch: whichever writes first wins, the other sees a conflict.
func (s *PayrollServiceImpl) GenerateOwn(ctx context.Context, periodID string) (payslip.PayslipResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	requestIP := requestmeta.ClientIP(ctx)

	p, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	snap, err := s.loadSnapshot(ctx, emp.ID, p.ID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	figures, err := Calculate(emp.Salary, p, snap, s.calcConfig)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	created, err := s.payslipRepo.Create(ctx, payslip.Payslip{
		EmployeeID:         emp.ID,
		PeriodID:           p.ID,
		ProratedBaseSalary: figures.ProratedBaseSalary,
		AttendanceDays:     figures.AttendanceDays,
		OvertimeHours:      figures.OvertimeHours,
		OvertimePay:        figures.OvertimePay,
		ReimbursementTotal: figures.ReimbursementTotal,
		TotalPay:           figures.TotalPay,
		CreatedBy:          actor.Name,
		UpdatedBy:          actor.Name,
		RequestIP:          requestIP,
	})
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	s.auditRecorder.Record(ctx, audit.Entry{
		Actor:     actor,
		Action:    "payslip.generate",
		Entity:    "payslip",
		EntityID:  created.ID,
		RequestIP: requestIP,
	})

	response := payslip.ToResponse(created)

	// Rendering is best-effort: the payslip is already durable, a failed
	// artifact never rolls it back.
	if url, err := s.documents.RenderPayslip(ctx, emp, p, created); err == nil {
		response.DocumentURL = &url
	}

	return response, nil
}

func (s *PayrollServiceImpl) GetOwn(ctx context.Context, periodID string) (payslip.PayslipResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	p, err := s.payslipRepo.GetByEmployeeAndPeriod(ctx, actor.ID, periodID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	response := payslip.ToResponse(p)
	if url, ok := s.documents.PayslipURL(ctx, actor.ID, periodID); ok {
		response.DocumentURL = &url
	}

	return response, nil
}

// Summary reports per-employee totals and the period's total take-home pay.
// It reads only the payslip store, never the ledger.
func (s *PayrollServiceImpl) Summary(ctx context.Context, periodID string) (payslip.PeriodSummaryResponse, error) {
	p, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return payslip.PeriodSummaryResponse{}, err
	}

	payslips, err := s.payslipRepo.ListByPeriod(ctx, p.ID)
	if err != nil {
		return payslip.PeriodSummaryResponse{}, err
	}
	if len(payslips) == 0 {
		return payslip.PeriodSummaryResponse{}, payslip.ErrNoPayslipsForPeriod
	}

	summary := payslip.PeriodSummaryResponse{
		PeriodID:  p.ID,
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
	}
	for _, slip := range payslips {
		name := ""
		if slip.EmployeeName != nil {
			name = *slip.EmployeeName
		}
		summary.Rows = append(summary.Rows, payslip.SummaryRow{
			EmployeeID:   slip.EmployeeID,
			EmployeeName: name,
			TotalPay:     slip.TotalPay,
		})
		summary.TotalTakeHome = summary.TotalTakeHome.Add(slip.TotalPay)
	}

	return summary, nil
}
