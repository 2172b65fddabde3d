package payroll

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/audit"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/employee"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/ledger"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/payslip"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/period"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/database"
	"github.com/paywise-hr/payroll-backend-go/internal/repository/postgresql"
)

var testPayrollDB *database.DB

const testPayrollSecret = "test-secret-key-for-jwt"

type noopRecorder struct{}

func (noopRecorder) Record(ctx context.Context, e audit.Entry) {}

// noopDocuments skips artifact rendering in service tests.
type noopDocuments struct{}

func (noopDocuments) RenderPayslip(ctx context.Context, emp employee.Employee, p period.Period, slip payslip.Payslip) (string, error) {
	return "", fmt.Errorf("rendering disabled in tests")
}

func (noopDocuments) PayslipURL(ctx context.Context, employeeID, periodID string) (string, bool) {
	return "", false
}

func payrollTestInit(t *testing.T) {
	t.Helper()
	if testPayrollDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	var err error
	testPayrollDB, err = database.NewPostgreSQLDB(dsn, database.PoolOptions{})
	require.NoError(t, err, "failed to connect to test database")
}

func truncatePayrollTables(t *testing.T, ctx context.Context) {
	t.Helper()
	tables := []string{"payslips", "attendances", "overtimes", "reimbursements", "payroll_periods", "employees"}
	for _, table := range tables {
		_, err := testPayrollDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createPayrollTestEmployee(t *testing.T, ctx context.Context, username, salary string) string {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	var id string
	err := testPayrollDB.QueryRow(ctx, `
		INSERT INTO employees (username, password_hash, full_name, salary, created_by, updated_by)
		VALUES ($1, $2, 'Test Employee', $3, 'test', 'test')
		RETURNING id
	`, username, string(hash), salary).Scan(&id)
	require.NoError(t, err)
	return id
}

func createPayrollTestPeriod(t *testing.T, ctx context.Context, start, end string) string {
	t.Helper()
	var id string
	err := testPayrollDB.QueryRow(ctx, `
		INSERT INTO payroll_periods (start_date, end_date, locked, created_by, updated_by)
		VALUES ($1, $2, false, 'test', 'test')
		RETURNING id
	`, start, end).Scan(&id)
	require.NoError(t, err)
	return id
}

func insertAttendance(t *testing.T, ctx context.Context, employeeID, periodID, date string) {
	t.Helper()
	_, err := testPayrollDB.Exec(ctx, `
		INSERT INTO attendances (employee_id, date, period_id, created_by, updated_by)
		VALUES ($1, $2, $3, 'test', 'test')
	`, employeeID, date, periodID)
	require.NoError(t, err)
}

func insertOvertime(t *testing.T, ctx context.Context, employeeID, periodID, date, hours string) {
	t.Helper()
	_, err := testPayrollDB.Exec(ctx, `
		INSERT INTO overtimes (employee_id, date, period_id, hours, created_by, updated_by)
		VALUES ($1, $2, $3, $4, 'test', 'test')
	`, employeeID, date, periodID, hours)
	require.NoError(t, err)
}

func insertReimbursement(t *testing.T, ctx context.Context, employeeID, periodID, date, amount string) {
	t.Helper()
	_, err := testPayrollDB.Exec(ctx, `
		INSERT INTO reimbursements (employee_id, date, period_id, amount, created_by, updated_by)
		VALUES ($1, $2, $3, $4, 'test', 'test')
	`, employeeID, date, periodID, amount)
	require.NoError(t, err)
}

func actorContext(t *testing.T, ctx context.Context, actorID, username, role string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte(testPayrollSecret), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"actor_id": actorID,
		"username": username,
		"role":     role,
		"type":     "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(ctx, token, nil)
}

func newTestPayrollService() payslip.PayrollService {
	return NewPayrollService(
		testPayrollDB,
		postgresql.NewPeriodRepository(testPayrollDB),
		postgresql.NewEmployeeRepository(testPayrollDB),
		postgresql.NewAttendanceRepository(testPayrollDB),
		postgresql.NewOvertimeRepository(testPayrollDB),
		postgresql.NewReimbursementRepository(testPayrollDB),
		postgresql.NewPayslipRepository(testPayrollDB),
		CalcConfig{OvertimeMultiplier: decimal.NewFromInt(2), WorkdayHours: 8},
		noopDocuments{},
		noopRecorder{},
	)
}

// Full attendance June 2025 scenario: 20 working days 2025-06-02..2025-06-27.
func TestPayrollService_Run_ComputesFigures(t *testing.T) {
	ctx := context.Background()
	payrollTestInit(t)
	truncatePayrollTables(t, ctx)

	empID := createPayrollTestEmployee(t, ctx, "run-emp", "3200.00")
	periodID := createPayrollTestPeriod(t, ctx, "2025-06-02", "2025-06-27")

	// 10 of 20 working days attended.
	for day := 2; day <= 13; day++ {
		d := time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)
		if period.IsWeekend(d) {
			continue
		}
		insertAttendance(t, ctx, empID, periodID, d.Format("2006-01-02"))
	}
	insertOvertime(t, ctx, empID, periodID, "2025-06-05", "2.5")
	insertReimbursement(t, ctx, empID, periodID, "2025-06-10", "99.99")

	adminCtx := actorContext(t, ctx, "00000000-0000-0000-0000-000000000001", "admin", "admin")
	svc := newTestPayrollService()

	summary, err := svc.Run(adminCtx, periodID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ProcessedEmployees)
	assert.Equal(t, "2025-06-02", summary.StartDate)
	assert.Equal(t, "2025-06-27", summary.EndDate)

	var prorated, overtimePay, reimbTotal, totalPay decimal.Decimal
	var attendanceDays int
	err = testPayrollDB.QueryRow(ctx, `
		SELECT prorated_base_salary, attendance_days, overtime_pay, reimbursement_total, total_pay
		FROM payslips WHERE employee_id = $1 AND period_id = $2
	`, empID, periodID).Scan(&prorated, &attendanceDays, &overtimePay, &reimbTotal, &totalPay)
	require.NoError(t, err)

	// 3200 * 10/20 = 1600; hourly = 3200 / (10*8) = 40; OT = 2.5 * 40 * 2 = 200.
	assert.Equal(t, 10, attendanceDays)
	assert.True(t, prorated.Equal(decimal.RequireFromString("1600.00")), "prorated = %s", prorated)
	assert.True(t, overtimePay.Equal(decimal.RequireFromString("200.00")), "overtime = %s", overtimePay)
	assert.True(t, reimbTotal.Equal(decimal.RequireFromString("99.99")), "reimbursements = %s", reimbTotal)
	assert.True(t, totalPay.Equal(prorated.Add(overtimePay).Add(reimbTotal)),
		"total must equal the sum of its rounded components")

	var locked bool
	err = testPayrollDB.QueryRow(ctx,
		`SELECT locked FROM payroll_periods WHERE id = $1`, periodID).Scan(&locked)
	require.NoError(t, err)
	assert.True(t, locked, "run must lock the period")
}

func TestPayrollService_Run_OnlyOnce(t *testing.T) {
	ctx := context.Background()
	payrollTestInit(t)
	truncatePayrollTables(t, ctx)

	empID := createPayrollTestEmployee(t, ctx, "runonce-emp", "3200.00")
	periodID := createPayrollTestPeriod(t, ctx, "2025-06-02", "2025-06-27")
	insertAttendance(t, ctx, empID, periodID, "2025-06-02")

	adminCtx := actorContext(t, ctx, "00000000-0000-0000-0000-000000000001", "admin", "admin")
	svc := newTestPayrollService()

	_, err := svc.Run(adminCtx, periodID)
	require.NoError(t, err)

	_, err = svc.Run(adminCtx, periodID)
	assert.ErrorIs(t, err, period.ErrPeriodAlreadyLocked)
}

// A ledger write in flight when the run starts holds the period row share
// locked, so the run's lock flip waits for it: the written row must appear
// in the payslip, and writes arriving after the flip must find no active
// period.
func TestPayrollService_Run_WaitsForInFlightLedgerWrite(t *testing.T) {
	ctx := context.Background()
	payrollTestInit(t)
	truncatePayrollTables(t, ctx)

	empID := createPayrollTestEmployee(t, ctx, "race-emp", "3200.00")
	periodID := createPayrollTestPeriod(t, ctx, "2025-06-02", "2025-06-27")
	insertAttendance(t, ctx, empID, periodID, "2025-06-02")

	periodRepo := postgresql.NewPeriodRepository(testPayrollDB)
	attendanceRepo := postgresql.NewAttendanceRepository(testPayrollDB)
	writeDate := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)

	held := make(chan struct{})
	writeDone := make(chan error, 1)
	go func() {
		writeDone <- postgresql.WithTransaction(ctx, testPayrollDB, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)

			p, err := periodRepo.FindUnlockedCovering(txCtx, writeDate)
			if err != nil {
				return err
			}
			close(held)

			// Hold the share lock while the run is trying to flip the lock.
			time.Sleep(300 * time.Millisecond)

			_, err = attendanceRepo.Create(txCtx, ledger.AttendanceRecord{
				EmployeeID: empID,
				Date:       writeDate,
				PeriodID:   p.ID,
				CreatedBy:  "test",
				UpdatedBy:  "test",
			})
			return err
		})
	}()

	<-held
	adminCtx := actorContext(t, ctx, "00000000-0000-0000-0000-000000000001", "admin", "admin")
	svc := newTestPayrollService()

	summary, err := svc.Run(adminCtx, periodID)
	require.NoError(t, err)
	require.NoError(t, <-writeDone)
	assert.Equal(t, 1, summary.ProcessedEmployees)

	var attendanceDays int
	err = testPayrollDB.QueryRow(ctx, `
		SELECT attendance_days FROM payslips WHERE employee_id = $1 AND period_id = $2
	`, empID, periodID).Scan(&attendanceDays)
	require.NoError(t, err)
	assert.Equal(t, 2, attendanceDays, "the in-flight day must be counted in the payslip")

	_, err = periodRepo.FindUnlockedCovering(ctx, writeDate)
	assert.ErrorIs(t, err, period.ErrNoActivePeriod,
		"writes after the lock flip must find no active period")
}

func TestPayrollService_Run_AbortsOnNoHourlyBasis(t *testing.T) {
	ctx := context.Background()
	payrollTestInit(t)
	truncatePayrollTables(t, ctx)

	// Second employee has zero attendance: the whole run must abort with
	// nothing persisted and the period left unlocked.
	withAttendance := createPayrollTestEmployee(t, ctx, "abort-emp-a", "3200.00")
	createPayrollTestEmployee(t, ctx, "abort-emp-b", "4000.00")
	periodID := createPayrollTestPeriod(t, ctx, "2025-06-02", "2025-06-27")
	insertAttendance(t, ctx, withAttendance, periodID, "2025-06-02")

	adminCtx := actorContext(t, ctx, "00000000-0000-0000-0000-000000000001", "admin", "admin")
	svc := newTestPayrollService()

	_, err := svc.Run(adminCtx, periodID)
	assert.ErrorIs(t, err, payslip.ErrNoHourlyBasis)

	var count int
	err = testPayrollDB.QueryRow(ctx,
		`SELECT COUNT(*) FROM payslips WHERE period_id = $1`, periodID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "aborted run must persist no payslips")

	var locked bool
	err = testPayrollDB.QueryRow(ctx,
		`SELECT locked FROM payroll_periods WHERE id = $1`, periodID).Scan(&locked)
	require.NoError(t, err)
	assert.False(t, locked, "aborted run must leave the period unlocked")
}

func TestPayrollService_GenerateOwn_ConflictsWithBatch(t *testing.T) {
	ctx := context.Background()
	payrollTestInit(t)
	truncatePayrollTables(t, ctx)

	empID := createPayrollTestEmployee(t, ctx, "self-emp", "3200.00")
	periodID := createPayrollTestPeriod(t, ctx, "2025-06-02", "2025-06-27")
	insertAttendance(t, ctx, empID, periodID, "2025-06-02")

	adminCtx := actorContext(t, ctx, "00000000-0000-0000-0000-000000000001", "admin", "admin")
	empCtx := actorContext(t, ctx, empID, "self-emp", "employee")
	svc := newTestPayrollService()

	_, err := svc.Run(adminCtx, periodID)
	require.NoError(t, err)

	_, err = svc.GenerateOwn(empCtx, periodID)
	assert.ErrorIs(t, err, payslip.ErrPayslipAlreadyGenerated)
}

func TestPayrollService_GenerateOwn_ThenGet(t *testing.T) {
	ctx := context.Background()
	payrollTestInit(t)
	truncatePayrollTables(t, ctx)

	empID := createPayrollTestEmployee(t, ctx, "own-emp", "3500.00")
	periodID := createPayrollTestPeriod(t, ctx, "2025-06-02", "2025-06-27")
	insertAttendance(t, ctx, empID, periodID, "2025-06-02")
	insertAttendance(t, ctx, empID, periodID, "2025-06-03")

	empCtx := actorContext(t, ctx, empID, "own-emp", "employee")
	svc := newTestPayrollService()

	generated, err := svc.GenerateOwn(empCtx, periodID)
	require.NoError(t, err)
	// 3500 * 2/20 = 350.
	assert.True(t, generated.ProratedBaseSalary.Equal(decimal.RequireFromString("350.00")))

	fetched, err := svc.GetOwn(empCtx, periodID)
	require.NoError(t, err)
	assert.Equal(t, generated.ID, fetched.ID)
	assert.True(t, fetched.TotalPay.Equal(generated.TotalPay))

	// Generating twice conflicts even for the same employee.
	_, err = svc.GenerateOwn(empCtx, periodID)
	assert.ErrorIs(t, err, payslip.ErrPayslipAlreadyGenerated)
}

func TestPayrollService_GetOwn_NotFound(t *testing.T) {
	ctx := context.Background()
	payrollTestInit(t)
	truncatePayrollTables(t, ctx)

	empID := createPayrollTestEmployee(t, ctx, "missing-emp", "3200.00")
	periodID := createPayrollTestPeriod(t, ctx, "2025-06-02", "2025-06-27")

	empCtx := actorContext(t, ctx, empID, "missing-emp", "employee")
	svc := newTestPayrollService()

	_, err := svc.GetOwn(empCtx, periodID)
	assert.ErrorIs(t, err, payslip.ErrPayslipNotFound)
}

func TestPayrollService_Summary(t *testing.T) {
	ctx := context.Background()
	payrollTestInit(t)
	truncatePayrollTables(t, ctx)

	empA := createPayrollTestEmployee(t, ctx, "sum-emp-a", "3200.00")
	empB := createPayrollTestEmployee(t, ctx, "sum-emp-b", "4000.00")
	periodID := createPayrollTestPeriod(t, ctx, "2025-06-02", "2025-06-27")
	insertAttendance(t, ctx, empA, periodID, "2025-06-02")
	insertAttendance(t, ctx, empB, periodID, "2025-06-02")
	insertAttendance(t, ctx, empB, periodID, "2025-06-03")

	adminCtx := actorContext(t, ctx, "00000000-0000-0000-0000-000000000001", "admin", "admin")
	svc := newTestPayrollService()

	_, err := svc.Run(adminCtx, periodID)
	require.NoError(t, err)

	summary, err := svc.Summary(adminCtx, periodID)
	require.NoError(t, err)
	require.Len(t, summary.Rows, 2)

	// 3200 * 1/20 = 160; 4000 * 2/20 = 400.
	expected := decimal.RequireFromString("560.00")
	assert.True(t, summary.TotalTakeHome.Equal(expected),
		"total take-home = %s, want %s", summary.TotalTakeHome, expected)

	var sum decimal.Decimal
	for _, row := range summary.Rows {
		sum = sum.Add(row.TotalPay)
	}
	assert.True(t, summary.TotalTakeHome.Equal(sum))
}

func TestPayrollService_Summary_NoPayslips(t *testing.T) {
	ctx := context.Background()
	payrollTestInit(t)
	truncatePayrollTables(t, ctx)

	periodID := createPayrollTestPeriod(t, ctx, "2025-06-02", "2025-06-27")

	adminCtx := actorContext(t, ctx, "00000000-0000-0000-0000-000000000001", "admin", "admin")
	svc := newTestPayrollService()

	_, err := svc.Summary(adminCtx, periodID)
	assert.ErrorIs(t, err, payslip.ErrNoPayslipsForPeriod)
}
