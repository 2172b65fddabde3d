package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/employee"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/payslip"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/period"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/storage"
)

// Service renders and serves payslip artifacts. Artifacts are a convenience
// layer over the payslip store; losing one never loses payroll data.
type Service interface {
	RenderPayslip(ctx context.Context, emp employee.Employee, p period.Period, slip payslip.Payslip) (string, error)
	PayslipURL(ctx context.Context, employeeID, periodID string) (string, bool)
}

type DocumentServiceImpl struct {
	storage storage.FileStorage
}

func NewDocumentService(fileStorage storage.FileStorage) Service {
	return &DocumentServiceImpl{storage: fileStorage}
}

func payslipPath(employeeID, periodID string) string {
	return fmt.Sprintf("payslips/%s/%s.txt", periodID, employeeID)
}

// RenderPayslip writes a plain-text payslip document and returns its URL.
// The path is deterministic per (employee, period) so re-rendering replaces
// the artifact instead of accumulating copies.
func (s *DocumentServiceImpl) RenderPayslip(ctx context.Context, emp employee.Employee, p period.Period, slip payslip.Payslip) (string, error) {
	var b strings.Builder

	line := strings.Repeat("=", 52)
	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "                      PAYSLIP")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "Employee : %s\n", emp.FullName)
	fmt.Fprintf(&b, "Username : %s\n", emp.Username)
	fmt.Fprintf(&b, "Period   : %s to %s\n",
		p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"))
	fmt.Fprintln(&b, strings.Repeat("-", 52))
	fmt.Fprintf(&b, "%-32s %19s\n", "Prorated base salary", slip.ProratedBaseSalary.StringFixed(2))
	fmt.Fprintf(&b, "%-32s %19d\n", "Attendance days", slip.AttendanceDays)
	fmt.Fprintf(&b, "%-32s %19s\n", "Overtime hours", slip.OvertimeHours.String())
	fmt.Fprintf(&b, "%-32s %19s\n", "Overtime pay", slip.OvertimePay.StringFixed(2))
	fmt.Fprintf(&b, "%-32s %19s\n", "Reimbursements", slip.ReimbursementTotal.StringFixed(2))
	fmt.Fprintln(&b, strings.Repeat("-", 52))
	fmt.Fprintf(&b, "%-32s %19s\n", "TOTAL TAKE-HOME PAY", slip.TotalPay.StringFixed(2))
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "Generated at %s\n", time.Now().UTC().Format(time.RFC3339))

	path := payslipPath(emp.ID, p.ID)
	stored, err := s.storage.Upload(ctx, strings.NewReader(b.String()), path, "text/plain")
	if err != nil {
		return "", fmt.Errorf("failed to store payslip document: %w", err)
	}

	url, err := s.storage.GetURL(ctx, stored, 24*time.Hour)
	if err != nil {
		return "", fmt.Errorf("failed to resolve payslip document URL: %w", err)
	}

	return url, nil
}

func (s *DocumentServiceImpl) PayslipURL(ctx context.Context, employeeID, periodID string) (string, bool) {
	path := payslipPath(employeeID, periodID)

	exists, err := s.storage.Exists(ctx, path)
	if err != nil || !exists {
		return "", false
	}

	url, err := s.storage.GetURL(ctx, path, 24*time.Hour)
	if err != nil {
		return "", false
	}

	return url, true
}
