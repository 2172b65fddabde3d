package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/payslip"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/database"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepository{db: db}
}

const payslipColumns = `id, employee_id, period_id, prorated_base_salary, attendance_days,
	overtime_hours, overtime_pay, reimbursement_total, total_pay,
	created_by, updated_by, request_ip, created_at, updated_at`

func scanPayslip(row pgx.Row) (payslip.Payslip, error) {
	var p payslip.Payslip
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PeriodID, &p.ProratedBaseSalary, &p.AttendanceDays,
		&p.OvertimeHours, &p.OvertimePay, &p.ReimbursementTotal, &p.TotalPay,
		&p.CreatedBy, &p.UpdatedBy, &p.RequestIP,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payslipRepository) Create(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (employee_id, period_id, prorated_base_salary, attendance_days,
			overtime_hours, overtime_pay, reimbursement_total, total_pay,
			created_by, updated_by, request_ip)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + payslipColumns

	created, err := scanPayslip(q.QueryRow(ctx, query,
		p.EmployeeID, p.PeriodID, p.ProratedBaseSalary, p.AttendanceDays,
		p.OvertimeHours, p.OvertimePay, p.ReimbursementTotal, p.TotalPay,
		p.CreatedBy, p.UpdatedBy, p.RequestIP,
	))
	if err != nil {
		// Batch run and self-service both write through this constraint;
		// whichever inserted first wins, the loser sees the conflict.
		if strings.Contains(err.Error(), "uk_payslip_employee_period") {
			return payslip.Payslip{}, payslip.ErrPayslipAlreadyGenerated
		}
		return payslip.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	return created, nil
}

func (r *payslipRepository) GetByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE employee_id = $1 AND period_id = $2`

	p, err := scanPayslip(q.QueryRow(ctx, query, employeeID, periodID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

func (r *payslipRepository) ListByPeriod(ctx context.Context, periodID string) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.employee_id, p.period_id, p.prorated_base_salary, p.attendance_days,
			p.overtime_hours, p.overtime_pay, p.reimbursement_total, p.total_pay,
			p.created_by, p.updated_by, p.request_ip, p.created_at, p.updated_at,
			e.full_name
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.period_id = $1
		ORDER BY e.username
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payslip.Payslip
	for rows.Next() {
		var p payslip.Payslip
		if err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.PeriodID, &p.ProratedBaseSalary, &p.AttendanceDays,
			&p.OvertimeHours, &p.OvertimePay, &p.ReimbursementTotal, &p.TotalPay,
			&p.CreatedBy, &p.UpdatedBy, &p.RequestIP, &p.CreatedAt, &p.UpdatedAt,
			&p.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}

	return payslips, nil
}
