package payslip

import (
	"context"

	"github.com/shopspring/decimal"
)

type PayslipResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	PeriodID           string          `json:"period_id"`
	ProratedBaseSalary decimal.Decimal `json:"prorated_base_salary"`
	AttendanceDays     int             `json:"attendance_days"`
	OvertimeHours      decimal.Decimal `json:"overtime_hours"`
	OvertimePay        decimal.Decimal `json:"overtime_pay"`
	ReimbursementTotal decimal.Decimal `json:"reimbursement_total"`
	TotalPay           decimal.Decimal `json:"total_pay"`
	DocumentURL        *string         `json:"document_url,omitempty"`
}

func ToResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:                 p.ID,
		EmployeeID:         p.EmployeeID,
		PeriodID:           p.PeriodID,
		ProratedBaseSalary: p.ProratedBaseSalary,
		AttendanceDays:     p.AttendanceDays,
		OvertimeHours:      p.OvertimeHours,
		OvertimePay:        p.OvertimePay,
		ReimbursementTotal: p.ReimbursementTotal,
		TotalPay:           p.TotalPay,
	}
}

type RunSummary struct {
	PeriodID           string `json:"period_id"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	ProcessedEmployees int    `json:"processed_employees"`
}

type SummaryRow struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	TotalPay     decimal.Decimal `json:"total_pay"`
}

type PeriodSummaryResponse struct {
	PeriodID      string          `json:"period_id"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	Rows          []SummaryRow    `json:"summary"`
	TotalTakeHome decimal.Decimal `json:"total_take_home"`
}

type PayrollService interface {
	Run(ctx context.Context, periodID string) (RunSummary, error)
	GenerateOwn(ctx context.Context, periodID string) (PayslipResponse, error)
	GetOwn(ctx context.Context, periodID string) (PayslipResponse, error)
	Summary(ctx context.Context, periodID string) (PeriodSummaryResponse, error)
}
