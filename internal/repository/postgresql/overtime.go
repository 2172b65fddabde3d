package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/ledger"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/database"
)

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) ledger.OvertimeRepository {
	return &overtimeRepository{db: db}
}

const overtimeColumns = `id, employee_id, date, period_id, hours, created_by, updated_by, request_ip, created_at, updated_at`

func scanOvertime(row pgx.Row) (ledger.OvertimeRecord, error) {
	var rec ledger.OvertimeRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.PeriodID, &rec.Hours,
		&rec.CreatedBy, &rec.UpdatedBy, &rec.RequestIP,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (r *overtimeRepository) Create(ctx context.Context, rec ledger.OvertimeRecord) (ledger.OvertimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtimes (employee_id, date, period_id, hours, created_by, updated_by, request_ip)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + overtimeColumns

	created, err := scanOvertime(q.QueryRow(ctx, query,
		rec.EmployeeID, rec.Date, rec.PeriodID, rec.Hours,
		rec.CreatedBy, rec.UpdatedBy, rec.RequestIP,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_overtime_employee_date") {
			return ledger.OvertimeRecord{}, ledger.ErrOvertimeAlreadySubmitted
		}
		return ledger.OvertimeRecord{}, fmt.Errorf("failed to create overtime record: %w", err)
	}

	return created, nil
}

func (r *overtimeRepository) ListByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) ([]ledger.OvertimeRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overtimeColumns + `
		FROM overtimes
		WHERE employee_id = $1 AND period_id = $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime records: %w", err)
	}
	defer rows.Close()

	var records []ledger.OvertimeRecord
	for rows.Next() {
		rec, err := scanOvertime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
