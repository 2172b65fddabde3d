package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/ledger"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) ledger.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, date, period_id, created_by, updated_by, request_ip, created_at, updated_at`

func scanAttendance(row pgx.Row) (ledger.AttendanceRecord, error) {
	var rec ledger.AttendanceRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.PeriodID,
		&rec.CreatedBy, &rec.UpdatedBy, &rec.RequestIP,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (r *attendanceRepository) Create(ctx context.Context, rec ledger.AttendanceRecord) (ledger.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, period_id, created_by, updated_by, request_ip)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		rec.EmployeeID, rec.Date, rec.PeriodID,
		rec.CreatedBy, rec.UpdatedBy, rec.RequestIP,
	))
	if err != nil {
		// The unique index is the duplicate check; repeated submissions for
		// the same day land here and are acknowledged idempotently upstream.
		if strings.Contains(err.Error(), "uk_attendance_employee_date") {
			return ledger.AttendanceRecord{}, ledger.ErrAttendanceDuplicate
		}
		return ledger.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return created, nil
}

func (r *attendanceRepository) CountByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM attendances WHERE employee_id = $1 AND period_id = $2`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, periodID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	return count, nil
}

func (r *attendanceRepository) ListByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) ([]ledger.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND period_id = $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []ledger.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
