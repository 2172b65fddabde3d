package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/period"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/database"
)

type periodRepository struct {
	db *database.DB
}

func NewPeriodRepository(db *database.DB) period.PeriodRepository {
	return &periodRepository{db: db}
}

const periodColumns = `id, start_date, end_date, locked, created_by, updated_by, request_ip, created_at, updated_at`

func scanPeriod(row pgx.Row) (period.Period, error) {
	var p period.Period
	err := row.Scan(
		&p.ID, &p.StartDate, &p.EndDate, &p.Locked,
		&p.CreatedBy, &p.UpdatedBy, &p.RequestIP,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *periodRepository) Create(ctx context.Context, p period.Period) (period.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (start_date, end_date, locked, created_by, updated_by, request_ip)
		VALUES ($1, $2, false, $3, $4, $5)
		RETURNING ` + periodColumns

	created, err := scanPeriod(q.QueryRow(ctx, query,
		p.StartDate, p.EndDate, p.CreatedBy, p.UpdatedBy, p.RequestIP,
	))
	if err != nil {
		// The exclusion constraint is the storage-level backstop for the
		// overlap check performed in the service.
		if strings.Contains(err.Error(), "excl_period_range") {
			return period.Period{}, period.ErrPeriodOverlap
		}
		return period.Period{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return created, nil
}

func (r *periodRepository) GetByID(ctx context.Context, id string) (period.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE id = $1`

	p, err := scanPeriod(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return period.Period{}, period.ErrPeriodNotFound
		}
		return period.Period{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

func (r *periodRepository) GetAll(ctx context.Context) ([]period.Period, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods ORDER BY start_date DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var periods []period.Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, nil
}

func (r *periodRepository) FindOverlapping(ctx context.Context, start, end time.Time) (period.Period, error) {
	q := GetQuerier(ctx, r.db)

	// Closed-interval intersection, locked periods included. Casts strip any
	// time-of-day the caller's timestamps carry.
	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE start_date <= $2::date AND end_date >= $1::date
		LIMIT 1
	`

	p, err := scanPeriod(q.QueryRow(ctx, query, start, end))
	if err != nil {
		if err == pgx.ErrNoRows {
			return period.Period{}, period.ErrPeriodNotFound
		}
		return period.Period{}, fmt.Errorf("failed to find overlapping period: %w", err)
	}

	return p, nil
}

func (r *periodRepository) FindUnlockedCovering(ctx context.Context, date time.Time) (period.Period, error) {
	q := GetQuerier(ctx, r.db)

	// FOR SHARE holds the period row until the enclosing transaction
	// commits, so a concurrent lock flip waits for the caller's write.
	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE start_date <= $1::date AND end_date >= $1::date AND locked = false
		LIMIT 1
		FOR SHARE
	`

	p, err := scanPeriod(q.QueryRow(ctx, query, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return period.Period{}, period.ErrNoActivePeriod
		}
		return period.Period{}, fmt.Errorf("failed to find active period: %w", err)
	}

	return p, nil
}

func (r *periodRepository) Lock(ctx context.Context, id string, updatedBy, requestIP string) error {
	q := GetQuerier(ctx, r.db)

	// Compare-and-set: the locked = false guard makes concurrent runs for
	// the same period serialize, only the first one flips the flag. The
	// row lock taken here also blocks on any in-flight ledger write that
	// holds the period FOR SHARE.
	query := `
		UPDATE payroll_periods
		SET locked = true, updated_by = $2, request_ip = $3, updated_at = NOW()
		WHERE id = $1 AND locked = false
		RETURNING id
	`

	var lockedID string
	err := q.QueryRow(ctx, query, id, updatedBy, requestIP).Scan(&lockedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return period.ErrPeriodAlreadyLocked
		}
		return fmt.Errorf("failed to lock payroll period: %w", err)
	}

	return nil
}
