package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/ledger"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/database"
)

type reimbursementRepository struct {
	db *database.DB
}

func NewReimbursementRepository(db *database.DB) ledger.ReimbursementRepository {
	return &reimbursementRepository{db: db}
}

const reimbursementColumns = `id, employee_id, date, period_id, amount, description, created_by, updated_by, request_ip, created_at, updated_at`

func scanReimbursement(row pgx.Row) (ledger.ReimbursementClaim, error) {
	var claim ledger.ReimbursementClaim
	err := row.Scan(
		&claim.ID, &claim.EmployeeID, &claim.Date, &claim.PeriodID,
		&claim.Amount, &claim.Description,
		&claim.CreatedBy, &claim.UpdatedBy, &claim.RequestIP,
		&claim.CreatedAt, &claim.UpdatedAt,
	)
	return claim, err
}

func (r *reimbursementRepository) Create(ctx context.Context, claim ledger.ReimbursementClaim) (ledger.ReimbursementClaim, error) {
	q := GetQuerier(ctx, r.db)

	// Multiple claims per employee per period are allowed, so no uniqueness
	// handling here.
	query := `
		INSERT INTO reimbursements (employee_id, date, period_id, amount, description, created_by, updated_by, request_ip)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + reimbursementColumns

	created, err := scanReimbursement(q.QueryRow(ctx, query,
		claim.EmployeeID, claim.Date, claim.PeriodID, claim.Amount, claim.Description,
		claim.CreatedBy, claim.UpdatedBy, claim.RequestIP,
	))
	if err != nil {
		return ledger.ReimbursementClaim{}, fmt.Errorf("failed to create reimbursement claim: %w", err)
	}

	return created, nil
}

func (r *reimbursementRepository) ListByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) ([]ledger.ReimbursementClaim, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + reimbursementColumns + `
		FROM reimbursements
		WHERE employee_id = $1 AND period_id = $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reimbursement claims: %w", err)
	}
	defer rows.Close()

	var claims []ledger.ReimbursementClaim
	for rows.Next() {
		claim, err := scanReimbursement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reimbursement claim: %w", err)
		}
		claims = append(claims, claim)
	}

	return claims, nil
}
