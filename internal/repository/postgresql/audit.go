package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/audit"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) *auditRepository {
	return &auditRepository{db: db}
}

// Insert writes one audit row. Audit writes always go straight to the pool,
// never into a caller's transaction: an aborted run should still leave its
// audit trail behind.
func (r *auditRepository) Insert(ctx context.Context, e audit.Entry) error {
	var detail []byte
	if e.Detail != nil {
		var err error
		detail, err = json.Marshal(e.Detail)
		if err != nil {
			return fmt.Errorf("failed to marshal audit detail: %w", err)
		}
	}

	query := `
		INSERT INTO audit_logs (actor_type, actor_id, action, entity, entity_id, detail, request_ip)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		string(e.Actor.Type), e.Actor.ID, e.Action, e.Entity, e.EntityID, detail, e.RequestIP,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}
