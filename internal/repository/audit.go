package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
)

type IdentificationAuditRepository struct {
	pool PgxPool
}

func NewIdentificationAuditRepository(pool PgxPool) *IdentificationAuditRepository {
	return &IdentificationAuditRepository{pool: pool}
}

// Create inserts a new identification audit record
func (r *IdentificationAuditRepository) Create(ctx context.Context, audit *domain.IdentificationAudit) error {
	query := `
		INSERT INTO identification_audits (
			id, type, found, best_match_id, best_match_score,
			candidates_total, candidates_failed, latency_ms, client_ip, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`

	if audit.ID == "" {
		audit.ID = uuid.New().String()
	}

	err := r.pool.QueryRow(ctx, query,
		audit.ID,
		audit.Type.String(),
		audit.Found,
		audit.BestMatchID,
		audit.BestMatchScore,
		audit.CandidatesTotal,
		audit.CandidatesFailed,
		audit.LatencyMs,
		audit.ClientIP,
	).Scan(&audit.CreatedAt)

	if err != nil {
		return fmt.Errorf("create identification audit: %w", err)
	}

	return nil
}

var _ IdentificationAuditRepositoryInterface = (*IdentificationAuditRepository)(nil)
