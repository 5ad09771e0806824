package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
	"github.com/saturnino-fabrica-de-software/bioid/internal/search"
)

// PgxPool is the subset of pgxpool.Pool the repositories use. pgxmock
// satisfies it, so the same code runs against the real pool and tests.
type PgxPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// BiometricRepositoryInterface defines operations for biometric data access
type BiometricRepositoryInterface interface {
	Create(ctx context.Context, biometric *domain.Biometric, embedding []float64) error
	GetByID(ctx context.Context, id string) (*domain.Biometric, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, typ *domain.BiometricType, limit, offset int) ([]domain.Biometric, int, error)
	ListByType(ctx context.Context, typ domain.BiometricType) ([]search.Candidate, error)
	CountByType(ctx context.Context, typ domain.BiometricType) (int, error)
	NearestByEmbedding(ctx context.Context, embedding []float64, limit int) ([]search.Candidate, error)
}

// IdentificationAuditRepositoryInterface defines operations for
// identification audit logging
type IdentificationAuditRepositoryInterface interface {
	Create(ctx context.Context, audit *domain.IdentificationAudit) error
}
