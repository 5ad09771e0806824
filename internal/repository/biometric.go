package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
	"github.com/saturnino-fabrica-de-software/bioid/internal/search"
)

type BiometricRepository struct {
	pool PgxPool
}

func NewBiometricRepository(pool PgxPool) *BiometricRepository {
	return &BiometricRepository{pool: pool}
}

// Create persists a new biometric record. Face embeddings matching the
// vector column dimension are additionally mirrored into it so the
// nearest-neighbour prefilter can use them; any other embedding (palm
// records pass nil, non-default DeepFace models produce foreign
// dimensions) leaves the column NULL and the record is served by the
// full scan.
func (r *BiometricRepository) Create(ctx context.Context, biometric *domain.Biometric, embedding []float64) error {
	query := `
		INSERT INTO biometrics (id, type, feature_data, embedding, image_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if biometric.ID == "" {
		biometric.ID = domain.NewBiometricID(biometric.Type)
	}

	var vec *pgvector.Vector
	if len(embedding) == domain.EmbeddingDim {
		floats := make([]float32, len(embedding))
		for i, v := range embedding {
			floats[i] = float32(v)
		}
		v := pgvector.NewVector(floats)
		vec = &v
	}

	err := r.pool.QueryRow(ctx, query,
		biometric.ID,
		biometric.Type.String(),
		biometric.FeatureData,
		vec,
		biometric.ImageKey,
	).Scan(&biometric.CreatedAt, &biometric.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrBiometricExists
		}
		return fmt.Errorf("create biometric: %w", err)
	}

	return nil
}

func (r *BiometricRepository) GetByID(ctx context.Context, id string) (*domain.Biometric, error) {
	query := `
		SELECT id, type, feature_data, image_key, created_at, updated_at
		FROM biometrics
		WHERE id = $1
	`

	var biometric domain.Biometric
	var typ string

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&biometric.ID,
		&typ,
		&biometric.FeatureData,
		&biometric.ImageKey,
		&biometric.CreatedAt,
		&biometric.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBiometricNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get biometric by id: %w", err)
	}

	biometric.Type, err = domain.ParseBiometricType(typ)
	if err != nil {
		return nil, fmt.Errorf("get biometric by id: %w", err)
	}

	return &biometric, nil
}

func (r *BiometricRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM biometrics
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete biometric: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrBiometricNotFound
	}

	return nil
}

// List returns a page of records ordered by creation time, newest first,
// together with the total count. A non-nil typ restricts the page and
// the count to one biometric type.
func (r *BiometricRepository) List(ctx context.Context, typ *domain.BiometricType, limit, offset int) ([]domain.Biometric, int, error) {
	countQuery := `SELECT COUNT(*) FROM biometrics`
	query := `
		SELECT id, type, image_key, created_at, updated_at
		FROM biometrics
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	countArgs := []any{}
	args := []any{limit, offset}

	if typ != nil {
		countQuery = `SELECT COUNT(*) FROM biometrics WHERE type = $1`
		query = `
			SELECT id, type, image_key, created_at, updated_at
			FROM biometrics
			WHERE type = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		`
		countArgs = []any{typ.String()}
		args = []any{typ.String(), limit, offset}
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count biometrics: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list biometrics: %w", err)
	}
	defer rows.Close()

	var biometrics []domain.Biometric
	for rows.Next() {
		var biometric domain.Biometric
		var typ string
		if err := rows.Scan(&biometric.ID, &typ, &biometric.ImageKey, &biometric.CreatedAt, &biometric.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan biometric: %w", err)
		}
		biometric.Type, err = domain.ParseBiometricType(typ)
		if err != nil {
			return nil, 0, fmt.Errorf("scan biometric: %w", err)
		}
		biometrics = append(biometrics, biometric)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list biometrics: %w", err)
	}

	return biometrics, total, nil
}

// ListByType returns the identification candidates of one type, ordered
// by creation time ascending so earlier enrollments win score ties.
func (r *BiometricRepository) ListByType(ctx context.Context, typ domain.BiometricType) ([]search.Candidate, error) {
	query := `
		SELECT id, feature_data
		FROM biometrics
		WHERE type = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, typ.String())
	if err != nil {
		return nil, fmt.Errorf("list biometrics by type: %w", err)
	}
	defer rows.Close()

	var candidates []search.Candidate
	for rows.Next() {
		var c search.Candidate
		if err := rows.Scan(&c.ID, &c.FeatureData); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list biometrics by type: %w", err)
	}

	return candidates, nil
}

func (r *BiometricRepository) CountByType(ctx context.Context, typ domain.BiometricType) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM biometrics WHERE type = $1`, typ.String()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count biometrics by type: %w", err)
	}
	return count, nil
}

// NearestByEmbedding returns the face candidates closest to the probe
// embedding by cosine distance. Used as a prefilter on large galleries;
// the returned candidates still go through the exact matcher.
func (r *BiometricRepository) NearestByEmbedding(ctx context.Context, embedding []float64, limit int) ([]search.Candidate, error) {
	floats := make([]float32, len(embedding))
	for i, v := range embedding {
		floats[i] = float32(v)
	}

	query := `
		SELECT id, feature_data
		FROM biometrics
		WHERE type = 'face' AND embedding IS NOT NULL
		ORDER BY embedding <=> $1, created_at ASC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, pgvector.NewVector(floats), limit)
	if err != nil {
		return nil, fmt.Errorf("nearest by embedding: %w", err)
	}
	defer rows.Close()

	var candidates []search.Candidate
	for rows.Next() {
		var c search.Candidate
		if err := rows.Scan(&c.ID, &c.FeatureData); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("nearest by embedding: %w", err)
	}

	return candidates, nil
}

var _ BiometricRepositoryInterface = (*BiometricRepository)(nil)
