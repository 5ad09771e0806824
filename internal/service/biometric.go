package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/saturnino-fabrica-de-software/bioid/internal/codec"
	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
	"github.com/saturnino-fabrica-de-software/bioid/internal/provider"
	"github.com/saturnino-fabrica-de-software/bioid/internal/search"
	"github.com/saturnino-fabrica-de-software/bioid/internal/storage"
)

type BiometricRepositoryInterface interface {
	Create(ctx context.Context, biometric *domain.Biometric, embedding []float64) error
	GetByID(ctx context.Context, id string) (*domain.Biometric, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, typ *domain.BiometricType, limit, offset int) ([]domain.Biometric, int, error)
	ListByType(ctx context.Context, typ domain.BiometricType) ([]search.Candidate, error)
	CountByType(ctx context.Context, typ domain.BiometricType) (int, error)
	NearestByEmbedding(ctx context.Context, embedding []float64, limit int) ([]search.Candidate, error)
}

type IdentificationAuditRepositoryInterface interface {
	Create(ctx context.Context, audit *domain.IdentificationAudit) error
}

// Options tunes the matching and enrollment behavior.
type Options struct {
	FaceThreshold     float64
	PalmThreshold     float64
	SearchWorkers     int
	MaxScanCandidates int
	RequireLiveness   bool
	LivenessThreshold float64
}

type BiometricService struct {
	repo       BiometricRepositoryInterface
	auditRepo  IdentificationAuditRepositoryInterface
	extractors provider.ExtractorSet
	images     storage.ImageStore
	searchers  map[domain.BiometricType]*search.Searcher
	opts       Options
	logger     *slog.Logger
}

func NewBiometricService(
	repo BiometricRepositoryInterface,
	auditRepo IdentificationAuditRepositoryInterface,
	extractors provider.ExtractorSet,
	images storage.ImageStore,
	opts Options,
	logger *slog.Logger,
) *BiometricService {
	return &BiometricService{
		repo:       repo,
		auditRepo:  auditRepo,
		extractors: extractors,
		images:     images,
		searchers: map[domain.BiometricType]*search.Searcher{
			domain.TypeFace: search.NewSearcher(opts.FaceThreshold, opts.SearchWorkers, logger),
			domain.TypePalm: search.NewSearcher(opts.PalmThreshold, opts.SearchWorkers, logger),
		},
		opts:   opts,
		logger: logger,
	}
}

// Identify searches the enrolled records of one type for the best match
// of the submitted sample.
func (s *BiometricService) Identify(ctx context.Context, image []byte, typ domain.BiometricType, clientIP string) (*domain.MatchResult, error) {
	start := time.Now()

	probe, err := s.extractors.Extract(ctx, image, typ)
	if err != nil {
		return nil, fmt.Errorf("extract probe: %w", err)
	}

	candidates, err := s.candidates(ctx, probe)
	if err != nil {
		return nil, err
	}

	result := s.searchers[typ].FindBestMatch(ctx, probe, candidates)

	match := &domain.MatchResult{
		Found: result.Found,
		Type:  typ,
	}
	if result.Found {
		match.ID = result.ID
		match.Score = result.Score
	}

	s.audit(ctx, typ, result, clientIP, time.Since(start).Milliseconds())

	return match, nil
}

// candidates loads the records to scan. Large face galleries go through
// the pgvector nearest-neighbour prefilter; everything else is a full
// scan of the type. The prefilter only applies when the probe embedding
// has the vector column's dimension.
func (s *BiometricService) candidates(ctx context.Context, probe domain.FeatureVector) ([]search.Candidate, error) {
	if probe.Type == domain.TypeFace && s.opts.MaxScanCandidates > 0 && len(probe.Embedding) == domain.EmbeddingDim {
		count, err := s.repo.CountByType(ctx, probe.Type)
		if err != nil {
			return nil, fmt.Errorf("count candidates: %w", err)
		}
		if count > s.opts.MaxScanCandidates {
			candidates, err := s.repo.NearestByEmbedding(ctx, probe.Embedding, s.opts.MaxScanCandidates)
			if err != nil {
				return nil, fmt.Errorf("prefilter candidates: %w", err)
			}
			return candidates, nil
		}
	}

	candidates, err := s.repo.ListByType(ctx, probe.Type)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return candidates, nil
}

// audit records the identification outcome. Errors are logged, never
// returned: the match result was already determined.
func (s *BiometricService) audit(ctx context.Context, typ domain.BiometricType, result search.Result, clientIP string, latencyMs int64) {
	audit := &domain.IdentificationAudit{
		Type:             typ,
		Found:            result.Found,
		CandidatesTotal:  result.Scanned,
		CandidatesFailed: result.Skipped,
		LatencyMs:        latencyMs,
		ClientIP:         clientIP,
	}
	if result.Found {
		audit.BestMatchID = &result.ID
		audit.BestMatchScore = &result.Score
	}

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		s.logger.Error("failed to write identification audit",
			slog.String("type", typ.String()),
			slog.Any("error", err),
		)
	}
}

// Register enrolls a new biometric record. The sample must not match any
// record already enrolled for the type; a hit yields *domain.DuplicateError.
func (s *BiometricService) Register(ctx context.Context, image []byte, typ domain.BiometricType, contentType string) (*domain.Biometric, error) {
	probe, err := s.extractors.Extract(ctx, image, typ)
	if err != nil {
		return nil, fmt.Errorf("extract sample: %w", err)
	}

	if typ == domain.TypeFace && s.opts.RequireLiveness {
		livenessResult, err := s.extractors.Liveness.CheckLiveness(ctx, image, s.opts.LivenessThreshold)
		if err != nil {
			return nil, fmt.Errorf("check liveness: %w", err)
		}
		if !livenessResult.IsLive || livenessResult.Confidence < s.opts.LivenessThreshold {
			return nil, domain.ErrLivenessFailed
		}
	}

	candidates, err := s.candidates(ctx, probe)
	if err != nil {
		return nil, err
	}

	if result := s.searchers[typ].FindBestMatch(ctx, probe, candidates); result.Found {
		return nil, &domain.DuplicateError{
			ExistingID: result.ID,
			Score:      result.Score,
		}
	}

	featureData, err := codec.Encode(probe)
	if err != nil {
		return nil, fmt.Errorf("encode features: %w", err)
	}

	biometric := &domain.Biometric{
		ID:          domain.NewBiometricID(typ),
		Type:        typ,
		FeatureData: featureData,
	}

	biometric.ImageKey = fmt.Sprintf("%s/%s", typ.String(), biometric.ID)
	if err := s.images.Put(ctx, biometric.ImageKey, image, contentType); err != nil {
		// Enrollment proceeds without the source image; matching never
		// reads it.
		s.logger.Warn("failed to store enrollment image",
			slog.String("id", biometric.ID),
			slog.Any("error", err),
		)
		biometric.ImageKey = ""
	}

	if err := s.repo.Create(ctx, biometric, probe.Embedding); err != nil {
		return nil, err
	}

	return biometric, nil
}

func (s *BiometricService) Get(ctx context.Context, id string) (*domain.Biometric, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BiometricService) List(ctx context.Context, typ *domain.BiometricType, limit, offset int) ([]domain.Biometric, int, error) {
	return s.repo.List(ctx, typ, limit, offset)
}

func (s *BiometricService) Delete(ctx context.Context, id string) error {
	biometric, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete biometric: %w", err)
	}

	if biometric.ImageKey != "" {
		if err := s.images.Delete(ctx, biometric.ImageKey); err != nil {
			s.logger.Warn("failed to delete enrollment image",
				slog.String("id", id),
				slog.Any("error", err),
			)
		}
	}

	return nil
}

// CheckLiveness runs the anti-spoofing collaborator on a face sample.
func (s *BiometricService) CheckLiveness(ctx context.Context, image []byte, threshold float64) (*domain.LivenessResult, error) {
	result, err := s.extractors.Liveness.CheckLiveness(ctx, image, threshold)
	if err != nil {
		return nil, fmt.Errorf("check liveness: %w", err)
	}
	return result, nil
}
