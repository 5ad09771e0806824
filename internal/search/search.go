// Package search scans the enrolled candidate set for the best-scoring
// match of a probe feature vector. The scan is pure computation over
// in-memory vectors: no I/O, no shared mutable state, safe to run
// concurrently for independent requests.
package search

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/saturnino-fabrica-de-software/bioid/internal/codec"
	"github.com/saturnino-fabrica-de-software/bioid/internal/domain"
	"github.com/saturnino-fabrica-de-software/bioid/internal/matcher"
)

// Candidate is one enrolled record handed to the scan: the id plus the
// still-serialized feature payload. Deserialization happens inside the
// scan so a corrupt record can be skipped without faulting the search.
type Candidate struct {
	ID          string
	FeatureData []byte
}

// Result is the outcome of one scan. Score holds the worst-possible
// sentinel for the type when no candidate matched.
type Result struct {
	Found   bool
	ID      string
	Score   float64
	Scanned int
	Skipped int
}

// minParallelCandidates is the candidate count below which sharding the
// scan is not worth the goroutine overhead.
const minParallelCandidates = 256

type Searcher struct {
	threshold float64
	workers   int
	logger    *slog.Logger
}

// NewSearcher builds a searcher for one biometric type's threshold.
// workers <= 1 keeps the scan sequential.
func NewSearcher(threshold float64, workers int, logger *slog.Logger) *Searcher {
	return &Searcher{
		threshold: threshold,
		workers:   workers,
		logger:    logger,
	}
}

// FindBestMatch scans candidates in input order and returns the single
// best-scoring match above the threshold. Ordering is type-specific:
// strictly lower cosine distance wins for face, strictly higher match
// ratio wins for palm, and ties keep the earliest-seen candidate, so the
// result is deterministic for a given candidate order.
//
// A candidate that fails to decode or to compare is logged and skipped;
// only the caller's failure to produce the probe vector is request-fatal.
func (s *Searcher) FindBestMatch(ctx context.Context, probe domain.FeatureVector, candidates []Candidate) Result {
	if len(candidates) == 0 {
		return Result{Score: matcher.WorstScore(probe.Type)}
	}

	if s.workers > 1 && len(candidates) >= minParallelCandidates {
		return s.scanParallel(ctx, probe, candidates)
	}
	return s.scanRange(probe, candidates, 0)
}

// shardResult is one worker's local best, tagged with the original
// candidate index so the reduce step can keep sequential tie-break order.
type shardResult struct {
	Result
	bestIndex int
}

// scanRange runs the sequential scan over one slice of candidates.
// offset is the slice's position in the full candidate list; the
// reported bestIndex is global.
func (s *Searcher) scanRange(probe domain.FeatureVector, candidates []Candidate, offset int) Result {
	res := shardResult{
		Result:    Result{Score: matcher.WorstScore(probe.Type)},
		bestIndex: -1,
	}
	s.scanInto(probe, candidates, offset, &res)
	return res.Result
}

func (s *Searcher) scanInto(probe domain.FeatureVector, candidates []Candidate, offset int, res *shardResult) {
	for i, candidate := range candidates {
		res.Scanned++

		stored, err := codec.Decode(candidate.FeatureData, probe.Type)
		if err != nil {
			res.Skipped++
			s.logger.Warn("skipping candidate with corrupt feature data",
				slog.String("candidate_id", candidate.ID),
				slog.String("type", probe.Type.String()),
				slog.Any("error", err),
			)
			continue
		}

		cmp := matcher.Compare(probe, stored, s.threshold)
		if cmp.Outcome == matcher.Failed {
			res.Skipped++
			s.logger.Warn("skipping candidate after comparison failure",
				slog.String("candidate_id", candidate.ID),
				slog.String("type", probe.Type.String()),
				slog.Any("error", cmp.Err),
			)
			continue
		}

		if cmp.Outcome != matcher.Match {
			continue
		}

		if !res.Found || matcher.BetterScore(probe.Type, cmp.Score, res.Score) {
			res.Found = true
			res.ID = candidate.ID
			res.Score = cmp.Score
			res.bestIndex = offset + i
		}
	}
}

// scanParallel shards the candidate list across workers and reduces the
// per-shard bests with the same strict-improvement rule, breaking score
// ties by the lowest original candidate index. The outcome is identical
// to the sequential scan.
func (s *Searcher) scanParallel(ctx context.Context, probe domain.FeatureVector, candidates []Candidate) Result {
	workers := s.workers
	if workers > len(candidates) {
		workers = len(candidates)
	}

	results := make([]shardResult, workers)
	chunk := (len(candidates) + workers - 1) / workers

	g, _ := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, len(candidates))
		res := &results[w]
		res.Score = matcher.WorstScore(probe.Type)
		res.bestIndex = -1
		g.Go(func() error {
			s.scanInto(probe, candidates[start:end], start, res)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures are per-candidate skips

	best := shardResult{
		Result:    Result{Score: matcher.WorstScore(probe.Type)},
		bestIndex: -1,
	}
	for _, res := range results {
		best.Scanned += res.Scanned
		best.Skipped += res.Skipped
		if !res.Found {
			continue
		}
		if !best.Found ||
			matcher.BetterScore(probe.Type, res.Score, best.Score) ||
			(res.Score == best.Score && res.bestIndex < best.bestIndex) {
			best.Found = true
			best.ID = res.ID
			best.Score = res.Score
			best.bestIndex = res.bestIndex
		}
	}
	return best.Result
}
