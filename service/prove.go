package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/liamcoop/logicgraph/cache"
	"github.com/liamcoop/logicgraph/internal/logger"
	"github.com/liamcoop/logicgraph/logic"
	"github.com/liamcoop/logicgraph/prover"
)

const proveCacheKind = "prove"

// ProveResult is a prover verdict and whether it came from the cache
type ProveResult struct {
	prover.Result
	Cached   bool          `json:"cached"`
	Duration time.Duration `json:"-"`
}

// Prove lints the script, then answers from the cache or the prover.
// Only definite verdicts are cached.
func (s *Service) Prove(ctx context.Context, premises []string, conclusion string) (ProveResult, error) {
	if err := logic.ValidateInput(premises, conclusion); err != nil {
		return ProveResult{}, err
	}
	if s.prover == nil {
		return ProveResult{}, ErrNoProver
	}

	if report := s.checker.Check(premises, conclusion); !report.Valid {
		logger.LintRejections.Add(1)
		logger.Info("Script rejected by lint", "issues", len(report.Issues))
		return ProveResult{}, &LintError{Report: report}
	}

	key := cache.KeyLines(proveCacheKind, premises, conclusion)
	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		logger.Warn("Result cache read failed", "error", err)
	} else if ok {
		var res prover.Result
		if err := json.Unmarshal(data, &res); err == nil {
			logger.CacheHits.Add(1)
			return ProveResult{Result: res, Cached: true}, nil
		}
		logger.Warn("Discarding unreadable cache entry", "key", key)
	}
	logger.CacheMisses.Add(1)

	start := time.Now()
	res, err := s.prover.Prove(ctx, premises, conclusion)
	if err != nil {
		logger.SolverFailures.Add(1)
		logger.Error("Prover failed", "error", err)
		return ProveResult{}, fmt.Errorf("prove: %w", err)
	}
	elapsed := time.Since(start)

	if res.Verdict != prover.VerdictError {
		if data, err := json.Marshal(res); err == nil {
			if err := s.cache.Set(ctx, key, data); err != nil {
				logger.Warn("Result cache write failed", "error", err)
			}
		}
	}

	logger.Info("Proof attempted", "verdict", res.Verdict, "duration_ms", elapsed.Milliseconds())
	return ProveResult{Result: res, Duration: elapsed}, nil
}
