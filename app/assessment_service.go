package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"attest/domain/assessment"
	"attest/domain/core"
	"attest/internal/audit"
	"attest/internal/config"
	"attest/internal/executor"
	"attest/internal/recommend"
	"attest/internal/scoring"
	"attest/ports"
)

// AssessmentService orchestrates a full certification run: battery execution,
// dimension aggregation, composite folding, level classification,
// recommendation derivation, and audit assembly. One service may run many
// assessments; each run gets its own executor state.
type AssessmentService struct {
	cfg      *config.Config
	observer ports.RunObserver

	mu      sync.Mutex
	history []*assessment.AssessmentResult
}

// NewAssessmentService wires the service. A nil observer disables progress
// events.
func NewAssessmentService(cfg *config.Config, observer ports.RunObserver) *AssessmentService {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	return &AssessmentService{cfg: cfg, observer: observer}
}

// Assess runs the complete battery against sys and returns the finalized
// result. Configuration problems fail fast before any test executes; after
// execution starts, every failure mode degrades into the result's audit
// status instead of aborting the run.
func (s *AssessmentService) Assess(ctx context.Context, sys ports.SystemPort) (*assessment.AssessmentResult, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	battery, err := s.cfg.Battery()
	if err != nil {
		return nil, err
	}

	meta := sys.GetMetadata()
	started := core.Now()
	runStart := time.Now()

	runCtx := ctx
	if s.cfg.RunDeadline > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.cfg.RunDeadline)
		defer cancel()
	}

	var runErrors []string
	fatal := false

	// Prepare/cleanup run at most once each. A prepare failure skips the
	// battery entirely; the run still produces an (invalid) audit record.
	lifecycle, hasLifecycle := sys.(ports.SystemLifecycle)
	prepared := false
	if hasLifecycle {
		if err := lifecycle.Prepare(runCtx); err != nil {
			fatal = true
			runErrors = append(runErrors, fmt.Errorf("%w: %v", core.ErrSystemPreparation, err).Error())
		} else {
			prepared = true
		}
	}

	var results []assessment.TestResult
	if !fatal {
		exec := executor.New(s.cfg.MaxConcurrent, s.observer)
		results, err = exec.Run(runCtx, sys, battery)
		if err != nil {
			return nil, err
		}
	}

	if hasLifecycle && prepared {
		if err := lifecycle.Cleanup(runCtx); err != nil {
			fatal = true
			runErrors = append(runErrors, fmt.Errorf("%w: %v", core.ErrSystemCleanup, err).Error())
		}
	}

	scores, aggErrors := s.aggregate(results)
	runErrors = append(runErrors, aggErrors...)
	if len(aggErrors) > 0 {
		fatal = true
	}

	composite, breakdown, err := scoring.Composite(scores)
	if err != nil {
		fatal = true
		runErrors = append(runErrors, err.Error())
	}

	recs := recommend.Generate(s.cfg, scores)

	result := audit.Build(audit.BuildInput{
		Config:          s.cfg,
		CatalogHash:     assessment.CatalogFingerprint(battery),
		System:          meta,
		SystemName:      meta.Name,
		StartedAt:       started,
		Duration:        time.Since(runStart),
		DimensionScores: scores,
		CompositeScore:  composite,
		Breakdown:       breakdown,
		Recommendations: recs,
		Errors:          runErrors,
		Fatal:           fatal,
	})

	s.observer.RunFinished(result)

	s.mu.Lock()
	s.history = append(s.history, result)
	s.mu.Unlock()

	return result, nil
}

// aggregate folds the flat 48-slot result table into the 12 dimension scores,
// in canonical dimension order. Each aggregation error is collected, never
// dropped; any of them invalidates the audit.
func (s *AssessmentService) aggregate(results []assessment.TestResult) ([]assessment.DimensionScore, []string) {
	dims := assessment.Dimensions()
	scores := make([]assessment.DimensionScore, 0, len(dims))
	var errs []string

	for pos, dim := range dims {
		var group []assessment.TestResult
		lo := pos * assessment.TestsPerDimension
		if lo+assessment.TestsPerDimension <= len(results) {
			group = results[lo : lo+assessment.TestsPerDimension]
		}

		ds, err := scoring.AggregateDimension(dim, s.cfg.Weights[dim.ID], group)
		if err != nil {
			errs = append(errs, err.Error())
		}
		scores = append(scores, ds)
		s.observer.DimensionAggregated(ds)
	}
	return scores, errs
}

// History returns the results of every assessment this service has run, in
// completion order.
func (s *AssessmentService) History() []*assessment.AssessmentResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*assessment.AssessmentResult, len(s.history))
	copy(out, s.history)
	return out
}

// Export serializes a finished result through the given exporter.
func (s *AssessmentService) Export(ctx context.Context, exp ports.ExporterPort, result *assessment.AssessmentResult) error {
	return exp.Export(ctx, result)
}
