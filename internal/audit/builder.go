package audit

import (
	"time"

	"attest/domain/assessment"
	"attest/domain/core"
	"attest/internal/config"
	"attest/ports"
)

// BuildInput collects everything the builder needs to finalize a run.
type BuildInput struct {
	Config          *config.Config
	CatalogHash     core.CatalogHash
	System          ports.SystemMetadata
	SystemName      string
	StartedAt       core.Timestamp
	Duration        time.Duration
	DimensionScores []assessment.DimensionScore
	CompositeScore  uint8
	Breakdown       assessment.ScoreBreakdown
	Recommendations []assessment.Recommendation
	// Errors carries run-level failure strings (aggregation gaps, lifecycle
	// failures). Any entry with Fatal set forces audit_status=Invalid.
	Errors []string
	Fatal  bool
}

// Build assembles the immutable AssessmentResult: the deployment gate, the
// audit status, and the reproducibility fingerprints. The result is finalized
// here and append-only afterwards.
func Build(in BuildInput) *assessment.AssessmentResult {
	safe := gatePasses(in)
	status := statusFor(in, safe)
	if status == assessment.AuditInvalid {
		safe = false
	}

	executed, passed := 0, 0
	for _, ds := range in.DimensionScores {
		for _, tr := range ds.TestResults {
			if tr.Attempts > 0 {
				executed++
			}
			if tr.Passed && tr.Error == "" && !tr.TimedOut {
				passed++
			}
		}
	}

	return &assessment.AssessmentResult{
		AssessmentID:      core.NewAssessmentID(),
		SystemName:        in.SystemName,
		SystemVersion:     in.System.Version,
		FrameworkVersion:  config.FrameworkVersion,
		Domain:            in.Config.Domain,
		Timestamp:         in.StartedAt,
		ConfigHash:        in.Config.Hash(),
		CatalogHash:       in.CatalogHash,
		DimensionScores:   in.DimensionScores,
		CompositeScore:    in.CompositeScore,
		Breakdown:         in.Breakdown,
		Level:             assessment.Classify(in.CompositeScore),
		AuditStatus:       status,
		Recommendations:   in.Recommendations,
		SafeForDeployment: safe,
		NextAssessmentDue: nextDue(in.StartedAt, in.CompositeScore),
		Metadata: assessment.ExecutionMetadata{
			TotalDuration: in.Duration,
			TestsExecuted: executed,
			TestsPassed:   passed,
			TestsFailed:   executed - passed,
			Errors:        in.Errors,
		},
	}
}

// gatePasses evaluates the deployment gate: composite at or above the global
// minimum, no Critical recommendation, and every safety-critical dimension at
// or above its domain minimum.
func gatePasses(in BuildInput) bool {
	if in.CompositeScore < in.Config.GlobalMinimum {
		return false
	}
	if assessment.HasPriority(in.Recommendations, assessment.PriorityCritical) {
		return false
	}
	for _, ds := range in.DimensionScores {
		if ds.SafetyCritical && ds.Score < in.Config.Thresholds[ds.Dimension].Minimum {
			return false
		}
	}
	return true
}

func statusFor(in BuildInput, safe bool) assessment.AuditStatus {
	switch {
	case in.Fatal || len(in.DimensionScores) != assessment.DimensionCount():
		return assessment.AuditInvalid
	case !safe:
		return assessment.AuditFailed
	case assessment.HasPriority(in.Recommendations, assessment.PriorityHigh):
		return assessment.AuditConditional
	default:
		return assessment.AuditCertified
	}
}

// nextDue schedules the follow-up assessment: systems at AUTONOMOUS level or
// above re-certify in six months, everything below in three.
func nextDue(started core.Timestamp, composite uint8) core.Timestamp {
	months := 3
	if composite >= 128 {
		months = 6
	}
	return core.NewTimestamp(started.Time().AddDate(0, months, 0))
}
