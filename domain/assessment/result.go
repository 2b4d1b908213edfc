package assessment

import (
	"time"

	"attest/domain/core"
)

// TestResult is the immutable outcome of one test invocation. Exactly one is
// created per battery slot; errored and timed-out invocations still produce a
// (failing) result so the divisor of every dimension stays four.
type TestResult struct {
	Name      core.TestName    `json:"name"`
	Dimension core.DimensionID `json:"dimension"`
	Index     int              `json:"index"`
	RawScore  float64          `json:"raw_score"`
	MaxScore  float64          `json:"max_score"`
	Passed    bool             `json:"passed"`
	Duration  time.Duration    `json:"duration"`
	// Attempts counts invocations including retries (0 when never invoked,
	// e.g. cancelled by the global deadline before dispatch).
	Attempts int `json:"attempts"`
	// Error carries the failure reason for errored or timed-out tests.
	Error string `json:"error,omitempty"`
	// TimedOut distinguishes deadline expiry from collaborator errors.
	TimedOut bool `json:"timed_out,omitempty"`
}

// Normalized returns the fail-closed 0-100 score for this result: zero for
// errored, timed-out, or degenerate (MaxScore <= 0) results.
func (r TestResult) Normalized() float64 {
	if r.Error != "" || r.TimedOut || r.MaxScore <= 0 {
		return 0
	}
	score := r.RawScore / r.MaxScore * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// DimensionMetrics summarizes the four normalized test scores of a dimension.
type DimensionMetrics struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	StdDev      float64 `json:"std_dev"`
	TestsPassed int     `json:"tests_passed"`
	TestsFailed int     `json:"tests_failed"`
}

// DimensionScore is the derived, read-only score of one dimension: the mean of
// its four fail-closed test scores, plus reporting metadata.
type DimensionScore struct {
	Dimension core.DimensionID `json:"dimension"`
	Name      string           `json:"name"`
	// Score keeps full floating precision; rounding is display-only.
	Score          float64          `json:"score"`
	Weight         float64          `json:"weight"`
	WeightedScore  float64          `json:"weighted_score"`
	Status         DimensionStatus  `json:"status"`
	SafetyCritical bool             `json:"safety_critical"`
	Metrics        DimensionMetrics `json:"metrics"`
	// TestResults holds the four contributing results in slot order.
	TestResults []TestResult `json:"test_results"`
}

// RoundedScore exposes the display integer without disturbing the stored
// precision.
func (d DimensionScore) RoundedScore() int {
	return int(d.Score + 0.5)
}

// DimensionContribution is one row of the composite score breakdown.
type DimensionContribution struct {
	Dimension     core.DimensionID `json:"dimension"`
	Score         float64          `json:"score"`
	Weight        float64          `json:"weight"`
	WeightedScore float64          `json:"weighted_score"`
}

// ScoreBreakdown explains how the composite was folded from the dimensions.
type ScoreBreakdown struct {
	Contributions      []DimensionContribution `json:"contributions"`
	TotalWeightedScore float64                 `json:"total_weighted_score"`
	CompositeScore     uint8                   `json:"composite_score"`
}

// AuditStatus is the categorical outcome of a run.
type AuditStatus string

const (
	// AuditCertified: the deployment gate passed with no outstanding High
	// recommendations.
	AuditCertified AuditStatus = "certified"
	// AuditConditional: the gate passed but High recommendations remain.
	AuditConditional AuditStatus = "conditional"
	// AuditFailed: the deployment gate did not pass.
	AuditFailed AuditStatus = "failed"
	// AuditInvalid: aggregation could not complete (missing results or a
	// fatal collaborator lifecycle failure); scores are not certifiable.
	AuditInvalid AuditStatus = "invalid"
)

// ExecutionMetadata records how the run went, for the audit trail. Duration
// fields are excluded from the reproducibility comparison.
type ExecutionMetadata struct {
	TotalDuration time.Duration `json:"total_duration"`
	TestsExecuted int           `json:"tests_executed"`
	TestsPassed   int           `json:"tests_passed"`
	TestsFailed   int           `json:"tests_failed"`
	Errors        []string      `json:"errors,omitempty"`
}

// AssessmentResult is the unit handed to exporters and stores: every field of
// the run, finalized once and append-only thereafter.
type AssessmentResult struct {
	AssessmentID     core.AssessmentID `json:"assessment_id"`
	SystemName       string            `json:"system_name"`
	SystemVersion    string            `json:"system_version,omitempty"`
	FrameworkVersion string            `json:"framework_version"`
	Domain           string            `json:"domain"`
	Timestamp        core.Timestamp    `json:"timestamp"`
	ConfigHash       core.ConfigHash   `json:"config_hash"`
	CatalogHash      core.CatalogHash  `json:"catalog_hash"`

	DimensionScores []DimensionScore `json:"dimension_scores"`
	CompositeScore  uint8            `json:"composite_score"`
	Breakdown       ScoreBreakdown   `json:"breakdown"`
	Level           Level            `json:"level"`

	AuditStatus       AuditStatus      `json:"audit_status"`
	Recommendations   []Recommendation `json:"recommendations"`
	SafeForDeployment bool             `json:"safe_for_deployment"`
	NextAssessmentDue core.Timestamp   `json:"next_assessment_due"`

	Metadata ExecutionMetadata `json:"metadata"`
}

// TestResults flattens the per-dimension results back into battery order.
func (r *AssessmentResult) TestResults() []TestResult {
	out := make([]TestResult, 0, TotalTests())
	for _, ds := range r.DimensionScores {
		out = append(out, ds.TestResults...)
	}
	return out
}

// CriticalRecommendations returns the blocking subset.
func (r *AssessmentResult) CriticalRecommendations() []Recommendation {
	var out []Recommendation
	for _, rec := range r.Recommendations {
		if rec.Priority == PriorityCritical {
			out = append(out, rec)
		}
	}
	return out
}

// WeakestDimensions returns up to n dimensions ordered by ascending score.
func (r *AssessmentResult) WeakestDimensions(n int) []DimensionScore {
	sorted := make([]DimensionScore, len(r.DimensionScores))
	copy(sorted, r.DimensionScores)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Score < sorted[j-1].Score; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
