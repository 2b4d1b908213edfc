package ports

import (
	"attest/domain/assessment"
)

// RunObserver receives audit-point callbacks during a run. Observers replace
// ambient metrics/tracing registries: the engine calls them at defined points
// and holds no global state. Implementations must be safe for concurrent use;
// TestCompleted fires from worker goroutines.
type RunObserver interface {
	TestCompleted(result assessment.TestResult)
	DimensionAggregated(score assessment.DimensionScore)
	RunFinished(result *assessment.AssessmentResult)
}

// NopObserver discards all callbacks.
type NopObserver struct{}

func (NopObserver) TestCompleted(assessment.TestResult)           {}
func (NopObserver) DimensionAggregated(assessment.DimensionScore) {}
func (NopObserver) RunFinished(*assessment.AssessmentResult)      {}
