package scoring

import (
	"github.com/montanaflynn/stats"

	"attest/domain/assessment"
	"attest/domain/core"
)

// AggregateDimension folds the four test results of one dimension into its
// DimensionScore. Every result is normalized fail-closed (errored, timed-out,
// or degenerate results count as zero) and the divisor is always four: a
// missing slot lowers the score, it is never dropped.
//
// The returned score is always usable; the error reports an incomplete slot
// set so the caller can mark the run invalid.
func AggregateDimension(dim assessment.Dimension, weight float64, results []assessment.TestResult) (assessment.DimensionScore, error) {
	var incomplete error
	if len(results) != assessment.TestsPerDimension {
		incomplete = core.NewAggregationError(string(dim.ID), len(results))
	}

	normalized := make([]float64, assessment.TestsPerDimension)
	contributing := make([]assessment.TestResult, assessment.TestsPerDimension)
	passed := 0
	for i := 0; i < assessment.TestsPerDimension; i++ {
		if i < len(results) {
			contributing[i] = results[i]
			normalized[i] = results[i].Normalized()
			if results[i].Passed && results[i].Error == "" && !results[i].TimedOut {
				passed++
			}
		} else {
			// Missing slot: fail-closed placeholder.
			contributing[i] = assessment.TestResult{
				Dimension: dim.ID,
				Index:     i,
				Error:     "unresolved",
			}
		}
	}

	// Full precision throughout; rounding is display-only.
	mean, _ := stats.Mean(normalized)
	min, _ := stats.Min(normalized)
	max, _ := stats.Max(normalized)
	median, _ := stats.Median(normalized)
	stdDev, _ := stats.StandardDeviation(normalized)

	return assessment.DimensionScore{
		Dimension:      dim.ID,
		Name:           dim.Name,
		Score:          mean,
		Weight:         weight,
		WeightedScore:  mean * weight / 100,
		Status:         assessment.StatusFromScore(mean),
		SafetyCritical: dim.SafetyCritical,
		Metrics: assessment.DimensionMetrics{
			Min:         min,
			Max:         max,
			Mean:        mean,
			Median:      median,
			StdDev:      stdDev,
			TestsPassed: passed,
			TestsFailed: assessment.TestsPerDimension - passed,
		},
		TestResults: contributing,
	}, incomplete
}
