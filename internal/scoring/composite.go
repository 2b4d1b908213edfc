package scoring

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"attest/domain/assessment"
	"attest/domain/core"
)

// Composite folds the 12 dimension scores into the 0-255 certification score:
//
//	composite = round( sum(score_i * weight_i) / 100 * 255 / 100 )
//
// Rounding is half-to-even on the final value so identical inputs yield the
// same byte on every platform; the clamp keeps the contract total even for
// out-of-range inputs that should never occur.
func Composite(scores []assessment.DimensionScore) (uint8, assessment.ScoreBreakdown, error) {
	if len(scores) != assessment.DimensionCount() {
		return 0, assessment.ScoreBreakdown{}, core.NewAggregationError("composite", len(scores))
	}

	values := make([]float64, len(scores))
	weights := make([]float64, len(scores))
	contributions := make([]assessment.DimensionContribution, len(scores))
	totalWeighted := 0.0
	for i, ds := range scores {
		values[i] = ds.Score
		weights[i] = ds.Weight
		totalWeighted += ds.WeightedScore
		contributions[i] = assessment.DimensionContribution{
			Dimension:     ds.Dimension,
			Score:         ds.Score,
			Weight:        ds.Weight,
			WeightedScore: ds.WeightedScore,
		}
	}

	// Weighted mean over weights summing to 100 equals sum(s*w)/100.
	weightedMean := stat.Mean(values, weights)
	composite := math.RoundToEven(weightedMean * 255 / 100)

	clamped := uint8(math.Min(255, math.Max(0, composite)))

	return clamped, assessment.ScoreBreakdown{
		Contributions:      contributions,
		TotalWeightedScore: totalWeighted,
		CompositeScore:     clamped,
	}, nil
}
