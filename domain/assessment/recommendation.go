package assessment

import (
	"sort"

	"attest/domain/core"
)

// Priority ranks a recommendation. Order matters: Critical blocks deployment.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// rank makes priorities sortable (lower = more urgent).
func (p Priority) rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// Recommendation is one remediation item derived from a dimension gap.
type Recommendation struct {
	Dimension core.DimensionID `json:"dimension"`
	Priority  Priority         `json:"priority"`
	Title     string           `json:"title"`
	// ExpectedImpact estimates the composite points recoverable by closing
	// the gap: weight * (threshold - score) / 100. Ordering only - it never
	// feeds back into scoring.
	ExpectedImpact float64 `json:"expected_impact"`
	CurrentScore   float64 `json:"current_score"`
	TargetScore    float64 `json:"target_score"`
	Guidance       string  `json:"guidance"`
}

// SortRecommendations orders by (priority desc, expected impact desc,
// dimension asc). The dimension tie-break keeps output deterministic.
func SortRecommendations(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority.rank() < recs[j].Priority.rank()
		}
		if recs[i].ExpectedImpact != recs[j].ExpectedImpact {
			return recs[i].ExpectedImpact > recs[j].ExpectedImpact
		}
		return recs[i].Dimension < recs[j].Dimension
	})
}

// HasPriority reports whether any recommendation carries the given priority.
func HasPriority(recs []Recommendation, p Priority) bool {
	for _, r := range recs {
		if r.Priority == p {
			return true
		}
	}
	return false
}
