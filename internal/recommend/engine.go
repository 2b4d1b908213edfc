package recommend

import (
	"fmt"

	"attest/domain/assessment"
	"attest/domain/core"
	"attest/internal/config"
)

// guidance holds the static remediation text per dimension.
type guidance struct {
	title  string
	advice string
}

var guidanceTable = map[core.DimensionID]guidance{
	assessment.DimCognitiveAutonomy: {
		title:  "Strengthen independent reasoning",
		advice: "Expand novel problem-solving and abstract reasoning coverage; reduce reliance on templated solution paths.",
	},
	assessment.DimOperationalIndependence: {
		title:  "Improve unsupervised operation",
		advice: "Harden error recovery and resource management so the system sustains operation without human intervention.",
	},
	assessment.DimLearningAdaptation: {
		title:  "Accelerate adaptation",
		advice: "Improve transfer and online learning so performance holds when conditions shift from the training regime.",
	},
	assessment.DimDecisionMaking: {
		title:  "Raise decision quality",
		advice: "Strengthen ethical reasoning, risk assessment, and long-term planning before widening the system's authority.",
	},
	assessment.DimCommunication: {
		title:  "Improve communication fidelity",
		advice: "Close gaps in intent recognition and explanation generation; decisions must be explainable to operators.",
	},
	assessment.DimSafetyAlignment: {
		title:  "Close safety and alignment gaps",
		advice: "Prioritize value alignment and harm prevention; these gate deployment ahead of every capability dimension.",
	},
	assessment.DimGeneralization: {
		title:  "Broaden domain transfer",
		advice: "Improve zero-shot performance and context adaptation outside the primary operating domain.",
	},
	assessment.DimSelfAwareness: {
		title:  "Improve capability self-assessment",
		advice: "The system should recognize its own limits and quantify uncertainty instead of overcommitting.",
	},
	assessment.DimScalability: {
		title:  "Address scale degradation",
		advice: "Profile computational efficiency and load handling at production scale.",
	},
	assessment.DimIntegration: {
		title:  "Improve interoperability",
		advice: "Close API compatibility and data integration gaps with surrounding systems.",
	},
	assessment.DimInnovation: {
		title:  "Encourage novel solutions",
		advice: "Measure and reward solution novelty where the operating domain permits exploration.",
	},
	assessment.DimTemporalReasoning: {
		title:  "Strengthen temporal reasoning",
		advice: "Improve causal and future-state reasoning for time-dependent tasks.",
	},
}

// Generate performs the threshold-driven gap analysis of a finished scoring
// pass. One recommendation per dimension at most:
//
//   - Critical: safety-critical dimension below the domain's hard safety floor
//   - High: below the domain minimum (but above the floor)
//   - Medium: below the target threshold
//   - Low: below the optimal threshold (stylistic/optimization gaps)
//
// Expected impact (weight * gap / 100) orders the output; it never mutates
// scores. Output ordering is fully deterministic.
func Generate(cfg *config.Config, scores []assessment.DimensionScore) []assessment.Recommendation {
	recs := make([]assessment.Recommendation, 0, len(scores))

	for _, ds := range scores {
		th := cfg.Thresholds[ds.Dimension]

		var priority assessment.Priority
		var target float64
		switch {
		case ds.SafetyCritical && ds.Score < cfg.SafetyFloor:
			priority, target = assessment.PriorityCritical, th.Minimum
		case ds.Score < th.Minimum:
			priority, target = assessment.PriorityHigh, th.Minimum
		case ds.Score < th.Target:
			priority, target = assessment.PriorityMedium, th.Target
		case ds.Score < th.Optimal:
			priority, target = assessment.PriorityLow, th.Optimal
		default:
			continue
		}

		g := guidanceTable[ds.Dimension]
		recs = append(recs, assessment.Recommendation{
			Dimension:      ds.Dimension,
			Priority:       priority,
			Title:          fmt.Sprintf("%s (%s at %.1f, needs %.1f)", g.title, ds.Name, ds.Score, target),
			ExpectedImpact: ds.Weight * (target - ds.Score) / 100,
			CurrentScore:   ds.Score,
			TargetScore:    target,
			Guidance:       g.advice,
		})
	}

	assessment.SortRecommendations(recs)
	return recs
}
