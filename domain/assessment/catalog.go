package assessment

import (
	"fmt"
	"strings"
	"time"

	"attest/domain/core"
)

// TestDefinition is one entry of the static battery: which dimension it
// measures, its slot inside that dimension, and how its execution is bounded.
// Definitions are resolved once at config-load time and never mutated during a
// run.
type TestDefinition struct {
	Dimension core.DimensionID `json:"dimension"`
	Name      core.TestName    `json:"name"`
	// Index is the test's slot within its dimension (0-3). Together with the
	// dimension's position in the canonical table it fixes the test's place in
	// the result table, independent of completion order.
	Index      int           `json:"index"`
	Timeout    time.Duration `json:"timeout"`
	RetryCount int           `json:"retry_count"`
	// Idempotent marks tests that may safely be re-invoked; only these are
	// ever retried.
	Idempotent bool `json:"idempotent"`
	// DomainTimeouts overrides Timeout for specific operating domains
	// (e.g. longer deadlines for medical certification). Pure data - the
	// executor never branches on domain.
	DomainTimeouts map[string]time.Duration `json:"domain_timeouts,omitempty"`
}

// catalogNames lists the four test names per dimension, in slot order.
var catalogNames = map[core.DimensionID][TestsPerDimension]string{
	DimCognitiveAutonomy:       {"novel_problem_solving", "creative_solution_generation", "abstract_reasoning", "meta_cognitive_awareness"},
	DimOperationalIndependence: {"autonomous_task_execution", "resource_management", "error_recovery", "continuous_operation"},
	DimLearningAdaptation:      {"transfer_learning", "online_learning", "adaptation_speed", "learning_efficiency"},
	DimDecisionMaking:          {"ethical_reasoning", "risk_assessment", "multi_criteria_optimization", "long_term_planning"},
	DimCommunication:           {"natural_language_understanding", "intent_recognition", "explanation_generation", "multi_modal_communication"},
	DimSafetyAlignment:         {"value_alignment", "harm_prevention", "robustness_testing", "predictability"},
	DimGeneralization:          {"domain_transfer", "zero_shot_learning", "abstraction_capability", "context_adaptation"},
	DimSelfAwareness:           {"capability_assessment", "limitation_recognition", "uncertainty_quantification", "performance_monitoring"},
	DimScalability:             {"computational_efficiency", "parallel_processing", "resource_optimization", "load_handling"},
	DimIntegration:             {"api_compatibility", "data_integration", "system_interoperability", "deployment_flexibility"},
	DimInnovation:              {"creative_generation", "solution_novelty", "paradigm_shifting", "innovative_combination"},
	DimTemporalReasoning:       {"temporal_logic", "causal_reasoning", "future_prediction", "temporal_planning"},
}

// Catalog returns the canonical 48-test battery in execution order (canonical
// dimension order, then slot index). Timeouts and retries carry the given
// defaults; domain resolution happens at config load via ResolveTimeout.
func Catalog(defaultTimeout time.Duration) []TestDefinition {
	defs := make([]TestDefinition, 0, TotalTests())
	for _, dim := range dimensions {
		names := catalogNames[dim.ID]
		for i, name := range names {
			defs = append(defs, TestDefinition{
				Dimension:  dim.ID,
				Name:       core.TestName(name),
				Index:      i,
				Timeout:    defaultTimeout,
				Idempotent: true,
			})
		}
	}
	return defs
}

// ResolveTimeout returns the effective deadline for a domain, falling back to
// the definition's base timeout.
func (d TestDefinition) ResolveTimeout(domain string) time.Duration {
	if t, ok := d.DomainTimeouts[domain]; ok && t > 0 {
		return t
	}
	return d.Timeout
}

// SlotIndex returns the test's position in the 48-slot result table.
func (d TestDefinition) SlotIndex() (int, error) {
	if d.Index < 0 || d.Index >= TestsPerDimension {
		return 0, fmt.Errorf("test %s: index %d out of range", d.Name, d.Index)
	}
	for pos, dim := range dimensions {
		if dim.ID == d.Dimension {
			return pos*TestsPerDimension + d.Index, nil
		}
	}
	return 0, fmt.Errorf("test %s: unknown dimension %s", d.Name, d.Dimension)
}

// ValidateBattery checks that a definition list covers every dimension with
// exactly four distinct slots. Runs before any test executes.
func ValidateBattery(defs []TestDefinition) error {
	if len(defs) != TotalTests() {
		return core.NewConfigError("battery", fmt.Sprintf("expected %d test definitions, got %d", TotalTests(), len(defs)))
	}
	seen := make(map[int]core.TestName, len(defs))
	for _, def := range defs {
		slot, err := def.SlotIndex()
		if err != nil {
			return core.NewConfigError("battery", err.Error())
		}
		if prev, dup := seen[slot]; dup {
			return core.NewConfigError("battery", fmt.Sprintf("tests %s and %s share slot %d", prev, def.Name, slot))
		}
		seen[slot] = def.Name
	}
	return nil
}

// CatalogFingerprint hashes the battery layout for the reproducibility record.
func CatalogFingerprint(defs []TestDefinition) core.CatalogHash {
	var data strings.Builder
	for _, def := range defs {
		data.WriteString(string(def.Dimension))
		data.WriteString("/")
		data.WriteString(string(def.Name))
		data.WriteString(fmt.Sprintf("#%d@%dms+%d;", def.Index, def.Timeout.Milliseconds(), def.RetryCount))
	}
	return core.NewCatalogHash([]byte(data.String()))
}
