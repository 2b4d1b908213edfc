package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"attest/domain/assessment"
	"attest/domain/core"
	"attest/internal/config"
	"attest/internal/testkit"
)

func testConfig() *config.Config {
	cfg := config.General()
	cfg.MaxConcurrent = 8
	cfg.TestTimeout = time.Second
	return cfg
}

func TestAssessPerfectSystem(t *testing.T) {
	svc := NewAssessmentService(testConfig(), nil)
	result, err := svc.Assess(context.Background(), testkit.NewPerfectSystem("atlas"))
	require.NoError(t, err)

	require.Equal(t, uint8(255), result.CompositeScore)
	require.Equal(t, "MAXIMUM", result.Level.Name)
	require.Equal(t, assessment.AuditCertified, result.AuditStatus)
	require.True(t, result.SafeForDeployment)
	require.Empty(t, result.Recommendations)
	require.Equal(t, "atlas", result.SystemName)
	require.Len(t, result.DimensionScores, assessment.DimensionCount())
	require.Equal(t, assessment.TotalTests(), result.Metadata.TestsExecuted)
	require.Equal(t, assessment.TotalTests(), result.Metadata.TestsPassed)
	require.NotEmpty(t, result.ConfigHash)
	require.NotEmpty(t, result.CatalogHash)
}

func TestAssessSafetyBreachBlocksDeployment(t *testing.T) {
	sut := testkit.NewScriptedSystem("icarus", 100, map[core.TestName]float64{
		"value_alignment":    0,
		"harm_prevention":    0,
		"robustness_testing": 0,
		"predictability":     0,
	})

	svc := NewAssessmentService(testConfig(), nil)
	result, err := svc.Assess(context.Background(), sut)
	require.NoError(t, err)

	require.Equal(t, assessment.AuditFailed, result.AuditStatus)
	require.False(t, result.SafeForDeployment)
	require.NotEmpty(t, result.CriticalRecommendations())
	require.Equal(t, assessment.DimSafetyAlignment, result.CriticalRecommendations()[0].Dimension)

	// All other dimensions at 100: composite = (100 - 8) * 255 / 100.
	require.Equal(t, uint8(235), result.CompositeScore)

	weakest := result.WeakestDimensions(1)
	require.Equal(t, assessment.DimSafetyAlignment, weakest[0].Dimension)
}

func TestAssessDeterministicAcrossRuns(t *testing.T) {
	sut := testkit.NewScriptedSystem("steady", 85, map[core.TestName]float64{
		"transfer_learning": 60,
		"online_learning":   70,
	})

	svc := NewAssessmentService(testConfig(), nil)
	a, err := svc.Assess(context.Background(), sut)
	require.NoError(t, err)
	b, err := svc.Assess(context.Background(), sut)
	require.NoError(t, err)

	require.Equal(t, a.CompositeScore, b.CompositeScore)
	require.Equal(t, a.Level, b.Level)
	require.Equal(t, a.ConfigHash, b.ConfigHash)
	require.Equal(t, a.CatalogHash, b.CatalogHash)
	require.Equal(t, a.AuditStatus, b.AuditStatus)
	require.Equal(t, a.Recommendations, b.Recommendations)
	for i := range a.DimensionScores {
		require.Equal(t, a.DimensionScores[i].Score, b.DimensionScores[i].Score)
	}
	require.NotEqual(t, a.AssessmentID, b.AssessmentID)
}

func TestAssessInvalidConfigFailsFast(t *testing.T) {
	cfg := testConfig()
	cfg.Weights[assessment.DimCognitiveAutonomy] = 50 // breaks the weight sum

	svc := NewAssessmentService(cfg, nil)
	_, err := svc.Assess(context.Background(), testkit.NewPerfectSystem("atlas"))
	require.Error(t, err)
	require.ErrorIs(t, err, core.ErrWeightSum)
}

func TestAssessPrepareFailureInvalidatesRun(t *testing.T) {
	sut := &testkit.LifecycleSystem{
		SystemPort: testkit.NewPerfectSystem("atlas"),
		PrepareErr: errors.New("sandbox unavailable"),
	}

	svc := NewAssessmentService(testConfig(), nil)
	result, err := svc.Assess(context.Background(), sut)
	require.NoError(t, err, "lifecycle failures degrade into the result, not an error")

	require.Equal(t, assessment.AuditInvalid, result.AuditStatus)
	require.False(t, result.SafeForDeployment)
	require.Equal(t, 1, sut.Prepared)
	require.Equal(t, 0, sut.Cleaned, "cleanup must not run after a failed prepare")
	require.NotEmpty(t, result.Metadata.Errors)
}

func TestAssessCleanupFailureInvalidatesRun(t *testing.T) {
	sut := &testkit.LifecycleSystem{
		SystemPort: testkit.NewPerfectSystem("atlas"),
		CleanupErr: errors.New("teardown hung"),
	}

	svc := NewAssessmentService(testConfig(), nil)
	result, err := svc.Assess(context.Background(), sut)
	require.NoError(t, err)

	require.Equal(t, assessment.AuditInvalid, result.AuditStatus)
	require.Equal(t, 1, sut.Prepared)
	require.Equal(t, 1, sut.Cleaned)
	// Scores were still computed; only certification is withheld.
	require.Len(t, result.DimensionScores, assessment.DimensionCount())
}

func TestAssessLifecycleRunsOncePerAssessment(t *testing.T) {
	sut := &testkit.LifecycleSystem{SystemPort: testkit.NewPerfectSystem("atlas")}

	svc := NewAssessmentService(testConfig(), nil)
	_, err := svc.Assess(context.Background(), sut)
	require.NoError(t, err)
	require.Equal(t, 1, sut.Prepared)
	require.Equal(t, 1, sut.Cleaned)
}

func TestAssessRetriesFlakyTests(t *testing.T) {
	cfg := testConfig()
	for _, name := range []string{"value_alignment", "harm_prevention", "robustness_testing", "predictability"} {
		cfg.Retries[core.TestName(name)] = 1
	}
	sut := testkit.NewFlakySystem("flaky", 1, 100)

	svc := NewAssessmentService(cfg, nil)
	result, err := svc.Assess(context.Background(), sut)
	require.NoError(t, err)

	for _, ds := range result.DimensionScores {
		if ds.Dimension == assessment.DimSafetyAlignment {
			require.Equal(t, 100.0, ds.Score, "retried safety tests should recover")
		} else {
			require.Equal(t, 0.0, ds.Score, "tests without a retry budget keep their first failure")
		}
	}
}

func TestAssessHistory(t *testing.T) {
	svc := NewAssessmentService(testConfig(), nil)
	_, err := svc.Assess(context.Background(), testkit.NewPerfectSystem("atlas"))
	require.NoError(t, err)
	_, err = svc.Assess(context.Background(), testkit.NewPerfectSystem("borealis"))
	require.NoError(t, err)

	history := svc.History()
	require.Len(t, history, 2)
	require.Equal(t, "atlas", history[0].SystemName)
	require.Equal(t, "borealis", history[1].SystemName)
}
