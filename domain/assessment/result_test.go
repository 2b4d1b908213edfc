package assessment

import "testing"

func TestNormalizedFailClosed(t *testing.T) {
	tests := []struct {
		name   string
		result TestResult
		want   float64
	}{
		{"full score", TestResult{RawScore: 100, MaxScore: 100}, 100},
		{"partial score", TestResult{RawScore: 40, MaxScore: 80}, 50},
		{"errored", TestResult{RawScore: 100, MaxScore: 100, Error: "boom"}, 0},
		{"timed out", TestResult{RawScore: 100, MaxScore: 100, TimedOut: true}, 0},
		{"zero max", TestResult{RawScore: 50, MaxScore: 0}, 0},
		{"negative max", TestResult{RawScore: 50, MaxScore: -1}, 0},
		{"negative raw clamps low", TestResult{RawScore: -10, MaxScore: 100}, 0},
		{"overshoot clamps high", TestResult{RawScore: 150, MaxScore: 100}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Normalized(); got != tt.want {
				t.Errorf("Normalized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  DimensionStatus
	}{
		{100, StatusExcellent},
		{90, StatusExcellent},
		{89.9, StatusGood},
		{70, StatusGood},
		{69.9, StatusAdequate},
		{50, StatusAdequate},
		{49.9, StatusPoor},
		{30, StatusPoor},
		{29.9, StatusCritical},
		{0, StatusCritical},
	}
	for _, tt := range tests {
		if got := StatusFromScore(tt.score); got != tt.want {
			t.Errorf("StatusFromScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestWeakestDimensions(t *testing.T) {
	r := AssessmentResult{
		DimensionScores: []DimensionScore{
			{Dimension: DimCognitiveAutonomy, Score: 80},
			{Dimension: DimSafetyAlignment, Score: 20},
			{Dimension: DimCommunication, Score: 50},
		},
	}
	weakest := r.WeakestDimensions(2)
	if len(weakest) != 2 {
		t.Fatalf("got %d dimensions, want 2", len(weakest))
	}
	if weakest[0].Dimension != DimSafetyAlignment || weakest[1].Dimension != DimCommunication {
		t.Errorf("weakest order = %s, %s", weakest[0].Dimension, weakest[1].Dimension)
	}
}
