package testkit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"attest/domain/assessment"
	"attest/domain/core"
	"attest/ports"
)

// StubSystem is a deterministic collaborator for exercising the engine
// without a live system under test. Scores resolves a test name to its raw
// score; names absent from the map fall back to Default.
type StubSystem struct {
	Meta    ports.SystemMetadata
	Scores  map[core.TestName]float64
	Default float64
	MaxRaw  float64
	// Delay stalls every call, which lets timeout paths trigger reliably.
	Delay time.Duration
	// FailNames report an execution error instead of a score.
	FailNames map[core.TestName]bool
	// PanicNames panic inside the call to exercise fault isolation.
	PanicNames map[core.TestName]bool

	mu    sync.Mutex
	calls map[core.TestName]int
}

// NewPerfectSystem scores every test at the maximum.
func NewPerfectSystem(name string) *StubSystem {
	return &StubSystem{
		Meta:    ports.SystemMetadata{Name: name, Version: "1.0.0"},
		Default: 100,
		MaxRaw:  100,
	}
}

// NewScriptedSystem scores tests from the given table, with a fallback for
// names the table omits.
func NewScriptedSystem(name string, fallback float64, scores map[core.TestName]float64) *StubSystem {
	return &StubSystem{
		Meta:    ports.SystemMetadata{Name: name, Version: "1.0.0"},
		Scores:  scores,
		Default: fallback,
		MaxRaw:  100,
	}
}

func (s *StubSystem) ExecuteTest(ctx context.Context, name core.TestName, cfg ports.TestConfig) (assessment.TestResult, error) {
	s.mu.Lock()
	if s.calls == nil {
		s.calls = make(map[core.TestName]int)
	}
	s.calls[name]++
	s.mu.Unlock()

	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return assessment.TestResult{}, ctx.Err()
		}
	}
	if s.PanicNames[name] {
		panic(fmt.Sprintf("stub panic in %s", name))
	}
	if s.FailNames[name] {
		return assessment.TestResult{}, fmt.Errorf("stub failure in %s", name)
	}

	raw := s.Default
	if v, ok := s.Scores[name]; ok {
		raw = v
	}
	maxRaw := s.MaxRaw
	if maxRaw <= 0 {
		maxRaw = 100
	}
	return assessment.TestResult{
		Name:      name,
		Dimension: cfg.Dimension,
		RawScore:  raw,
		MaxScore:  maxRaw,
		Passed:    raw/maxRaw >= 0.5,
	}, nil
}

func (s *StubSystem) GetMetadata() ports.SystemMetadata {
	return s.Meta
}

// Calls reports how many times a test ran, which makes retry behavior
// observable in tests.
func (s *StubSystem) Calls(name core.TestName) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

// FlakySystem fails the first Failures calls of each test, then succeeds with
// Score. Retry semantics depend on this shape.
type FlakySystem struct {
	Meta     ports.SystemMetadata
	Failures int
	Score    float64

	mu    sync.Mutex
	calls map[core.TestName]int
}

func NewFlakySystem(name string, failures int, score float64) *FlakySystem {
	return &FlakySystem{
		Meta:     ports.SystemMetadata{Name: name, Version: "1.0.0"},
		Failures: failures,
		Score:    score,
		calls:    make(map[core.TestName]int),
	}
}

func (s *FlakySystem) ExecuteTest(_ context.Context, name core.TestName, cfg ports.TestConfig) (assessment.TestResult, error) {
	s.mu.Lock()
	s.calls[name]++
	n := s.calls[name]
	s.mu.Unlock()

	if n <= s.Failures {
		return assessment.TestResult{}, fmt.Errorf("transient failure %d in %s", n, name)
	}
	return assessment.TestResult{
		Name:      name,
		Dimension: cfg.Dimension,
		RawScore:  s.Score,
		MaxScore:  100,
		Passed:    s.Score >= 50,
	}, nil
}

func (s *FlakySystem) GetMetadata() ports.SystemMetadata {
	return s.Meta
}

func (s *FlakySystem) Calls(name core.TestName) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

// LifecycleSystem wraps a SystemPort with prepare/cleanup hooks so lifecycle
// failure paths can be driven from tests.
type LifecycleSystem struct {
	ports.SystemPort
	PrepareErr error
	CleanupErr error

	mu       sync.Mutex
	Prepared int
	Cleaned  int
}

func (s *LifecycleSystem) Prepare(context.Context) error {
	s.mu.Lock()
	s.Prepared++
	s.mu.Unlock()
	return s.PrepareErr
}

func (s *LifecycleSystem) Cleanup(context.Context) error {
	s.mu.Lock()
	s.Cleaned++
	s.mu.Unlock()
	return s.CleanupErr
}

var (
	_ ports.SystemPort      = (*StubSystem)(nil)
	_ ports.SystemPort      = (*FlakySystem)(nil)
	_ ports.SystemLifecycle = (*LifecycleSystem)(nil)
)
