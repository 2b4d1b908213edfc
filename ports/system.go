package ports

import (
	"context"
	"time"

	"attest/domain/assessment"
	"attest/domain/core"
)

// TestConfig is the per-invocation envelope handed to the system under test.
type TestConfig struct {
	Name      core.TestName
	Dimension core.DimensionID
	Timeout   time.Duration
	// Parameters carries opaque, test-specific knobs. The engine never
	// inspects them.
	Parameters map[string]interface{}
}

// SystemMetadata describes the system being assessed.
type SystemMetadata struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Vendor       string            `json:"vendor,omitempty"`
	Description  string            `json:"description,omitempty"`
	Capabilities []string          `json:"capabilities,omitempty"`
	Limitations  []string          `json:"limitations,omitempty"`
	Environment  map[string]string `json:"environment,omitempty"`
}

// SystemPort is the narrow capability interface every system under test
// implements. The engine never special-cases concrete systems; test semantics
// live entirely behind ExecuteTest.
type SystemPort interface {
	// ExecuteTest runs one named test and reports its raw outcome. Errors are
	// contained at the single-test boundary and degrade to failing results.
	ExecuteTest(ctx context.Context, name core.TestName, cfg TestConfig) (assessment.TestResult, error)

	// GetMetadata describes the system; called once per run.
	GetMetadata() SystemMetadata
}

// SystemLifecycle is optionally implemented by systems that need setup or
// teardown around the whole run. Each hook is invoked exactly once; a failure
// in either is fatal to certification validity.
type SystemLifecycle interface {
	Prepare(ctx context.Context) error
	Cleanup(ctx context.Context) error
}
