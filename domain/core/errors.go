package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors (fatal before any test runs)
	ErrConfigInvalid    = errors.New("invalid assessment configuration")
	ErrWeightSum        = fmt.Errorf("%w: dimension weights must sum to 100", ErrConfigInvalid)
	ErrMissingThreshold = fmt.Errorf("%w: missing dimension threshold", ErrConfigInvalid)

	// Execution errors (contained at the single-test boundary)
	ErrTestExecution = errors.New("test execution failed")
	ErrTestTimeout   = errors.New("test timed out")

	// Run-level errors
	ErrAggregationIncomplete = errors.New("aggregation incomplete")
	ErrSystemPreparation     = errors.New("system preparation failed")
	ErrSystemCleanup         = errors.New("system cleanup failed")

	// Export errors (surfaced to caller, never invalidate the result)
	ErrExportFailed = errors.New("result export failed")
)

// Error constructors with context
func NewConfigError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrConfigInvalid, field, reason)
}

func NewTimeoutError(testName string, timeoutMs int64) error {
	return fmt.Errorf("%w: test %q exceeded %dms", ErrTestTimeout, testName, timeoutMs)
}

func NewExecutionError(testName string, err error) error {
	return fmt.Errorf("%w: test %q: %v", ErrTestExecution, testName, err)
}

func NewAggregationError(dimension string, resolved int) error {
	return fmt.Errorf("%w: dimension %s resolved %d of 4 results", ErrAggregationIncomplete, dimension, resolved)
}

// Error checking helpers
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigInvalid)
}

func IsTimeoutError(err error) bool {
	return errors.Is(err, ErrTestTimeout)
}

func IsExecutionError(err error) bool {
	return errors.Is(err, ErrTestExecution) || errors.Is(err, ErrTestTimeout)
}

func IsFatalRunError(err error) bool {
	return errors.Is(err, ErrAggregationIncomplete) ||
		errors.Is(err, ErrSystemPreparation) ||
		errors.Is(err, ErrSystemCleanup)
}

func IsExportError(err error) bool {
	return errors.Is(err, ErrExportFailed)
}
