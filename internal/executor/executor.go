package executor

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"attest/domain/assessment"
	"attest/domain/core"
	"attest/ports"
)

// Executor runs the 48-test battery against a system under test with a
// bounded worker pool. Results land in a pre-sized, index-addressed slot
// table - one writer per slot - so output order is fixed by the battery
// layout, never by completion order.
type Executor struct {
	maxConcurrent int64
	observer      ports.RunObserver
}

// New creates an executor. maxConcurrent must be >= 1 (validated at config
// load); the observer receives a callback per completed test.
func New(maxConcurrent int, observer ports.RunObserver) *Executor {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	return &Executor{
		maxConcurrent: int64(maxConcurrent),
		observer:      observer,
	}
}

// Run executes every definition and returns exactly one TestResult per slot,
// in battery order. Single-test failures degrade to failing results; the only
// errors returned are defects in the battery itself. Cancelling ctx (the
// global run deadline) resolves still-outstanding slots as timed out and
// returns promptly; already-resolved slots are retained unchanged.
func (e *Executor) Run(ctx context.Context, sys ports.SystemPort, defs []assessment.TestDefinition) ([]assessment.TestResult, error) {
	slots := make([]assessment.TestResult, len(defs))
	sem := semaphore.NewWeighted(e.maxConcurrent)
	done := make(chan int, len(defs))

	for i, def := range defs {
		if _, err := def.SlotIndex(); err != nil {
			return nil, core.NewConfigError("battery", err.Error())
		}

		go func(slot int, def assessment.TestDefinition) {
			defer func() { done <- slot }()

			if err := sem.Acquire(ctx, 1); err != nil {
				// Global deadline fired before this test was dispatched.
				slots[slot] = deadlineResult(def, 0)
				return
			}
			defer sem.Release(1)

			slots[slot] = e.runSingle(ctx, sys, def)
		}(i, def)
	}

	for range defs {
		slot := <-done
		e.observer.TestCompleted(slots[slot])
	}

	return slots, nil
}

// runSingle executes one test with its hard deadline and bounded retry.
// A retry attempt replaces the recorded result only when it is neither an
// error nor a timeout; only idempotent tests are ever re-invoked.
func (e *Executor) runSingle(ctx context.Context, sys ports.SystemPort, def assessment.TestDefinition) assessment.TestResult {
	attempts := 1 + def.RetryCount
	if !def.Idempotent {
		attempts = 1
	}

	var recorded assessment.TestResult
	for attempt := 1; attempt <= attempts; attempt++ {
		res := e.invoke(ctx, sys, def, attempt)
		if res.Error == "" && !res.TimedOut {
			return res
		}
		if attempt == 1 {
			recorded = res
		}
		if ctx.Err() != nil {
			// Global deadline: stop retrying.
			break
		}
	}
	return recorded
}

// invoke performs one collaborator call under the test's deadline. Panics and
// errors from the collaborator are caught here and converted to failing
// results; nothing scoped to one test escapes this boundary.
func (e *Executor) invoke(ctx context.Context, sys ports.SystemPort, def assessment.TestDefinition, attempt int) assessment.TestResult {
	testCtx, cancel := context.WithTimeout(ctx, def.Timeout)
	defer cancel()

	cfg := ports.TestConfig{
		Name:      def.Name,
		Dimension: def.Dimension,
		Timeout:   def.Timeout,
	}

	type outcome struct {
		result assessment.TestResult
		err    error
	}
	ch := make(chan outcome, 1)
	start := time.Now()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		res, err := sys.ExecuteTest(testCtx, def.Name, cfg)
		ch <- outcome{result: res, err: err}
	}()

	select {
	case out := <-ch:
		duration := time.Since(start)
		if out.err != nil {
			return failedResult(def, attempt, duration, core.NewExecutionError(string(def.Name), out.err))
		}
		res := out.result
		// Identity comes from the definition, not the collaborator.
		res.Name = def.Name
		res.Dimension = def.Dimension
		res.Index = def.Index
		res.Duration = duration
		res.Attempts = attempt
		return res

	case <-testCtx.Done():
		return deadlineResult(def, attempt)
	}
}

func failedResult(def assessment.TestDefinition, attempt int, duration time.Duration, err error) assessment.TestResult {
	return assessment.TestResult{
		Name:      def.Name,
		Dimension: def.Dimension,
		Index:     def.Index,
		RawScore:  0,
		MaxScore:  0,
		Passed:    false,
		Duration:  duration,
		Attempts:  attempt,
		Error:     err.Error(),
	}
}

func deadlineResult(def assessment.TestDefinition, attempt int) assessment.TestResult {
	return assessment.TestResult{
		Name:      def.Name,
		Dimension: def.Dimension,
		Index:     def.Index,
		RawScore:  0,
		MaxScore:  0,
		Passed:    false,
		Duration:  def.Timeout,
		Attempts:  attempt,
		Error:     core.NewTimeoutError(string(def.Name), def.Timeout.Milliseconds()).Error(),
		TimedOut:  true,
	}
}
