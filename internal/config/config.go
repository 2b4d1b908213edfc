package config

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"attest/domain/assessment"
	"attest/domain/core"
)

// FrameworkVersion is stamped into every result for the audit trail.
const FrameworkVersion = "1.0.0"

// Operating domains with specialized certification thresholds.
const (
	DomainGeneral                = "general"
	DomainMedical                = "medical"
	DomainFinancial              = "financial"
	DomainAutonomousVehicles     = "autonomous_vehicles"
	DomainCriticalInfrastructure = "critical_infrastructure"
)

// Thresholds holds the per-dimension remediation bars. Minimum gates
// certification; Target marks where Medium-priority gaps end; scores at or
// above Optimal raise no recommendation at all.
type Thresholds struct {
	Minimum float64 `yaml:"minimum"`
	Target  float64 `yaml:"target"`
	Optimal float64 `yaml:"optimal"`
}

// Config is the immutable snapshot governing one assessment run. Build it via
// a domain constructor (or Load), then treat it as read-only; Hash() is the
// reproducibility fingerprint stored on the result.
type Config struct {
	Domain string

	// Weights maps every dimension to its share of the composite. Must sum
	// to 100 within 1e-6; validated before any test runs.
	Weights map[core.DimensionID]float64

	// Thresholds must cover all 12 dimensions.
	Thresholds map[core.DimensionID]Thresholds

	// SafetyFloor is the hard floor for safety-critical dimensions; falling
	// below it raises a Critical recommendation and blocks deployment.
	SafetyFloor float64

	// GlobalMinimum is the composite score (0-255) required by the
	// deployment gate.
	GlobalMinimum uint8

	MaxConcurrent int
	TestTimeout   time.Duration
	// RunDeadline bounds the whole run; zero means no global deadline.
	RunDeadline time.Duration

	// Retries overrides the catalog retry count for named tests.
	Retries map[core.TestName]int

	battery []assessment.TestDefinition
	hash    core.ConfigHash
}

// weightTolerance bounds floating drift in the weight-sum check.
const weightTolerance = 1e-6

// General returns the default certification profile.
func General() *Config {
	return newDomainConfig(DomainGeneral, 70, 64, 5*time.Minute)
}

// Medical applies the strictest per-test deadlines and a 90-point safety floor.
func Medical() *Config {
	return newDomainConfig(DomainMedical, 90, 96, 10*time.Minute)
}

// Financial profile.
func Financial() *Config {
	return newDomainConfig(DomainFinancial, 85, 96, 5*time.Minute)
}

// AutonomousVehicles carries the highest safety floor of any domain.
func AutonomousVehicles() *Config {
	return newDomainConfig(DomainAutonomousVehicles, 95, 128, 5*time.Minute)
}

// CriticalInfrastructure profile.
func CriticalInfrastructure() *Config {
	return newDomainConfig(DomainCriticalInfrastructure, 90, 96, 5*time.Minute)
}

// ForDomain returns the profile for a named domain, defaulting to general.
func ForDomain(domain string) (*Config, error) {
	switch domain {
	case DomainGeneral, "":
		return General(), nil
	case DomainMedical:
		return Medical(), nil
	case DomainFinancial:
		return Financial(), nil
	case DomainAutonomousVehicles:
		return AutonomousVehicles(), nil
	case DomainCriticalInfrastructure:
		return CriticalInfrastructure(), nil
	default:
		return nil, core.NewConfigError("domain", fmt.Sprintf("unknown domain %q", domain))
	}
}

func newDomainConfig(domain string, safetyFloor float64, globalMinimum uint8, testTimeout time.Duration) *Config {
	cfg := &Config{
		Domain:        domain,
		Weights:       make(map[core.DimensionID]float64, assessment.DimensionCount()),
		Thresholds:    make(map[core.DimensionID]Thresholds, assessment.DimensionCount()),
		SafetyFloor:   safetyFloor,
		GlobalMinimum: globalMinimum,
		MaxConcurrent: runtime.NumCPU(),
		TestTimeout:   testTimeout,
		Retries:       make(map[core.TestName]int),
	}

	for _, dim := range assessment.Dimensions() {
		cfg.Weights[dim.ID] = dim.Weight
		if dim.SafetyCritical {
			cfg.Thresholds[dim.ID] = Thresholds{
				Minimum: clampScore(safetyFloor + 5),
				Target:  clampScore(safetyFloor + 10),
				Optimal: clampScore(safetyFloor + 10),
			}
		} else {
			cfg.Thresholds[dim.ID] = Thresholds{Minimum: 50, Target: 70, Optimal: 90}
		}
	}
	return cfg
}

func clampScore(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}

// Load builds a config from the environment in the usual precedence order:
// domain profile defaults, then an optional YAML profile file
// (ATTEST_PROFILE), then individual environment variables. A .env file is
// honored when present.
func Load() (*Config, error) {
	// Missing .env is fine; explicit environment still applies.
	_ = godotenv.Load()

	cfg, err := ForDomain(os.Getenv("ATTEST_DOMAIN"))
	if err != nil {
		return nil, err
	}

	if path := os.Getenv("ATTEST_PROFILE"); path != "" {
		if err := cfg.ApplyProfileFile(path); err != nil {
			return nil, err
		}
	}

	cfg.MaxConcurrent = getEnvIntOrDefault("ATTEST_MAX_CONCURRENT", cfg.MaxConcurrent)
	cfg.TestTimeout = getEnvDurationOrDefault("ATTEST_TEST_TIMEOUT", cfg.TestTimeout)
	cfg.RunDeadline = getEnvDurationOrDefault("ATTEST_RUN_DEADLINE", cfg.RunDeadline)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration integrity. Any failure here is fatal: the run
// never starts.
func (c *Config) Validate() error {
	if len(c.Weights) != assessment.DimensionCount() {
		return core.NewConfigError("weights", fmt.Sprintf("expected %d dimension weights, got %d", assessment.DimensionCount(), len(c.Weights)))
	}
	sum := 0.0
	for id, w := range c.Weights {
		if w < 0 {
			return core.NewConfigError("weights", fmt.Sprintf("dimension %s has negative weight %v", id, w))
		}
		sum += w
	}
	if math.Abs(sum-100) > weightTolerance {
		return fmt.Errorf("%w (got %v)", core.ErrWeightSum, sum)
	}

	for _, dim := range assessment.Dimensions() {
		th, ok := c.Thresholds[dim.ID]
		if !ok {
			return fmt.Errorf("%w: %s", core.ErrMissingThreshold, dim.ID)
		}
		if th.Minimum < 0 || th.Minimum > 100 || th.Target < th.Minimum || th.Optimal < th.Target {
			return core.NewConfigError("thresholds", fmt.Sprintf("dimension %s has inconsistent thresholds %+v", dim.ID, th))
		}
	}

	if c.SafetyFloor < 0 || c.SafetyFloor > 100 {
		return core.NewConfigError("safety_floor", fmt.Sprintf("must be in [0,100], got %v", c.SafetyFloor))
	}
	if c.MaxConcurrent < 1 {
		return core.NewConfigError("max_concurrent", "must be at least 1")
	}
	if c.TestTimeout <= 0 {
		return core.NewConfigError("test_timeout", "must be positive")
	}
	if c.RunDeadline < 0 {
		return core.NewConfigError("run_deadline", "must not be negative")
	}
	return nil
}

// Battery resolves the canonical 48-test catalog against this config:
// per-domain timeouts and retry overrides are applied here, once, so the
// executor never branches on domain. The resolved battery is cached.
func (c *Config) Battery() ([]assessment.TestDefinition, error) {
	if c.battery != nil {
		return c.battery, nil
	}

	defs := assessment.Catalog(c.TestTimeout)
	for i := range defs {
		defs[i].Timeout = defs[i].ResolveTimeout(c.Domain)
		if n, ok := c.Retries[defs[i].Name]; ok {
			defs[i].RetryCount = n
		}
	}
	if err := assessment.ValidateBattery(defs); err != nil {
		return nil, err
	}
	c.battery = defs
	return defs, nil
}

// Hash returns the content fingerprint of this snapshot. Field order is fixed
// by sorted keys, so identical configs always hash identically.
func (c *Config) Hash() core.ConfigHash {
	if !core.Hash(c.hash).IsEmpty() {
		return c.hash
	}

	fields := map[string]interface{}{
		"domain":         c.Domain,
		"safety_floor":   c.SafetyFloor,
		"global_minimum": c.GlobalMinimum,
		"test_timeout":   c.TestTimeout.String(),
		"run_deadline":   c.RunDeadline.String(),
	}
	for id, w := range c.Weights {
		fields["weight."+string(id)] = strconv.FormatFloat(w, 'g', -1, 64)
	}
	for id, th := range c.Thresholds {
		fields["threshold."+string(id)] = fmt.Sprintf("%g/%g/%g", th.Minimum, th.Target, th.Optimal)
	}
	for name, n := range c.Retries {
		fields["retry."+string(name)] = n
	}

	c.hash = core.ConfigHash(core.ComputeFieldHash(fields))
	return c.hash
}

// Helper functions for environment variable parsing
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
