package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"attest/domain/assessment"
	"attest/domain/core"
)

// profileFile is the on-disk shape of a domain profile override. Every field
// is optional; absent fields keep the domain defaults. Profiles tune the data
// the engine runs on - they never introduce per-domain code paths.
type profileFile struct {
	Domain        string                 `yaml:"domain"`
	SafetyFloor   *float64               `yaml:"safety_floor"`
	GlobalMinimum *uint8                 `yaml:"global_minimum"`
	MaxConcurrent *int                   `yaml:"max_concurrent"`
	TestTimeout   string                 `yaml:"test_timeout"`
	RunDeadline   string                 `yaml:"run_deadline"`
	Weights       map[string]float64     `yaml:"weights"`
	Thresholds    map[string]Thresholds  `yaml:"thresholds"`
	Retries       map[string]int         `yaml:"retries"`
}

// ApplyProfileFile overlays a YAML profile onto the config. Unknown dimension
// or test names are configuration defects and fail fast.
func (c *Config) ApplyProfileFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return core.NewConfigError("profile", fmt.Sprintf("reading %s: %v", path, err))
	}

	var pf profileFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return core.NewConfigError("profile", fmt.Sprintf("parsing %s: %v", path, err))
	}

	if pf.Domain != "" && pf.Domain != c.Domain {
		return core.NewConfigError("profile", fmt.Sprintf("profile targets domain %q, config is %q", pf.Domain, c.Domain))
	}
	if pf.SafetyFloor != nil {
		c.SafetyFloor = *pf.SafetyFloor
	}
	if pf.GlobalMinimum != nil {
		c.GlobalMinimum = *pf.GlobalMinimum
	}
	if pf.MaxConcurrent != nil {
		c.MaxConcurrent = *pf.MaxConcurrent
	}
	if pf.TestTimeout != "" {
		d, err := time.ParseDuration(pf.TestTimeout)
		if err != nil {
			return core.NewConfigError("profile", fmt.Sprintf("test_timeout: %v", err))
		}
		c.TestTimeout = d
	}
	if pf.RunDeadline != "" {
		d, err := time.ParseDuration(pf.RunDeadline)
		if err != nil {
			return core.NewConfigError("profile", fmt.Sprintf("run_deadline: %v", err))
		}
		c.RunDeadline = d
	}

	for name, w := range pf.Weights {
		id := core.DimensionID(name)
		if _, ok := assessment.DimensionByID(id); !ok {
			return core.NewConfigError("profile", fmt.Sprintf("weights: unknown dimension %q", name))
		}
		c.Weights[id] = w
	}
	for name, th := range pf.Thresholds {
		id := core.DimensionID(name)
		if _, ok := assessment.DimensionByID(id); !ok {
			return core.NewConfigError("profile", fmt.Sprintf("thresholds: unknown dimension %q", name))
		}
		c.Thresholds[id] = th
	}
	for name, n := range pf.Retries {
		if n < 0 {
			return core.NewConfigError("profile", fmt.Sprintf("retries: negative count for %q", name))
		}
		c.Retries[core.TestName(name)] = n
	}

	// Overrides invalidate any cached derivations.
	c.battery = nil
	c.hash = ""
	return nil
}
