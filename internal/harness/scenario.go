// Package harness runs declarative gate scenarios: YAML files pairing
// metrics and a context with the verdict they must produce. Scenarios
// double as conformance tests and as golden-file fixtures for the
// explainable record.
package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/gonogo/internal/gate"
)

// Scenario is one declarative gate evaluation with its expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden file
	// name when the scenario runs under golden comparison.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Context selects the band profile to evaluate under.
	Context string `yaml:"context"`

	// Metrics are the six gate inputs.
	Metrics ScenarioMetrics `yaml:"metrics"`

	// History optionally supplies a readiness history; with two or more
	// points it overrides the trend and variance metrics.
	History []float64 `yaml:"history,omitempty"`

	// Expect describes the required outcome.
	Expect ExpectClause `yaml:"expect"`
}

// ScenarioMetrics mirrors the gate's metric inputs in YAML form.
type ScenarioMetrics struct {
	Readiness float64 `yaml:"readiness"`
	Entropy   float64 `yaml:"entropy"`
	Drift     float64 `yaml:"drift"`
	Safety    float64 `yaml:"safety"`
	Trend     float64 `yaml:"trend"`
	Variance  float64 `yaml:"variance"`
}

// ExpectClause specifies the expected decision.
type ExpectClause struct {
	// Verdict is the required verdict: ALLOW, REVIEW or BLOCK.
	Verdict string `yaml:"verdict"`

	// RuleFail requires the hard safety rule to have fired.
	RuleFail bool `yaml:"rule_fail,omitempty"`

	// ReasonContains requires the primary reason to contain this
	// substring. Empty means no reason check.
	ReasonContains string `yaml:"reason_contains,omitempty"`
}

// coreMetrics converts the YAML form into the gate's input type.
func (m ScenarioMetrics) coreMetrics() gate.CoreMetrics {
	return gate.CoreMetrics{
		Readiness: m.Readiness,
		Entropy:   m.Entropy,
		Drift:     m.Drift,
		Safety:    m.Safety,
		Trend:     m.Trend,
		Variance:  m.Variance,
	}
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Context == "" {
		return fmt.Errorf("context is required")
	}
	if s.Expect.Verdict == "" {
		return fmt.Errorf("expect.verdict is required")
	}
	if !gate.Verdict(s.Expect.Verdict).Valid() {
		return fmt.Errorf("expect.verdict %q is not a verdict", s.Expect.Verdict)
	}
	if len(s.History) == 1 {
		return fmt.Errorf("history needs at least two points to be meaningful")
	}
	return nil
}
