package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/gonogo/internal/gate"
	"github.com/roach88/gonogo/internal/policy"
)

// Run evaluates a scenario against a policy and checks its expectations.
// The decision result is returned even when expectations fail, so callers
// can report what the gate actually decided.
func Run(scenario *Scenario, p *policy.Policy) (gate.DecisionResult, error) {
	bands, err := p.Bands(scenario.Context)
	if err != nil {
		return gate.DecisionResult{}, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result, err := gate.New(bands).Evaluate(scenario.Metrics.coreMetrics(), scenario.History)
	if err != nil {
		return gate.DecisionResult{}, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	if err := checkExpectations(scenario, result); err != nil {
		return result, err
	}
	return result, nil
}

// checkExpectations compares a decision against the scenario's expect
// clause.
func checkExpectations(scenario *Scenario, result gate.DecisionResult) error {
	expect := scenario.Expect

	if string(result.Verdict) != expect.Verdict {
		return fmt.Errorf("scenario %s: verdict %s, expected %s (reason: %s)",
			scenario.Name, result.Verdict, expect.Verdict, result.PrimaryReason())
	}
	if result.RuleFail != expect.RuleFail {
		return fmt.Errorf("scenario %s: rule_fail %v, expected %v",
			scenario.Name, result.RuleFail, expect.RuleFail)
	}
	if expect.ReasonContains != "" && !strings.Contains(result.PrimaryReason(), expect.ReasonContains) {
		return fmt.Errorf("scenario %s: reason %q does not contain %q",
			scenario.Name, result.PrimaryReason(), expect.ReasonContains)
	}
	return nil
}
