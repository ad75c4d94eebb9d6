package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/gonogo/internal/policy"
)

// RunWithGolden runs a scenario and compares its explainable record
// against a golden file stored at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if the scenario fails to run or misses its
// expectations; golden mismatch fails the test via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario, p *policy.Policy) error {
	t.Helper()

	result, err := Run(scenario, p)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, result.Record())

	return nil
}
