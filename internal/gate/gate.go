// Package gate implements the rule-ordered decision gate: six metrics plus
// per-context threshold bands in, a deterministic ALLOW/REVIEW/BLOCK verdict
// with a mandatory literal justification out.
//
// The gate is a pure function over value inputs. It holds no mutable state,
// performs no I/O, and may be evaluated from any number of goroutines
// concurrently.
package gate

import (
	"fmt"

	"github.com/roach88/gonogo/internal/numeric"
)

// Protocol is the tag stamped on every DecisionResult.
const Protocol = "CORE9_v1.0"

// Gate evaluates metrics against one context's decision bands.
type Gate struct {
	bands DecisionBands
}

// New creates a gate for the given bands.
//
// Band validation is deferred to Evaluate: the gate re-checks the band
// invariant on every call, so a gate constructed with malformed bands
// fails at evaluation time rather than silently.
func New(bands DecisionBands) *Gate {
	return &Gate{bands: bands}
}

// Bands returns the bands this gate evaluates against.
func (g *Gate) Bands() DecisionBands {
	return g.bands
}

// Evaluate runs the ordered rule chain and returns the verdict with its
// justification.
//
// When history carries at least two points, Trend and Variance are replaced
// by the history estimator's values before any rule is evaluated; the
// substituted values are what the result reports.
//
// The rule chain is a strict priority order. First match wins and
// evaluation stops:
//
//	1. safety == 0                      -> BLOCK (rule-fail)
//	2. readiness in restrict band       -> BLOCK
//	3. entropy  > max entropy           -> REVIEW
//	4. drift    > max drift             -> REVIEW
//	5. variance > max variance          -> REVIEW
//	6. trend < 0 and readiness caution  -> REVIEW
//	7. otherwise                        -> ALLOW
//
// This ordering is a safety contract: a failed hard-safety check always
// overrides statistical concerns, and the hard readiness floor overrides
// entropy/drift/variance, which override the trend heuristic. Do not
// reorder.
//
// Any validation failure aborts the evaluation with a typed error and no
// verdict; the caller decides whether to treat that as fail-closed.
func (g *Gate) Evaluate(metrics CoreMetrics, history []float64) (DecisionResult, error) {
	if err := metrics.Validate(); err != nil {
		return DecisionResult{}, err
	}
	if err := g.bands.Validate(); err != nil {
		return DecisionResult{}, err
	}
	if err := validateHistory(history); err != nil {
		return DecisionResult{}, err
	}

	used := metrics
	if len(history) >= 2 {
		used.Trend = ComputeTrend(history)
		used.Variance = ComputeVariance(history)
		if err := numeric.CheckFinite("computed trend", used.Trend); err != nil {
			return DecisionResult{}, err
		}
		if err := numeric.CheckFinite("computed variance", used.Variance); err != nil {
			return DecisionResult{}, err
		}
	}

	result := DecisionResult{
		Metrics:  used,
		Protocol: Protocol,
		Context:  g.bands.Context,
	}
	b := g.bands

	// 1) Hard safety rule.
	if used.Safety == 0 {
		result.Verdict = VerdictBlock
		result.RuleFail = true
		result.Reasons = append(result.Reasons, "safety rule failed (safety == 0)")
		return result, nil
	}

	// 2) Hard readiness floor.
	if b.inRestrict(used.Readiness) {
		result.Verdict = VerdictBlock
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("readiness=%.3f in restrict band (< %.3f)", used.Readiness, b.RestrictMax))
		return result, nil
	}

	// 3) Entropy ceiling.
	if used.Entropy > b.MaxEntropy {
		result.Verdict = VerdictReview
		result.Reasons = append(result.Reasons,
			formatReason("entropy", used.Entropy, "max_entropy", b.MaxEntropy, "entropy above threshold"))
		return result, nil
	}

	// 4) Drift ceiling.
	if used.Drift > b.MaxDrift {
		result.Verdict = VerdictReview
		result.Reasons = append(result.Reasons,
			formatReason("drift", used.Drift, "max_drift", b.MaxDrift, "semantic drift above threshold"))
		return result, nil
	}

	// 5) Variance ceiling.
	if used.Variance > b.MaxVariance {
		result.Verdict = VerdictReview
		result.Reasons = append(result.Reasons,
			formatReason("variance", used.Variance, "max_variance", b.MaxVariance, "variance above threshold"))
		return result, nil
	}

	// 6) Soft heuristic: falling readiness while already in the caution band.
	if used.Trend < 0 && b.inCaution(used.Readiness) {
		result.Verdict = VerdictReview
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("negative trend (trend=%.3f < 0) and readiness=%.3f in caution band [%.3f, %.3f)",
				used.Trend, used.Readiness, b.CautionMin, b.CautionMax))
		return result, nil
	}

	// 7) Everything within bounds.
	result.Verdict = VerdictAllow
	result.Reasons = append(result.Reasons, "all metrics within safety bounds")
	return result, nil
}

// formatReason renders a threshold-violation reason.
// The literal "value > threshold" shape is part of the explainability
// contract; reasons must name both the metric and the violated threshold.
func formatReason(name string, value float64, thresholdName string, threshold float64, comment string) string {
	return fmt.Sprintf("%s=%.3f > %s=%.3f (%s)", name, value, thresholdName, threshold, comment)
}
