package gate

import (
	"fmt"

	"github.com/roach88/gonogo/internal/numeric"
)

// CoreMetrics carries the six scalars the decision gate evaluates.
//
// Trend and Variance may be overridden by the history estimator when a
// readiness history of at least two points accompanies the evaluation.
type CoreMetrics struct {
	// Readiness is the stress/readiness index driving the
	// accept/caution/restrict partition. Non-negative, unbounded above.
	Readiness float64

	// Entropy is the output uncertainty, in [0, 1].
	Entropy float64

	// Drift is the distance between expected and actual semantic output,
	// in [0, 1].
	Drift float64

	// Safety is the hard binary constraint: 0 forces BLOCK regardless of
	// every other metric. Must be exactly 0 or 1.
	Safety float64

	// Trend is the short-window slope of the readiness history.
	Trend float64

	// Variance is the short-window population variance of the readiness
	// history. Non-negative.
	Variance float64
}

// Validate checks the metrics against their declared domains.
// Returns a *numeric.CheckError for per-field violations and a *GateError
// for the binary-safety constraint.
func (m CoreMetrics) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"metrics.readiness", m.Readiness},
		{"metrics.entropy", m.Entropy},
		{"metrics.drift", m.Drift},
		{"metrics.safety", m.Safety},
		{"metrics.trend", m.Trend},
		{"metrics.variance", m.Variance},
	}
	for _, f := range fields {
		if err := numeric.CheckFinite(f.name, f.value); err != nil {
			return err
		}
	}

	if err := numeric.CheckUnit("metrics.entropy", m.Entropy); err != nil {
		return err
	}
	if err := numeric.CheckUnit("metrics.drift", m.Drift); err != nil {
		return err
	}
	if err := numeric.CheckUnit("metrics.safety", m.Safety); err != nil {
		return err
	}
	if err := numeric.CheckMin("metrics.readiness", m.Readiness, 0); err != nil {
		return err
	}
	if err := numeric.CheckMin("metrics.variance", m.Variance, 0); err != nil {
		return err
	}

	// Safety is a hard binary constraint, stricter than its [0,1] domain.
	if m.Safety != 0 && m.Safety != 1 {
		return &GateError{
			Code:    ErrCodeInvalidMetrics,
			Message: fmt.Sprintf("safety score must be 0 or 1, got %g", m.Safety),
		}
	}

	return nil
}

// DecisionBands holds the per-context thresholds partitioning the metric
// space into safe and unsafe regions.
//
// The readiness axis is partitioned as:
//
//	Restrict:  readiness <  RestrictMax
//	Caution:   CautionMin <= readiness < CautionMax
//	Accept:    AcceptMin <= readiness <= AcceptMax
//
// INVARIANT: RestrictMax <= CautionMin, CautionMax <= AcceptMin, and
// AcceptMin < AcceptMax, with no negative thresholds. Equality at a joint
// means the bands are contiguous (the standard layout); overlap is always
// an error. The gate re-checks this on every evaluation regardless of
// where the bands came from.
//
// Bands are immutable once constructed: they are passed and held by value.
type DecisionBands struct {
	// Context labels the operational domain these bands apply to
	// (e.g. "robot_control").
	Context string

	// Version tags the band definition.
	Version string

	// MaxDrift is the drift ceiling above which the gate returns REVIEW.
	MaxDrift float64

	// MaxEntropy is the entropy ceiling above which the gate returns REVIEW.
	MaxEntropy float64

	// MaxVariance is the variance ceiling above which the gate returns REVIEW.
	MaxVariance float64

	// RestrictMax is the hard readiness floor: below it the gate BLOCKs.
	RestrictMax float64

	// CautionMin and CautionMax bound the caution band (inclusive min,
	// exclusive max).
	CautionMin float64
	CautionMax float64

	// AcceptMin and AcceptMax bound the accept band (both inclusive).
	AcceptMin float64
	AcceptMax float64
}

// Validate checks the band invariant.
// Any violation is a GATE_INVALID_BANDS error.
func (b DecisionBands) Validate() error {
	thresholds := []struct {
		name  string
		value float64
	}{
		{"max_drift", b.MaxDrift},
		{"max_entropy", b.MaxEntropy},
		{"max_variance", b.MaxVariance},
		{"restrict_max", b.RestrictMax},
		{"caution_min", b.CautionMin},
		{"caution_max", b.CautionMax},
		{"accept_min", b.AcceptMin},
		{"accept_max", b.AcceptMax},
	}
	for _, th := range thresholds {
		if err := numeric.CheckFinite("bands."+th.name, th.value); err != nil {
			return &GateError{
				Code:    ErrCodeInvalidBands,
				Message: err.Error(),
				Context: b.Context,
			}
		}
		if th.value < 0 {
			return &GateError{
				Code:    ErrCodeInvalidBands,
				Message: fmt.Sprintf("bands.%s=%g is negative", th.name, th.value),
				Context: b.Context,
			}
		}
	}

	if b.RestrictMax > b.CautionMin || b.CautionMax > b.AcceptMin || b.AcceptMax <= b.AcceptMin {
		return &GateError{
			Code:    ErrCodeInvalidBands,
			Message: "readiness bands are not ordered (restrict < caution < accept)",
			Context: b.Context,
		}
	}

	return nil
}

// inRestrict reports whether readiness falls in the restrict band.
func (b DecisionBands) inRestrict(readiness float64) bool {
	return readiness < b.RestrictMax
}

// inCaution reports whether readiness falls in the caution band
// (inclusive min, exclusive max).
func (b DecisionBands) inCaution(readiness float64) bool {
	return readiness >= b.CautionMin && readiness < b.CautionMax
}

// inAccept reports whether readiness falls in the accept band
// (both ends inclusive).
func (b DecisionBands) inAccept(readiness float64) bool {
	return readiness >= b.AcceptMin && readiness <= b.AcceptMax
}

// DecisionResult is the full outcome of a gate evaluation.
// Produced fresh per evaluation and never mutated after return.
type DecisionResult struct {
	// Verdict is the go/no-go outcome.
	Verdict Verdict

	// Metrics are the metrics actually used, after any trend/variance
	// substitution from the history estimator.
	Metrics CoreMetrics

	// RuleFail is set when the hard safety rule (safety == 0) fired.
	RuleFail bool

	// Reasons lists why the verdict was reached, in evaluation order.
	// The first reason names the rule that fired and is load-bearing:
	// it becomes the "reason" field of the explainable record.
	Reasons []string

	// Protocol tags the decision contract version.
	Protocol string

	// Context echoes the band profile the decision was made under.
	Context string
}

// PrimaryReason returns the load-bearing first reason, or "N/A" when the
// result carries no reasons.
func (r DecisionResult) PrimaryReason() string {
	if len(r.Reasons) == 0 {
		return "N/A"
	}
	return r.Reasons[0]
}
