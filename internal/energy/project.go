package energy

import (
	"github.com/roach88/gonogo/internal/gate"
	"github.com/roach88/gonogo/internal/numeric"
)

// GateParams configures the legacy two-threshold verdict computed at the
// end of a projection. This is the reduced gate contract: a rule flag plus
// entropy and drift ceilings; the full banded gate lives in the gate
// package.
type GateParams struct {
	// RuleFail forces BLOCK when an external rule check has already failed.
	RuleFail bool

	// EntropyThreshold is the entropy ceiling, in [0, 1]. At or above it
	// the verdict is REVIEW.
	EntropyThreshold float64

	// DriftThreshold is the trajectory distance ceiling, non-negative.
	// At or above it the verdict is REVIEW.
	DriftThreshold float64
}

// DerivedEnergyState carries the eight stage outputs of one projection,
// plus the threshold verdict. Returned fully populated or not at all.
type DerivedEnergyState struct {
	Perception        float64 // stage 1
	Reflex            float64 // stage 2
	DirectionalReflex float64 // stage 3
	Cognitive         float64 // stage 4
	Coherence         float64 // stage 5
	Neural            float64 // stage 6
	Binding           float64 // stage 7
	MemoryEncoding    float64 // stage 8

	Verdict gate.Verdict
}

// ProjectionOptions tunes the projection pipeline.
type ProjectionOptions struct {
	// SignedPolarity keeps the polarity's sign in stage 1 instead of the
	// default absolute value.
	SignedPolarity bool
}

// ProjectEnergy runs the full eight-stage projection over a validated
// perception state and neural vector, then applies the two-threshold
// verdict over the state's entropy.
//
// The projection is atomic: the first validation failure or stage overflow
// aborts with a typed error and no partial state is returned. Identical
// inputs always produce bit-identical output.
func ProjectEnergy(
	state PerceptionState,
	neural NeuralVector,
	predicted float64,
	params GateParams,
	opts ProjectionOptions,
) (DerivedEnergyState, error) {
	var zero DerivedEnergyState

	if err := state.Validate(); err != nil {
		return zero, err
	}
	if err := numeric.CheckFinite("predicted_energy", predicted); err != nil {
		return zero, err
	}
	if err := numeric.CheckFinite("params.entropy_threshold", params.EntropyThreshold); err != nil {
		return zero, err
	}
	if err := numeric.CheckUnit("params.entropy_threshold", params.EntropyThreshold); err != nil {
		return zero, err
	}
	if err := numeric.CheckFinite("params.drift_threshold", params.DriftThreshold); err != nil {
		return zero, err
	}
	if err := numeric.CheckMin("params.drift_threshold", params.DriftThreshold, 0); err != nil {
		return zero, err
	}

	var (
		derived DerivedEnergyState
		err     error
	)

	derived.Perception, err = EnergyOfPerception(
		state.Intensity, state.Polarity, state.SubAwareness, state.Entropy, opts.SignedPolarity)
	if err != nil {
		return zero, err
	}
	derived.Reflex, err = ReflexEnergy(derived.Perception, state.Awareness)
	if err != nil {
		return zero, err
	}
	derived.DirectionalReflex, err = DirectionalReflexEnergy(derived.Perception, state.PhaseAngle)
	if err != nil {
		return zero, err
	}
	derived.Cognitive, err = CognitiveEnergy(state.Intensity, state.Awareness, state.Entropy)
	if err != nil {
		return zero, err
	}
	derived.Coherence, err = CoherenceEnergy(state.Stability, state.Awareness, state.Entropy)
	if err != nil {
		return zero, err
	}
	derived.Neural, err = NeuralSum(neural)
	if err != nil {
		return zero, err
	}
	derived.Binding, err = BindingEnergy(derived.Cognitive, derived.Neural, derived.Coherence)
	if err != nil {
		return zero, err
	}
	derived.MemoryEncoding, err = MemoryEncodingEnergy(state.Awareness, derived.Binding, predicted)
	if err != nil {
		return zero, err
	}

	// The projection-side verdict looks only at the current entropy;
	// trajectory drift belongs to callers tracking a history.
	derived.Verdict, err = BasicVerdict(params, state.Entropy, 0)
	if err != nil {
		return zero, err
	}

	return derived, nil
}

// BasicVerdict applies the reduced two-threshold gate: rule failure blocks,
// entropy or drift at or above their thresholds reviews, anything else
// allows. Unlike the banded gate, the comparisons here are inclusive.
func BasicVerdict(params GateParams, entropy, drift float64) (gate.Verdict, error) {
	inputs := []struct {
		name  string
		value float64
	}{
		{"entropy", entropy},
		{"drift", drift},
		{"params.entropy_threshold", params.EntropyThreshold},
		{"params.drift_threshold", params.DriftThreshold},
	}
	for _, in := range inputs {
		if err := numeric.CheckNaN(in.name, in.value); err != nil {
			return "", err
		}
	}
	for _, in := range inputs {
		if err := numeric.CheckInfinity(in.name, in.value); err != nil {
			return "", err
		}
	}
	if err := numeric.CheckUnit("entropy", entropy); err != nil {
		return "", err
	}
	if err := numeric.CheckMin("drift", drift, 0); err != nil {
		return "", err
	}
	if err := numeric.CheckUnit("params.entropy_threshold", params.EntropyThreshold); err != nil {
		return "", err
	}
	if err := numeric.CheckMin("params.drift_threshold", params.DriftThreshold, 0); err != nil {
		return "", err
	}

	if params.RuleFail {
		return gate.VerdictBlock, nil
	}
	if entropy >= params.EntropyThreshold || drift >= params.DriftThreshold {
		return gate.VerdictReview, nil
	}
	return gate.VerdictAllow, nil
}
