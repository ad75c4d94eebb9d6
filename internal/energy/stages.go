package energy

import (
	"math"

	"github.com/roach88/gonogo/internal/numeric"
)

// Guard bounds on stage inputs.
const (
	// MaxPhaseMagnitude bounds the phase angle fed to the directional
	// stage. Angles beyond this are meaningless extremes, not wrapped
	// rotations.
	MaxPhaseMagnitude = 1000.0

	// MaxNeuralMagnitude bounds each neural channel's absolute value.
	MaxNeuralMagnitude = 1e6

	// MaxBindingInput bounds each addend's absolute value in the binding
	// stage.
	MaxBindingInput = 1e10
)

// checkResult rejects a stage result that is NaN or infinite.
func checkResult(stage string, result float64) (float64, error) {
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, &FormulaError{Stage: stage, Message: "computation resulted in NaN or infinity"}
	}
	return result, nil
}

// checkInputs runs the shared NaN-then-infinity sweep over named stage
// inputs. All inputs are checked for NaN before any is checked for
// infinity; error messages name the first offender in declaration order.
func checkInputs(inputs ...namedValue) error {
	for _, in := range inputs {
		if err := numeric.CheckNaN(in.name, in.value); err != nil {
			return err
		}
	}
	for _, in := range inputs {
		if err := numeric.CheckInfinity(in.name, in.value); err != nil {
			return err
		}
	}
	return nil
}

type namedValue struct {
	name  string
	value float64
}

// EnergyOfPerception is stage 1: intensity x |polarity| x sub-awareness x
// (1 - entropy).
//
// signedPolarity keeps the polarity's sign instead of taking its absolute
// value, for callers modelling directional valence.
func EnergyOfPerception(intensity, polarity, subAwareness, entropy float64, signedPolarity bool) (float64, error) {
	if err := checkInputs(
		namedValue{"intensity", intensity},
		namedValue{"polarity", polarity},
		namedValue{"sub_awareness", subAwareness},
		namedValue{"entropy", entropy},
	); err != nil {
		return 0, err
	}
	if err := numeric.CheckMin("intensity", intensity, 0); err != nil {
		return 0, err
	}
	if err := numeric.CheckUnit("sub_awareness", subAwareness); err != nil {
		return 0, err
	}
	if err := numeric.CheckUnit("entropy", entropy); err != nil {
		return 0, err
	}

	p := polarity
	if !signedPolarity {
		p = math.Abs(polarity)
	}
	return checkResult("energy of perception", intensity*p*subAwareness*(1.0-entropy))
}

// ReflexEnergy is stage 2: perception energy scaled by awareness.
func ReflexEnergy(perception, awareness float64) (float64, error) {
	if err := checkInputs(
		namedValue{"perception_energy", perception},
		namedValue{"awareness", awareness},
	); err != nil {
		return 0, err
	}
	if err := numeric.CheckUnit("awareness", awareness); err != nil {
		return 0, err
	}
	return checkResult("reflex energy", perception*awareness)
}

// DirectionalReflexEnergy is stage 3: perception energy projected through
// the phase angle via cosine. The only periodic stage; the phase is bounded
// in magnitude but otherwise unrestricted.
func DirectionalReflexEnergy(perception, phase float64) (float64, error) {
	if err := checkInputs(
		namedValue{"perception_energy", perception},
		namedValue{"phase_angle", phase},
	); err != nil {
		return 0, err
	}
	if math.Abs(phase) > MaxPhaseMagnitude {
		return 0, numeric.CheckRange("phase_angle", phase, -MaxPhaseMagnitude, MaxPhaseMagnitude)
	}
	return checkResult("directional reflex energy", perception*math.Cos(phase))
}

// CognitiveEnergy is stage 4: intensity x awareness x (1 - entropy).
func CognitiveEnergy(intensity, awareness, entropy float64) (float64, error) {
	if err := checkInputs(
		namedValue{"intensity", intensity},
		namedValue{"awareness", awareness},
		namedValue{"entropy", entropy},
	); err != nil {
		return 0, err
	}
	if err := numeric.CheckMin("intensity", intensity, 0); err != nil {
		return 0, err
	}
	if err := numeric.CheckUnit("awareness", awareness); err != nil {
		return 0, err
	}
	if err := numeric.CheckUnit("entropy", entropy); err != nil {
		return 0, err
	}
	return checkResult("cognitive energy", intensity*awareness*(1.0-entropy))
}

// CoherenceEnergy is stage 5: stability x awareness x (1 - entropy).
func CoherenceEnergy(stability, awareness, entropy float64) (float64, error) {
	if err := checkInputs(
		namedValue{"stability", stability},
		namedValue{"awareness", awareness},
		namedValue{"entropy", entropy},
	); err != nil {
		return 0, err
	}
	if err := numeric.CheckUnit("stability", stability); err != nil {
		return 0, err
	}
	if err := numeric.CheckUnit("awareness", awareness); err != nil {
		return 0, err
	}
	if err := numeric.CheckUnit("entropy", entropy); err != nil {
		return 0, err
	}
	return checkResult("coherence energy", stability*awareness*(1.0-entropy))
}

// NeuralSum is stage 6: the sum of the five physiological channels.
// Channels may be signed; each magnitude is capped at MaxNeuralMagnitude.
func NeuralSum(neural NeuralVector) (float64, error) {
	channels := neural.channels()

	inputs := make([]namedValue, len(channels))
	for i, c := range channels {
		inputs[i] = namedValue{c.name, c.value}
	}
	if err := checkInputs(inputs...); err != nil {
		return 0, err
	}
	for _, c := range channels {
		if err := numeric.CheckMax(c.name, math.Abs(c.value), MaxNeuralMagnitude); err != nil {
			return 0, err
		}
	}

	sum := neural.Dopamine + neural.Serotonin + neural.Oxytocin +
		neural.Adrenaline + neural.Cortisol
	return checkResult("neural sum", sum)
}

// BindingEnergy is stage 7: cognitive + neural + coherence energies.
// Each addend's magnitude is capped at MaxBindingInput.
func BindingEnergy(cognitive, neural, coherence float64) (float64, error) {
	if err := checkInputs(
		namedValue{"cognitive_energy", cognitive},
		namedValue{"neural_energy", neural},
		namedValue{"coherence_energy", coherence},
	); err != nil {
		return 0, err
	}
	for _, in := range []namedValue{
		{"cognitive_energy", cognitive},
		{"neural_energy", neural},
		{"coherence_energy", coherence},
	} {
		if err := numeric.CheckMax(in.name, math.Abs(in.value), MaxBindingInput); err != nil {
			return 0, err
		}
	}
	return checkResult("binding energy", cognitive+neural+coherence)
}

// MemoryEncodingEnergy is stage 8: awareness x (binding + predicted).
func MemoryEncodingEnergy(awareness, binding, predicted float64) (float64, error) {
	if err := checkInputs(
		namedValue{"awareness", awareness},
		namedValue{"binding_energy", binding},
		namedValue{"predicted_energy", predicted},
	); err != nil {
		return 0, err
	}
	if err := numeric.CheckUnit("awareness", awareness); err != nil {
		return 0, err
	}
	return checkResult("memory encoding energy", awareness*(binding+predicted))
}
