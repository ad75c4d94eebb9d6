// Package energy implements the eight-stage energy projection pipeline:
// a validated perception state and neural vector in, eight derived energy
// scalars and a threshold verdict out.
//
// Every stage validates its inputs and its result. The pipeline is atomic:
// any validation failure or overflow aborts the whole projection with a
// typed error and no partial result. All functions are pure and safe for
// concurrent use.
package energy

import (
	"github.com/roach88/gonogo/internal/numeric"
)

// PerceptionState is the eight-scalar snapshot a projection cycle starts
// from. Constructed by the caller per cycle, immutable once validated,
// never persisted by the core.
type PerceptionState struct {
	// Intensity of the current percept. Non-negative, unbounded above.
	Intensity float64

	// Polarity is the signed valence of the percept. Any real value.
	Polarity float64

	// Stability of the current state, in [0, 1].
	Stability float64

	// Entropy is the state uncertainty, in [0, 1].
	Entropy float64

	// ExternalForce is the outside pressure on the state. Any real value.
	ExternalForce float64

	// Awareness is the foreground activation level, in [0, 1].
	Awareness float64

	// SubAwareness is the background activation level, in [0, 1].
	SubAwareness float64

	// PhaseAngle is the directional phase in radians. Any real value,
	// though the directional stage rejects magnitudes above 1000.
	PhaseAngle float64
}

// Validate checks every field for NaN/infinity and its declared range.
// The first violation aborts the check; the returned error wraps the
// field-level detail.
func (s PerceptionState) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"state.intensity", s.Intensity},
		{"state.polarity", s.Polarity},
		{"state.stability", s.Stability},
		{"state.entropy", s.Entropy},
		{"state.external_force", s.ExternalForce},
		{"state.awareness", s.Awareness},
		{"state.sub_awareness", s.SubAwareness},
		{"state.phase_angle", s.PhaseAngle},
	}
	for _, f := range fields {
		if err := numeric.CheckFinite(f.name, f.value); err != nil {
			return &StateError{Message: "perception state validation failed", Err: err}
		}
	}

	checks := []struct {
		name  string
		check func() error
	}{
		{"intensity", func() error { return numeric.CheckMin("state.intensity", s.Intensity, 0) }},
		{"stability", func() error { return numeric.CheckUnit("state.stability", s.Stability) }},
		{"entropy", func() error { return numeric.CheckUnit("state.entropy", s.Entropy) }},
		{"awareness", func() error { return numeric.CheckUnit("state.awareness", s.Awareness) }},
		{"sub_awareness", func() error { return numeric.CheckUnit("state.sub_awareness", s.SubAwareness) }},
	}
	for _, c := range checks {
		if err := c.check(); err != nil {
			return &StateError{Message: "perception state validation failed", Err: err}
		}
	}

	// Polarity, ExternalForce and PhaseAngle are unrestricted reals.
	return nil
}

// Valid reports whether the state passes Validate.
func (s PerceptionState) Valid() bool {
	return s.Validate() == nil
}

// NeuralVector carries the five physiological channel levels feeding the
// neural aggregation stage. Channels may be signed; each is bounded in
// magnitude by MaxNeuralMagnitude.
type NeuralVector struct {
	Dopamine   float64
	Serotonin  float64
	Oxytocin   float64
	Adrenaline float64
	Cortisol   float64
}

// channels returns the vector as named values in canonical order.
func (n NeuralVector) channels() []struct {
	name  string
	value float64
} {
	return []struct {
		name  string
		value float64
	}{
		{"neural.dopamine", n.Dopamine},
		{"neural.serotonin", n.Serotonin},
		{"neural.oxytocin", n.Oxytocin},
		{"neural.adrenaline", n.Adrenaline},
		{"neural.cortisol", n.Cortisol},
	}
}
