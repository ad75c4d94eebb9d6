package energy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gonogo/internal/numeric"
)

func TestEnergyOfPerception(t *testing.T) {
	// 2 x |-0.5| x 0.4 x (1-0.25)
	got, err := EnergyOfPerception(2.0, -0.5, 0.4, 0.25, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, got, 1e-12)

	// Signed polarity flips the sign and nothing else.
	signed, err := EnergyOfPerception(2.0, -0.5, 0.4, 0.25, true)
	require.NoError(t, err)
	assert.Equal(t, -got, signed)
}

func TestEnergyOfPerception_Validation(t *testing.T) {
	tests := []struct {
		name     string
		inputs   [4]float64 // intensity, polarity, sub_awareness, entropy
		wantCode numeric.ErrorCode
	}{
		{"nan intensity", [4]float64{math.NaN(), 1, 0.5, 0.5}, numeric.ErrCodeNaN},
		{"inf polarity", [4]float64{1, math.Inf(1), 0.5, 0.5}, numeric.ErrCodeInfinity},
		{"negative intensity", [4]float64{-1, 1, 0.5, 0.5}, numeric.ErrCodeRange},
		{"sub_awareness above 1", [4]float64{1, 1, 1.5, 0.5}, numeric.ErrCodeRange},
		{"entropy below 0", [4]float64{1, 1, 0.5, -0.1}, numeric.ErrCodeRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EnergyOfPerception(tt.inputs[0], tt.inputs[1], tt.inputs[2], tt.inputs[3], false)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, numeric.CodeOf(err))
		})
	}
}

func TestEnergyOfPerception_NaNCheckedBeforeInfinity(t *testing.T) {
	// Later NaN input still reported before an earlier infinite one.
	_, err := EnergyOfPerception(math.Inf(1), math.NaN(), 0.5, 0.5, false)
	require.Error(t, err)
	assert.Equal(t, numeric.ErrCodeNaN, numeric.CodeOf(err))
}

func TestEnergyOfPerception_Overflow(t *testing.T) {
	_, err := EnergyOfPerception(1e308, 100, 1.0, 0.0, false)
	require.Error(t, err)
	assert.True(t, IsFormulaOverflow(err))
}

func TestReflexEnergy(t *testing.T) {
	got, err := ReflexEnergy(0.3, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.15, got)

	_, err = ReflexEnergy(0.3, 1.5)
	require.Error(t, err)
	assert.Equal(t, numeric.ErrCodeRange, numeric.CodeOf(err))
}

func TestDirectionalReflexEnergy(t *testing.T) {
	// Zero phase passes the energy through unchanged.
	got, err := DirectionalReflexEnergy(0.3, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.3, got)

	// cos(pi) = -1.
	got, err = DirectionalReflexEnergy(2.0, math.Pi)
	require.NoError(t, err)
	assert.InDelta(t, -2.0, got, 1e-12)

	// The phase guard is inclusive at the bound.
	_, err = DirectionalReflexEnergy(1, MaxPhaseMagnitude)
	assert.NoError(t, err)
	_, err = DirectionalReflexEnergy(1, -MaxPhaseMagnitude)
	assert.NoError(t, err)

	for _, phase := range []float64{MaxPhaseMagnitude + 1, -(MaxPhaseMagnitude + 1)} {
		_, err = DirectionalReflexEnergy(1, phase)
		require.Error(t, err)
		assert.Equal(t, numeric.ErrCodeRange, numeric.CodeOf(err))
	}
}

func TestCognitiveEnergy(t *testing.T) {
	got, err := CognitiveEnergy(2.0, 0.5, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 0.75, got)

	_, err = CognitiveEnergy(-1, 0.5, 0.25)
	require.Error(t, err)
	assert.Equal(t, numeric.ErrCodeRange, numeric.CodeOf(err))
}

func TestCoherenceEnergy(t *testing.T) {
	got, err := CoherenceEnergy(0.8, 0.5, 0.25)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, got, 1e-12)

	// Unlike intensity, stability is capped at 1.
	_, err = CoherenceEnergy(1.2, 0.5, 0.25)
	require.Error(t, err)
	assert.Equal(t, numeric.ErrCodeRange, numeric.CodeOf(err))
}

func TestNeuralSum(t *testing.T) {
	got, err := NeuralSum(NeuralVector{Dopamine: 1, Serotonin: 2, Oxytocin: 3, Adrenaline: 4, Cortisol: 5})
	require.NoError(t, err)
	assert.Equal(t, 15.0, got)

	// Signed channels are allowed.
	got, err = NeuralSum(NeuralVector{Dopamine: -2, Serotonin: 2})
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestNeuralSum_MagnitudeCap(t *testing.T) {
	_, err := NeuralSum(NeuralVector{Dopamine: 2e6})
	require.Error(t, err)
	assert.Equal(t, numeric.ErrCodeRange, numeric.CodeOf(err))
	assert.Contains(t, err.Error(), "neural.dopamine")

	// Negative channels are capped on magnitude too.
	_, err = NeuralSum(NeuralVector{Cortisol: -2e6})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neural.cortisol")
}

func TestNeuralSum_RejectsNaNChannel(t *testing.T) {
	_, err := NeuralSum(NeuralVector{Oxytocin: math.NaN()})
	require.Error(t, err)
	assert.Equal(t, numeric.ErrCodeNaN, numeric.CodeOf(err))
	assert.Contains(t, err.Error(), "neural.oxytocin")
}

func TestBindingEnergy(t *testing.T) {
	got, err := BindingEnergy(0.75, 15, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 16.0, got)

	for _, tt := range []struct {
		name    string
		addends [3]float64
	}{
		{"cognitive too large", [3]float64{1e11, 0, 0}},
		{"neural too large", [3]float64{0, -1e11, 0}},
		{"coherence too large", [3]float64{0, 0, 1e11}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BindingEnergy(tt.addends[0], tt.addends[1], tt.addends[2])
			require.Error(t, err)
			assert.Equal(t, numeric.ErrCodeRange, numeric.CodeOf(err))
		})
	}
}

func TestMemoryEncodingEnergy(t *testing.T) {
	got, err := MemoryEncodingEnergy(0.5, 16.0, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 9.0, got)

	_, err = MemoryEncodingEnergy(2.0, 1, 1)
	require.Error(t, err)
	assert.Equal(t, numeric.ErrCodeRange, numeric.CodeOf(err))
}
