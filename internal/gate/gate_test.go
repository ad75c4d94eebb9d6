package gate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gonogo/internal/numeric"
)

// testBands returns the robot_control bands used throughout the precedence
// scenarios: D_max=0.30, H_max=0.60, V_max=6.0, Accept=[30,80],
// Caution=[15,30), Restrict<15.
func testBands() DecisionBands {
	return DecisionBands{
		Context:     "robot_control",
		Version:     "1.0",
		MaxDrift:    0.30,
		MaxEntropy:  0.60,
		MaxVariance: 6.0,
		RestrictMax: 15.0,
		CautionMin:  15.0,
		CautionMax:  30.0,
		AcceptMin:   30.0,
		AcceptMax:   80.0,
	}
}

// baseMetrics returns metrics that pass every rule under testBands.
func baseMetrics() CoreMetrics {
	return CoreMetrics{
		Readiness: 50,
		Entropy:   0.5,
		Drift:     0.25,
		Safety:    1,
		Trend:     0.5,
		Variance:  4.0,
	}
}

// =============================================================================
// Rule precedence
// =============================================================================

func TestEvaluate_AllWithinBounds_Allow(t *testing.T) {
	g := New(testBands())

	result, err := g.Evaluate(baseMetrics(), nil)
	require.NoError(t, err)

	assert.Equal(t, VerdictAllow, result.Verdict)
	assert.False(t, result.RuleFail)
	require.NotEmpty(t, result.Reasons)
	assert.Equal(t, "all metrics within safety bounds", result.Reasons[0])
	assert.Equal(t, Protocol, result.Protocol)
	assert.Equal(t, "robot_control", result.Context)
}

func TestEvaluate_SafetyZero_Block(t *testing.T) {
	g := New(testBands())
	m := baseMetrics()
	m.Safety = 0

	result, err := g.Evaluate(m, nil)
	require.NoError(t, err)

	assert.Equal(t, VerdictBlock, result.Verdict)
	assert.True(t, result.RuleFail)
	assert.Contains(t, result.Reasons[0], "safety rule failed")
}

func TestEvaluate_ReadinessRestrict_Block(t *testing.T) {
	g := New(testBands())
	m := baseMetrics()
	m.Readiness = 10

	result, err := g.Evaluate(m, nil)
	require.NoError(t, err)

	assert.Equal(t, VerdictBlock, result.Verdict)
	assert.False(t, result.RuleFail, "restrict block is not a rule failure")
	assert.Contains(t, result.Reasons[0], "restrict band")
	assert.Contains(t, result.Reasons[0], "15.000", "reason must name the threshold")
}

func TestEvaluate_EntropyAboveMax_Review(t *testing.T) {
	g := New(testBands())
	m := baseMetrics()
	m.Entropy = 0.65

	result, err := g.Evaluate(m, nil)
	require.NoError(t, err)

	assert.Equal(t, VerdictReview, result.Verdict)
	assert.Contains(t, result.Reasons[0], "entropy=0.650")
	assert.Contains(t, result.Reasons[0], "max_entropy=0.600")
}

func TestEvaluate_DriftAboveMax_Review(t *testing.T) {
	g := New(testBands())
	m := baseMetrics()
	m.Drift = 0.35

	result, err := g.Evaluate(m, nil)
	require.NoError(t, err)

	assert.Equal(t, VerdictReview, result.Verdict)
	assert.Contains(t, result.Reasons[0], "drift=0.350")
	assert.Contains(t, result.Reasons[0], "max_drift=0.300")
}

func TestEvaluate_VarianceAboveMax_Review(t *testing.T) {
	g := New(testBands())
	m := baseMetrics()
	m.Variance = 7.5

	result, err := g.Evaluate(m, nil)
	require.NoError(t, err)

	assert.Equal(t, VerdictReview, result.Verdict)
	assert.Contains(t, result.Reasons[0], "variance=7.500")
}

func TestEvaluate_NegativeTrendInCaution_Review(t *testing.T) {
	g := New(testBands())
	m := baseMetrics()
	m.Readiness = 20 // caution band [15, 30)
	m.Trend = -2.0

	history := []float64{25, 23, 21, 20}
	result, err := g.Evaluate(m, history)
	require.NoError(t, err)

	assert.Equal(t, VerdictReview, result.Verdict)
	assert.Contains(t, result.Reasons[0], "negative trend")
	assert.Contains(t, result.Reasons[0], "caution band")

	// The result must report the estimator-substituted values,
	// not the caller-supplied trend/variance.
	assert.Equal(t, -5.0/3.0, result.Metrics.Trend)
	assert.Equal(t, 3.6875, result.Metrics.Variance)
}

func TestEvaluate_NegativeTrendOutsideCaution_Allow(t *testing.T) {
	g := New(testBands())
	m := baseMetrics()
	m.Trend = -2.0 // readiness=50 is in accept, not caution

	result, err := g.Evaluate(m, nil)
	require.NoError(t, err)
	assert.Equal(t, VerdictAllow, result.Verdict)
}

// Safety must win over every other rule, and restrict over the REVIEW rules.
func TestEvaluate_PrecedenceOrder(t *testing.T) {
	g := New(testBands())

	// Everything bad at once: safety fires first.
	m := CoreMetrics{Readiness: 10, Entropy: 0.9, Drift: 0.9, Safety: 0, Trend: -5, Variance: 50}
	result, err := g.Evaluate(m, nil)
	require.NoError(t, err)
	assert.Equal(t, VerdictBlock, result.Verdict)
	assert.True(t, result.RuleFail)
	assert.Contains(t, result.Reasons[0], "safety rule failed")

	// Safety ok, restrict beats entropy/drift/variance.
	m.Safety = 1
	result, err = g.Evaluate(m, nil)
	require.NoError(t, err)
	assert.Equal(t, VerdictBlock, result.Verdict)
	assert.Contains(t, result.Reasons[0], "restrict band")

	// Out of restrict, entropy beats drift and variance.
	m.Readiness = 50
	result, err = g.Evaluate(m, nil)
	require.NoError(t, err)
	assert.Equal(t, VerdictReview, result.Verdict)
	assert.Contains(t, result.Reasons[0], "entropy")

	// Entropy ok, drift beats variance.
	m.Entropy = 0.5
	result, err = g.Evaluate(m, nil)
	require.NoError(t, err)
	assert.Contains(t, result.Reasons[0], "drift")

	// Drift ok, variance beats trend.
	m.Drift = 0.25
	result, err = g.Evaluate(m, nil)
	require.NoError(t, err)
	assert.Contains(t, result.Reasons[0], "variance")
}

// =============================================================================
// Determinism
// =============================================================================

func TestEvaluate_Deterministic(t *testing.T) {
	g := New(testBands())
	history := []float64{25, 23, 21, 20}

	first, err := g.Evaluate(baseMetrics(), history)
	require.NoError(t, err)
	second, err := g.Evaluate(baseMetrics(), history)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Record(), second.Record())
}

// =============================================================================
// Metric validation
// =============================================================================

func TestEvaluate_RejectsNonFiniteMetrics(t *testing.T) {
	g := New(testBands())

	mutations := []struct {
		name   string
		mutate func(*CoreMetrics, float64)
	}{
		{"readiness", func(m *CoreMetrics, v float64) { m.Readiness = v }},
		{"entropy", func(m *CoreMetrics, v float64) { m.Entropy = v }},
		{"drift", func(m *CoreMetrics, v float64) { m.Drift = v }},
		{"safety", func(m *CoreMetrics, v float64) { m.Safety = v }},
		{"trend", func(m *CoreMetrics, v float64) { m.Trend = v }},
		{"variance", func(m *CoreMetrics, v float64) { m.Variance = v }},
	}

	for _, mut := range mutations {
		for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			m := baseMetrics()
			mut.mutate(&m, bad)

			_, err := g.Evaluate(m, nil)
			require.Error(t, err, "field %s value %v must be rejected", mut.name, bad)

			code := numeric.CodeOf(err)
			assert.Contains(t, []numeric.ErrorCode{numeric.ErrCodeNaN, numeric.ErrCodeInfinity}, code)
		}
	}
}

func TestEvaluate_RejectsOutOfRangeMetrics(t *testing.T) {
	g := New(testBands())

	tests := []struct {
		name   string
		mutate func(*CoreMetrics)
	}{
		{"entropy below 0", func(m *CoreMetrics) { m.Entropy = -0.01 }},
		{"entropy above 1", func(m *CoreMetrics) { m.Entropy = 1.01 }},
		{"drift below 0", func(m *CoreMetrics) { m.Drift = -0.01 }},
		{"drift above 1", func(m *CoreMetrics) { m.Drift = 1.01 }},
		{"safety below 0", func(m *CoreMetrics) { m.Safety = -1 }},
		{"safety above 1", func(m *CoreMetrics) { m.Safety = 2 }},
		{"negative readiness", func(m *CoreMetrics) { m.Readiness = -0.5 }},
		{"negative variance", func(m *CoreMetrics) { m.Variance = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := baseMetrics()
			tt.mutate(&m)
			_, err := g.Evaluate(m, nil)
			require.Error(t, err)
			assert.True(t, numeric.IsRangeError(err))
		})
	}
}

func TestEvaluate_RejectsNonBinarySafety(t *testing.T) {
	g := New(testBands())
	m := baseMetrics()
	m.Safety = 0.5

	_, err := g.Evaluate(m, nil)
	require.Error(t, err)
	assert.True(t, IsInvalidMetrics(err))
}

func TestEvaluate_RejectsBadHistory(t *testing.T) {
	g := New(testBands())

	for _, history := range [][]float64{
		{25, math.NaN(), 21},
		{25, math.Inf(1), 21},
		{25, -1, 21},
	} {
		_, err := g.Evaluate(baseMetrics(), history)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "history[1]")
	}
}

// =============================================================================
// Band validation
// =============================================================================

func TestEvaluate_RejectsMalformedBands(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DecisionBands)
	}{
		{"restrict overlaps caution", func(b *DecisionBands) { b.RestrictMax = b.CautionMin + 1 }},
		{"caution overlaps accept", func(b *DecisionBands) { b.CautionMax = b.AcceptMin + 5 }},
		{"accept_max == accept_min", func(b *DecisionBands) { b.AcceptMax = b.AcceptMin }},
		{"accept_max < accept_min", func(b *DecisionBands) { b.AcceptMax = b.AcceptMin - 10 }},
		{"negative threshold", func(b *DecisionBands) { b.MaxDrift = -0.1 }},
		{"nan threshold", func(b *DecisionBands) { b.MaxVariance = math.NaN() }},
		{"infinite threshold", func(b *DecisionBands) { b.AcceptMax = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := testBands()
			tt.mutate(&bands)

			_, err := New(bands).Evaluate(baseMetrics(), nil)
			require.Error(t, err)
			assert.True(t, IsInvalidBands(err), "want GATE_INVALID_BANDS, got %v", err)
		})
	}
}

func TestDecisionBands_ValidateOrdering(t *testing.T) {
	base := testBands()

	violations := []struct {
		name   string
		mutate func(*DecisionBands)
	}{
		{"restrict_max > caution_min", func(b *DecisionBands) { b.RestrictMax = 20 }},
		{"caution_max > accept_min", func(b *DecisionBands) { b.CautionMax = 35 }},
		{"accept_max < accept_min", func(b *DecisionBands) { b.AcceptMax = 20 }},
		{"accept_max == accept_min", func(b *DecisionBands) { b.AcceptMax = 30 }},
	}

	for _, v := range violations {
		t.Run(v.name, func(t *testing.T) {
			b := base
			v.mutate(&b)
			err := b.Validate()
			require.Error(t, err)
			assert.True(t, IsInvalidBands(err))
		})
	}

	// Contiguous joints are the standard layout, not a violation.
	assert.NoError(t, base.Validate())
}

func TestBandMembership(t *testing.T) {
	b := testBands()

	assert.True(t, b.inRestrict(14.999))
	assert.False(t, b.inRestrict(15))

	assert.True(t, b.inCaution(15))
	assert.True(t, b.inCaution(29.999))
	assert.False(t, b.inCaution(30), "caution max is exclusive")
	assert.False(t, b.inCaution(14.999))

	assert.True(t, b.inAccept(30))
	assert.True(t, b.inAccept(80))
	assert.False(t, b.inAccept(80.001))
}
