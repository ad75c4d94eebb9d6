package gate

import (
	"fmt"

	"github.com/roach88/gonogo/internal/numeric"
)

// ComputeTrend returns the end-to-end slope of a chronological readiness
// history: (last - first) / (count - 1).
//
// This is deliberately not a regression fit; the simple slope is cheap,
// deterministic, and sufficient for the gate's negative-trend heuristic.
// Histories shorter than two points have no slope and return 0.
func ComputeTrend(history []float64) float64 {
	if len(history) < 2 {
		return 0
	}
	return (history[len(history)-1] - history[0]) / float64(len(history)-1)
}

// ComputeVariance returns the population variance of a readiness history:
// mean of squared deviations from the arithmetic mean, divisor = count.
//
// The divisor is count, not count-1: the history window is treated as the
// whole population, not a sample. Histories shorter than two points return 0.
func ComputeVariance(history []float64) float64 {
	if len(history) < 2 {
		return 0
	}

	var sum float64
	for _, v := range history {
		sum += v
	}
	mean := sum / float64(len(history))

	var variance float64
	for _, v := range history {
		diff := v - mean
		variance += diff * diff
	}
	return variance / float64(len(history))
}

// validateHistory rejects histories containing NaN, infinite, or negative
// readiness values. A nil or empty history is valid (no substitution occurs).
func validateHistory(history []float64) error {
	for i, v := range history {
		name := fmt.Sprintf("history[%d]", i)
		if err := numeric.CheckFinite(name, v); err != nil {
			return err
		}
		if err := numeric.CheckMin(name, v, 0); err != nil {
			return err
		}
	}
	return nil
}
