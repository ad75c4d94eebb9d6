package gate

import (
	"errors"
	"fmt"
)

// GateError represents a malformed-input error detected during gate
// construction or evaluation.
//
// Gate errors cover:
//   - Invalid bands: thresholds negative, non-finite, or not ordered
//     restrict < caution < accept
//   - Invalid metrics: structurally malformed metrics that pass the
//     per-field numeric checks (e.g. a non-binary safety score)
//
// Per-field NaN/Infinity/range violations are reported as
// *numeric.CheckError instead, so callers can recover the parameter name
// and violated bound.
type GateError struct {
	// Code identifies the error category.
	Code GateErrorCode

	// Message is a human-readable description.
	Message string

	// Context identifies the band profile involved, when known.
	Context string
}

// GateErrorCode categorizes gate errors.
type GateErrorCode string

const (
	// ErrCodeInvalidBands indicates malformed decision bands.
	ErrCodeInvalidBands GateErrorCode = "GATE_INVALID_BANDS"

	// ErrCodeInvalidMetrics indicates structurally malformed metrics.
	ErrCodeInvalidMetrics GateErrorCode = "GATE_INVALID_METRICS"
)

// Error implements the error interface.
func (e *GateError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s (context=%s)", e.Code, e.Message, e.Context)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidBands returns true if the error is a malformed-bands error.
// Uses errors.As to handle wrapped errors.
func IsInvalidBands(err error) bool {
	var ge *GateError
	if errors.As(err, &ge) {
		return ge.Code == ErrCodeInvalidBands
	}
	return false
}

// IsInvalidMetrics returns true if the error is a malformed-metrics error.
func IsInvalidMetrics(err error) bool {
	var ge *GateError
	if errors.As(err, &ge) {
		return ge.Code == ErrCodeInvalidMetrics
	}
	return false
}
