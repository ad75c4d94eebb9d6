// Package numeric provides the shared numeric-safety checks applied at every
// stage boundary of the decision core.
//
// Every public entry point of the energy and gate packages validates its
// inputs with these helpers before computing anything. A failed check returns
// a *CheckError carrying the parameter name, the offending value, and (for
// range violations) the violated bound, so callers can reconstruct exactly
// what was rejected without parsing the message.
package numeric

import (
	"errors"
	"fmt"
	"math"
)

// ErrorCode categorizes numeric-safety failures.
type ErrorCode string

const (
	// ErrCodeNaN indicates a parameter was NaN.
	ErrCodeNaN ErrorCode = "NAN_DETECTED"

	// ErrCodeInfinity indicates a parameter was +Inf or -Inf.
	ErrCodeInfinity ErrorCode = "INFINITY_DETECTED"

	// ErrCodeRange indicates a finite parameter was outside its declared domain.
	ErrCodeRange ErrorCode = "INVALID_RANGE"
)

// CheckError reports a single parameter failing a numeric-safety check.
type CheckError struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Param is the name of the offending parameter.
	Param string

	// Value is the rejected value.
	Value float64

	// Min and Max carry the violated domain for range errors.
	// Open bounds are represented as -Inf / +Inf.
	Min float64
	Max float64
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	switch e.Code {
	case ErrCodeNaN:
		return fmt.Sprintf("%s: %s is NaN", e.Code, e.Param)
	case ErrCodeInfinity:
		return fmt.Sprintf("%s: %s is infinity", e.Code, e.Param)
	default:
		return fmt.Sprintf("%s: %s=%g out of range [%g, %g]", e.Code, e.Param, e.Value, e.Min, e.Max)
	}
}

// CodeOf extracts the ErrorCode from an error.
// Returns "" if the error is not a *CheckError.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// IsRangeError returns true if the error is an out-of-domain error.
func IsRangeError(err error) bool {
	return CodeOf(err) == ErrCodeRange
}

// CheckNaN rejects NaN.
func CheckNaN(param string, v float64) error {
	if math.IsNaN(v) {
		return &CheckError{Code: ErrCodeNaN, Param: param, Value: v}
	}
	return nil
}

// CheckInfinity rejects +Inf and -Inf.
func CheckInfinity(param string, v float64) error {
	if math.IsInf(v, 0) {
		return &CheckError{Code: ErrCodeInfinity, Param: param, Value: v}
	}
	return nil
}

// CheckFinite rejects NaN first, then infinity.
func CheckFinite(param string, v float64) error {
	if err := CheckNaN(param, v); err != nil {
		return err
	}
	return CheckInfinity(param, v)
}

// CheckRange rejects finite values outside [min, max].
// NaN/Infinity must be rejected by the caller first; a NaN value here
// is reported as a range violation.
func CheckRange(param string, v, min, max float64) error {
	if v < min || v > max || math.IsNaN(v) {
		return &CheckError{Code: ErrCodeRange, Param: param, Value: v, Min: min, Max: max}
	}
	return nil
}

// CheckMin rejects values below min (open upper bound).
func CheckMin(param string, v, min float64) error {
	if v < min || math.IsNaN(v) {
		return &CheckError{Code: ErrCodeRange, Param: param, Value: v, Min: min, Max: math.Inf(1)}
	}
	return nil
}

// CheckMax rejects values above max (open lower bound).
func CheckMax(param string, v, max float64) error {
	if v > max || math.IsNaN(v) {
		return &CheckError{Code: ErrCodeRange, Param: param, Value: v, Min: math.Inf(-1), Max: max}
	}
	return nil
}

// CheckUnit rejects values outside the unit interval [0, 1].
func CheckUnit(param string, v float64) error {
	return CheckRange(param, v, 0, 1)
}
