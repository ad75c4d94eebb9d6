package energy

import (
	"errors"
	"fmt"
)

// Error codes for the energy projection pipeline.
const (
	// ErrCodeInvalidState marks a perception state that failed validation
	// before any stage ran.
	ErrCodeInvalidState = "INVALID_STATE"

	// ErrCodeFormulaOverflow marks a stage whose computed result was NaN
	// or infinite despite valid inputs.
	ErrCodeFormulaOverflow = "FORMULA_OVERFLOW"
)

// StateError reports a perception state that failed validation.
// It wraps the underlying field-level check error.
type StateError struct {
	Message string
	Err     error
}

func (e *StateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrCodeInvalidState, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrCodeInvalidState, e.Message)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// FormulaError reports a stage computation that produced NaN or infinity.
type FormulaError struct {
	Stage   string
	Message string
}

func (e *FormulaError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrCodeFormulaOverflow, e.Stage, e.Message)
}

// IsInvalidState reports whether err is a state validation failure.
func IsInvalidState(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}

// IsFormulaOverflow reports whether err is a stage overflow.
func IsFormulaOverflow(err error) bool {
	var fe *FormulaError
	return errors.As(err, &fe)
}
