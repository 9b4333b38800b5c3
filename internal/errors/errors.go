package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected failure modes. The composition core itself
// never fails; these cover parameter validation at the CLI and API edges.
var (
	ErrUnknownScale = errors.New("unknown scale")
	ErrUnknownKey   = errors.New("unknown key")
	ErrDigitRange   = errors.New("digit count out of range")
	ErrLevelRange   = errors.New("level must be between 0 and 1")
	ErrBadFormat    = errors.New("unknown output format")
)

// ParamError ties a validation failure to the parameter that caused it.
type ParamError struct {
	Param string // "digits", "scale", "complexity", ...
	Value any
	Cause error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Param, e.Value, e.Cause)
}

func (e *ParamError) Unwrap() error {
	return e.Cause
}

// NewParamError creates a ParamError.
func NewParamError(param string, value any, cause error) *ParamError {
	return &ParamError{Param: param, Value: value, Cause: cause}
}
