package formula

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownFormula   = errors.New("unknown formula")
	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidValue     = errors.New("invalid value")
	ErrUnimplemented    = errors.New("formula not implemented")
)

// UnknownFormulaError is returned when a catalog has no definition for ID.
type UnknownFormulaError struct {
	ID string
}

func (e *UnknownFormulaError) Error() string {
	return fmt.Sprintf("unknown formula %q", e.ID)
}

func (e *UnknownFormulaError) Is(target error) bool { return target == ErrUnknownFormula }

// MissingParameterError lists every required parameter that had no value.
type MissingParameterError struct {
	Formula string
	Params  []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("eq. %s: missing parameter(s): %s", e.Formula, strings.Join(e.Params, ", "))
}

func (e *MissingParameterError) Is(target error) bool { return target == ErrMissingParameter }

// InvalidValueError reports a non-finite value or a violated domain constraint.
type InvalidValueError struct {
	Formula    string
	Param      string
	Value      float64
	Constraint string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("eq. %s: invalid value %s=%g: must be %s", e.Formula, e.Param, e.Value, e.Constraint)
}

func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }

// Kind names the error class for API responses. Empty for foreign errors.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrUnknownFormula):
		return "unknown_formula"
	case errors.Is(err, ErrMissingParameter):
		return "missing_parameter"
	case errors.Is(err, ErrInvalidValue):
		return "invalid_value"
	case errors.Is(err, ErrUnimplemented):
		return "unimplemented"
	}
	return ""
}

// ErrorParams returns the parameter names an error refers to.
func ErrorParams(err error) []string {
	var missing *MissingParameterError
	if errors.As(err, &missing) {
		return missing.Params
	}
	var invalid *InvalidValueError
	if errors.As(err, &invalid) {
		return []string{invalid.Param}
	}
	return nil
}
