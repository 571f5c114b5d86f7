// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
)

// ErrInvalidEnvVarName is the sentinel error wrapped by InvalidEnvVarNameError.
var ErrInvalidEnvVarName = errors.New("invalid environment variable name")

type (
	// EnvVarName is the name of a variable in a build step environment.
	// Valid names match [A-Za-z_][A-Za-z0-9_]*.
	EnvVarName string

	// InvalidEnvVarNameError is returned when an EnvVarName does not match
	// the portable variable name grammar.
	InvalidEnvVarNameError struct {
		Value EnvVarName
	}
)

// String returns the string representation of the EnvVarName.
func (n EnvVarName) String() string { return string(n) }

// Validate returns an error if the name is empty or contains characters
// outside [A-Za-z0-9_], or starts with a digit.
func (n EnvVarName) Validate() error {
	if n == "" {
		return &InvalidEnvVarNameError{Value: n}
	}
	for i, c := range n {
		switch {
		case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return &InvalidEnvVarNameError{Value: n}
		}
	}
	return nil
}

// Error implements the error interface for InvalidEnvVarNameError.
func (e *InvalidEnvVarNameError) Error() string {
	return fmt.Sprintf("invalid environment variable name %q: must match [A-Za-z_][A-Za-z0-9_]*", e.Value)
}

// Unwrap returns ErrInvalidEnvVarName for errors.Is() compatibility.
func (e *InvalidEnvVarNameError) Unwrap() error { return ErrInvalidEnvVarName }
