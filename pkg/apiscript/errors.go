// SPDX-License-Identifier: MPL-2.0

package apiscript

import (
	"errors"
	"fmt"

	"github.com/invowk/scriptlink/pkg/types"
)

var (
	// ErrMissingEnvVar is wrapped by MissingEnvVarError.
	ErrMissingEnvVar = errors.New("missing environment variable")
	// ErrPathResolution is wrapped by PathResolutionError.
	ErrPathResolution = errors.New("path resolution failed")
	// ErrPathOutsideBase is wrapped by PathOutsideBaseError.
	ErrPathOutsideBase = errors.New("path outside output base")
	// ErrManifestEncode is wrapped by ManifestEncodeError.
	ErrManifestEncode = errors.New("manifest encoding failed")
	// ErrManifestDecode is wrapped by ManifestDecodeError.
	ErrManifestDecode = errors.New("manifest decoding failed")
	// ErrIO is wrapped by IOError.
	ErrIO = errors.New("i/o failure")

	// ErrNotRegularFile is the cause of a PathResolutionError for a path
	// that resolves to a directory or another non-regular file.
	ErrNotRegularFile = errors.New("not a regular file")
)

type (
	// MissingEnvVarError is returned when a required variable is absent
	// from the build context's environment snapshot.
	MissingEnvVarError struct {
		Name types.EnvVarName
	}

	// PathResolutionError is returned when a path cannot be canonicalized,
	// usually because it does not exist, or does not name a regular file.
	PathResolutionError struct {
		Path types.FilesystemPath
		Err  error
	}

	// PathOutsideBaseError is returned when a canonical path does not lie at
	// or below the output base, meaning the asset was produced outside the
	// sandboxed build root.
	PathOutsideBaseError struct {
		Path types.FilesystemPath
		Base types.FilesystemPath
	}

	// ManifestEncodeError is returned when the manifest entries cannot be
	// encoded.
	ManifestEncodeError struct {
		Path types.FilesystemPath
		Err  error
	}

	// ManifestDecodeError is returned when a manifest file exists but is not
	// an array of strings.
	ManifestDecodeError struct {
		Path types.FilesystemPath
		Err  error
	}

	// IOError is returned when reading or writing a file or the directive
	// stream fails.
	IOError struct {
		Op   string
		Path types.FilesystemPath
		Err  error
	}
)

// Error implements the error interface.
func (e *MissingEnvVarError) Error() string {
	return fmt.Sprintf("required environment variable %s is not set", e.Name)
}

// Unwrap returns ErrMissingEnvVar.
func (e *MissingEnvVarError) Unwrap() error { return ErrMissingEnvVar }

// Error implements the error interface.
func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrPathResolution and the underlying cause.
func (e *PathResolutionError) Unwrap() []error { return []error{ErrPathResolution, e.Err} }

// Error implements the error interface.
func (e *PathOutsideBaseError) Error() string {
	return fmt.Sprintf("path %s is not under output base %s", e.Path, e.Base)
}

// Unwrap returns ErrPathOutsideBase.
func (e *PathOutsideBaseError) Unwrap() error { return ErrPathOutsideBase }

// Error implements the error interface.
func (e *ManifestEncodeError) Error() string {
	return fmt.Sprintf("failed to encode manifest %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrManifestEncode and the underlying cause.
func (e *ManifestEncodeError) Unwrap() []error { return []error{ErrManifestEncode, e.Err} }

// Error implements the error interface.
func (e *ManifestDecodeError) Error() string {
	return fmt.Sprintf("failed to decode manifest %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrManifestDecode and the underlying cause.
func (e *ManifestDecodeError) Unwrap() []error { return []error{ErrManifestDecode, e.Err} }

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns ErrIO and the underlying cause.
func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }
