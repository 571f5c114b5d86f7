// SPDX-License-Identifier: MPL-2.0

// Package types defines the small value types shared by scriptlink packages:
// filesystem paths, environment variable names and process exit codes. Each
// type carries its own validation and a typed error that wraps a sentinel for
// errors.Is() checks.
//
// This package is a leaf dependency: it imports only the standard library.
package types
