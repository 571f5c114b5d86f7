// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath functions that
// accept and return types.FilesystemPath, plus the canonicalize and
// prefix-strip operations used to turn an on-disk asset location into the
// base-relative form that crosses build step boundaries.
package fspath

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/invowk/scriptlink/pkg/types"
)

// ErrOutsideBase is returned by StripPrefix when the path does not lie at or
// below the base directory.
var ErrOutsideBase = errors.New("path is not under base directory")

// Join wraps filepath.Join, accepting and returning types.FilesystemPath.
func Join(elem ...types.FilesystemPath) types.FilesystemPath {
	strs := make([]string, len(elem))
	for i, e := range elem {
		strs[i] = string(e)
	}
	return types.FilesystemPath(filepath.Join(strs...))
}

// JoinStr wraps filepath.Join, accepting a typed base path and raw string
// segments. Use this when joining a validated path with literal constants
// such as the manifest file name.
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Dir wraps filepath.Dir for FilesystemPath.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// Abs wraps filepath.Abs for FilesystemPath. Returns an error if the
// underlying OS call fails.
func Abs(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

// Clean wraps filepath.Clean for FilesystemPath.
func Clean(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Clean(string(p)))
}

// FromSlash wraps filepath.FromSlash for FilesystemPath. Converts forward
// slashes to the OS-specific path separator.
func FromSlash(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.FromSlash(string(p)))
}

// ToSlash wraps filepath.ToSlash for FilesystemPath.
func ToSlash(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.ToSlash(string(p)))
}

// IsAbs wraps filepath.IsAbs for FilesystemPath.
func IsAbs(p types.FilesystemPath) bool {
	return filepath.IsAbs(string(p))
}

// Canonicalize returns the definitive absolute form of p: made absolute
// against the working directory, every symlink resolved and the result
// cleaned. The path must exist.
func Canonicalize(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := Abs(p)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(string(abs))
	if err != nil {
		return "", fmt.Errorf("resolving symlinks: %w", err)
	}
	return Clean(types.FilesystemPath(resolved)), nil
}

// StripPrefix returns p relative to base. Both paths are expected to be
// canonical. The result never contains ".." components; a path outside base
// yields ErrOutsideBase. A path equal to base yields ".".
func StripPrefix(p, base types.FilesystemPath) (types.FilesystemPath, error) {
	rel, err := filepath.Rel(string(base), string(p))
	if err != nil {
		return "", fmt.Errorf("%w: %s not under %s: %w", ErrOutsideBase, p, base, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %s not under %s", ErrOutsideBase, p, base)
	}
	return types.FilesystemPath(rel), nil
}
