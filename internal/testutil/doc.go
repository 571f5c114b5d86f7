// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include environment variable management (MustSetenv,
// MustUnsetenv), file fixtures (MustWriteFile, MustReadFile, MustMkdirAll)
// and RealTempDir, which returns a temp directory with symlinks resolved so
// that canonicalized paths compare equal on macOS, where /tmp is a symlink.
package testutil
