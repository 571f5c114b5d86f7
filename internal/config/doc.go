// SPDX-License-Identifier: MPL-2.0

// Package config handles scriptlink configuration using Viper with CUE as the file format.
//
// Configuration is loaded from the --config flag, then from config.cue in the
// user config directory (~/.config/scriptlink on Linux, ~/Library/Application Support/scriptlink
// on macOS, %APPDATA%\scriptlink on Windows), then from ./config.cue. Without a
// file the defaults apply. SCRIPTLINK_* environment variables override file values.
//
// Files are validated against an embedded CUE schema (config_schema.cue).
package config
