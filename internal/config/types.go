// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/invowk/scriptlink/pkg/apiscript"
	"github.com/invowk/scriptlink/pkg/types"
)

const (
	// LogLevelDebug logs classified variables and manifest writes.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the default level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn only logs warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError only logs errors.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level written by the CLI logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Convention names the variables, keys and files of the protocol
		Convention ConventionConfig `json:"convention" mapstructure:"convention" toml:"convention"`
		// Log configures the CLI logger
		Log LogConfig `json:"log" mapstructure:"log" toml:"log"`
	}

	// ConventionConfig mirrors apiscript.Convention in the config file.
	ConventionConfig struct {
		OutputBaseVar    types.EnvVarName `json:"output_base_var" mapstructure:"output_base_var" toml:"output_base_var"`
		SourceRootVar    types.EnvVarName `json:"source_root_var" mapstructure:"source_root_var" toml:"source_root_var"`
		DependencyPrefix string           `json:"dependency_prefix" mapstructure:"dependency_prefix" toml:"dependency_prefix"`
		Key              string           `json:"key" mapstructure:"key" toml:"key"`
		FrameworkLinks   string           `json:"framework_links" mapstructure:"framework_links" toml:"framework_links"`
		DirectivePrefix  string           `json:"directive_prefix" mapstructure:"directive_prefix" toml:"directive_prefix"`
		ManifestFile     string           `json:"manifest_file" mapstructure:"manifest_file" toml:"manifest_file"`
	}

	// LogConfig configures the CLI logger.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level" toml:"level"`
	}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	d := apiscript.DefaultConvention()
	return &Config{
		Convention: ConventionConfig{
			OutputBaseVar:    d.OutputBaseVar,
			SourceRootVar:    d.SourceRootVar,
			DependencyPrefix: d.DependencyPrefix,
			Key:              d.Key,
			FrameworkLinks:   d.FrameworkLinks,
			DirectivePrefix:  d.DirectivePrefix,
			ManifestFile:     d.ManifestFile,
		},
		Log: LogConfig{
			Level: LogLevelInfo,
		},
	}
}

// Apiscript returns the convention in the form the protocol steps take.
func (c ConventionConfig) Apiscript() apiscript.Convention {
	return apiscript.Convention{
		OutputBaseVar:    c.OutputBaseVar,
		SourceRootVar:    c.SourceRootVar,
		DependencyPrefix: c.DependencyPrefix,
		Key:              c.Key,
		FrameworkLinks:   c.FrameworkLinks,
		DirectivePrefix:  c.DirectivePrefix,
		ManifestFile:     c.ManifestFile,
	}
}

// Validate checks the convention and the log level.
func (c Config) Validate() error {
	var errs []error
	if err := c.Convention.Apiscript().Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Log.Level.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig and the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// Validate returns an error if the level is not one of the known values.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// Level converts to the charmbracelet/log level. Unknown values map to info.
func (l LogLevel) Level() log.Level {
	lvl, err := log.ParseLevel(string(l))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }
