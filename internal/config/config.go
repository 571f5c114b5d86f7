// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/invowk/scriptlink/internal/issue"
	"github.com/invowk/scriptlink/pkg/cueutil"
	"github.com/invowk/scriptlink/pkg/types"
)

const (
	// AppName is the application name.
	AppName = "scriptlink"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. SCRIPTLINK_LOG_LEVEL.
	EnvPrefix = "SCRIPTLINK"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the scriptlink configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DefaultConfigPath returns the config file inside ConfigDir.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, types.FilesystemPath, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("convention.output_base_var", defaults.Convention.OutputBaseVar.String())
	v.SetDefault("convention.source_root_var", defaults.Convention.SourceRootVar.String())
	v.SetDefault("convention.dependency_prefix", defaults.Convention.DependencyPrefix)
	v.SetDefault("convention.key", defaults.Convention.Key)
	v.SetDefault("convention.framework_links", defaults.Convention.FrameworkLinks)
	v.SetDefault("convention.directive_prefix", defaults.Convention.DirectivePrefix)
	v.SetDefault("convention.manifest_file", defaults.Convention.ManifestFile)
	v.SetDefault("log.level", defaults.Log.Level.String())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		path := opts.ConfigFilePath.String()
		if !fileExists(path) {
			return nil, "", issue.Wrap(fmt.Errorf("config file not found: %s", path), "load configuration", path,
				"Verify the file path is correct",
				"Run 'scriptlink config init --config "+path+"' to create it")
		}
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", loadError(path, err)
		}
		resolvedPath = path
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		for _, candidate := range []string{
			filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt),
			ConfigFileName + "." + ConfigFileExt,
		} {
			if !fileExists(candidate) {
				continue
			}
			if err := loadCUEIntoViper(v, candidate); err != nil {
				return nil, "", loadError(candidate, err)
			}
			resolvedPath = candidate
			break
		}
		// If no config file found, use defaults (no error)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides bypass the CUE schema.
	if err := cfg.Validate(); err != nil {
		return nil, "", issue.Wrap(err, "validate configuration", resolvedPath,
			"Variable names must match [A-Za-z_][A-Za-z0-9_]*",
			"Check "+EnvPrefix+"_* environment variables")
	}

	return &cfg, types.FilesystemPath(resolvedPath), nil
}

func loadError(path string, err error) error {
	return issue.Wrap(err, "load configuration", path,
		"Check that the file contains valid CUE syntax",
		"Verify the configuration values match the expected schema")
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath types.FilesystemPath) (string, error) {
	if configDirPath != "" {
		return configDirPath.String(), nil
	}
	return ConfigDir()
}

// loadCUEIntoViper validates a CUE config file against #Config and merges
// the fields it sets into Viper. Every field is optional, so unset values are
// left to the defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.ParseAndDecode[map[string]any]([]byte(configSchema), data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default config to path, or to
// DefaultConfigPath when path is empty. An existing file is left alone and
// reported through created.
func CreateDefaultConfig(path types.FilesystemPath) (written types.FilesystemPath, created bool, err error) {
	target := path.String()
	if target == "" {
		if target, err = DefaultConfigPath(); err != nil {
			return "", false, err
		}
	}

	if fileExists(target) {
		return types.FilesystemPath(target), false, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(target, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return types.FilesystemPath(target), true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// scriptlink configuration\n\n")

	c := cfg.Convention
	sb.WriteString("convention: {\n")
	fmt.Fprintf(&sb, "\toutput_base_var:   %q\n", c.OutputBaseVar)
	fmt.Fprintf(&sb, "\tsource_root_var:   %q\n", c.SourceRootVar)
	fmt.Fprintf(&sb, "\tdependency_prefix: %q\n", c.DependencyPrefix)
	fmt.Fprintf(&sb, "\tkey:               %q\n", c.Key)
	fmt.Fprintf(&sb, "\tframework_links:   %q\n", c.FrameworkLinks)
	fmt.Fprintf(&sb, "\tdirective_prefix:  %q\n", c.DirectivePrefix)
	fmt.Fprintf(&sb, "\tmanifest_file:     %q\n", c.ManifestFile)
	sb.WriteString("}\n")

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tlevel: %q\n", cfg.Log.Level)
	sb.WriteString("}\n")

	return sb.String()
}

// TOML renders the configuration as TOML, the format `config show` prints.
func (c *Config) TOML() ([]byte, error) {
	return toml.Marshal(c)
}
