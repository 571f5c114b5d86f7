// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/scriptlink/internal/config"
	"github.com/invowk/scriptlink/internal/issue"
	"github.com/invowk/scriptlink/pkg/types"
)

// newConfigCommand creates the `scriptlink config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage scriptlink configuration",
		Long: `Manage scriptlink configuration.

Configuration is stored in:
  - Linux: ~/.config/scriptlink/config.cue
  - macOS: ~/Library/Application Support/scriptlink/config.cue
  - Windows: %APPDATA%\scriptlink\config.cue

SCRIPTLINK_<SECTION>_<KEY> environment variables override file values,
e.g. SCRIPTLINK_LOG_LEVEL=debug.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.cfg.TOML()
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			source := "defaults"
			if app.cfgPath != "" {
				source = app.cfgPath.String()
			}
			fmt.Fprintf(app.stdout, "# source: %s\n%s", source, data)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfgPath != "" {
				fmt.Fprintln(app.stdout, app.cfgPath)
				return nil
			}
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			app.logger.Info("config file does not exist, using defaults")
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Long: `Write the default configuration file to --config, or to the default
location. An existing file is left untouched.`,
		Args: exactArgs(0),
		// A broken config file must not prevent writing a new one elsewhere.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig(types.FilesystemPath(app.flags.configFile))
			if err != nil {
				return newServiceError(issue.Wrap(err, "write default configuration", app.flags.configFile), issue.ConfigLoadFailedId)
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s %s\n", WarningStyle.Render("Config already exists:"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Created"), path)
			return nil
		},
	})

	return cfgCmd
}
