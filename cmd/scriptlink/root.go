// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/invowk/scriptlink/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scriptlink",
		Short: "Propagate global API scripts from plugins to the apps that depend on them",
		Long: TitleStyle.Render("scriptlink") + SubtitleStyle.Render(" - global API script propagation for build steps") + `

A provider's build step publishes the location of its generated global API
script; the orchestrator forwards it to every dependent as a namespaced
environment variable. A dependent's build step aggregates those variables
into a manifest and later reads every script back in manifest order.

` + SubtitleStyle.Render("Examples:") + `
  scriptlink publish gen/global-api.js            In a provider build step
  scriptlink aggregate --out-dir "$OUT_DIR"       In a dependent build step
  scriptlink read --out-dir "$OUT_DIR"            Print every script, in order
  scriptlink config show                          Show the naming convention`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&app.flags.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/scriptlink/config.cue)")
	rootCmd.PersistentFlags().StringArrayVar(&app.flags.envFiles, "env-file", nil, "dotenv file to overlay on the environment (suffix with ? if optional; repeatable)")

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newPublishCommand(app))
	rootCmd.AddCommand(newAggregateCommand(app))
	rootCmd.AddCommand(newReadCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newIssuesCommand(app))

	return rootCmd
}

// Execute runs the CLI and exits the process on failure.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(Version),
		fang.WithCommit(Commit),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	); err != nil {
		os.Exit(int(exitCode(err)))
	}
}

// handleError is the fang error handler: the error, its suggestions and the
// matching issue catalog entry.
func (a *App) handleError(w io.Writer, _ fang.Styles, err error) {
	fmt.Fprintln(w, ErrorStyle.Render("Error:")+" "+formatErrorForDisplay(err, a.flags.verbose))

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		renderServiceError(w, a.logger, svcErr)
	}
}

func exitCode(err error) types.ExitCode {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitFailure
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
