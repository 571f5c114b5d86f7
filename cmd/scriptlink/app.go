// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/invowk/scriptlink/internal/config"
	"github.com/invowk/scriptlink/internal/issue"
	"github.com/invowk/scriptlink/pkg/apiscript"
	"github.com/invowk/scriptlink/pkg/depenv"
	"github.com/invowk/scriptlink/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every command handler receives an App and reads
	// configuration, the environment and the logger through it.
	App struct {
		Config  config.Provider
		Environ func() []string
		stdout  io.Writer
		stderr  io.Writer

		flags   globalFlags
		cfg     *config.Config
		cfgPath types.FilesystemPath
		logger  *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config  config.Provider
		Environ func() []string
		Stdout  io.Writer
		Stderr  io.Writer
	}

	globalFlags struct {
		configFile string
		verbose    bool
		envFiles   []string
	}
)

// NewApp creates an App, filling nil dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:  deps.Config,
		Environ: deps.Environ,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Environ == nil {
		app.Environ = os.Environ
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	app.logger = newLogger(app.stderr, log.InfoLevel)
	return app
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// loadConfig loads the configuration once per process and sets up the
// logger from it.
func (a *App) loadConfig(ctx context.Context) error {
	cfg, path, err := a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(a.flags.configFile),
	})
	if err != nil {
		return newServiceError(err, issue.ConfigLoadFailedId)
	}
	a.cfg, a.cfgPath = cfg, path

	level := cfg.Log.Level.Level()
	if a.flags.verbose {
		level = log.DebugLevel
	}
	a.logger = newLogger(a.stderr, level)
	if path != "" {
		a.logger.Debug("loaded configuration", "path", path)
	}
	return nil
}

// convention returns the configured naming convention.
func (a *App) convention() apiscript.Convention {
	if a.cfg == nil {
		return apiscript.DefaultConvention()
	}
	return a.cfg.Convention.Apiscript()
}

// environment returns the process environment overlaid with every
// --env-file, in flag order.
func (a *App) environment() (depenv.Snapshot, error) {
	env := depenv.FromEnviron(a.Environ())
	for _, f := range a.flags.envFiles {
		fileEnv, err := depenv.LoadFile(types.FilesystemPath(f))
		if err != nil {
			return depenv.Snapshot{}, newServiceError(
				issue.Wrap(err, "load env file", f,
					"Append ? to the path if the file may be missing"),
				issue.EnvFileLoadFailedId,
			)
		}
		a.logger.Debug("loaded env file", "path", f, "vars", fileEnv.Len())
		env = env.Merge(fileEnv)
	}
	return env, nil
}

// buildContext returns the protocol context for one command run.
func (a *App) buildContext(directives io.Writer, opts ...apiscript.Option) (*apiscript.BuildContext, error) {
	env, err := a.environment()
	if err != nil {
		return nil, err
	}
	base := []apiscript.Option{
		apiscript.WithConvention(a.convention()),
		apiscript.WithDirectiveWriter(directives),
		apiscript.WithLogger(a.logger),
	}
	return apiscript.NewBuildContext(env, append(base, opts...)...), nil
}
