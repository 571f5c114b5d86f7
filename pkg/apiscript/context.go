// SPDX-License-Identifier: MPL-2.0

package apiscript

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/invowk/scriptlink/pkg/depenv"
	"github.com/invowk/scriptlink/pkg/fspath"
	"github.com/invowk/scriptlink/pkg/types"
)

type (
	// BuildContext carries everything a protocol step needs from its build
	// step: the environment snapshot, the naming convention, where to write
	// directives and where to log. Create it with NewBuildContext.
	BuildContext struct {
		env        depenv.Snapshot
		convention Convention
		outputBase types.FilesystemPath
		sourceRoot types.FilesystemPath
		directives io.Writer
		logger     *log.Logger
	}

	// Option configures a BuildContext.
	Option func(*BuildContext)
)

// NewBuildContext returns a context reading variables from env.
// Without options it uses DefaultConvention, writes directives to stdout
// and discards log output. A convention set with WithConvention is checked
// by every protocol step, which fails with an InvalidConventionError before
// touching the environment or the filesystem.
func NewBuildContext(env depenv.Snapshot, opts ...Option) *BuildContext {
	bc := &BuildContext{
		env:        env,
		convention: DefaultConvention(),
		directives: os.Stdout,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(bc)
	}
	return bc
}

// WithConvention replaces DefaultConvention.
func WithConvention(c Convention) Option {
	return func(bc *BuildContext) {
		bc.convention = c
	}
}

// WithOutputBase sets the output base explicitly instead of reading
// Convention.OutputBaseVar.
func WithOutputBase(p types.FilesystemPath) Option {
	return func(bc *BuildContext) {
		bc.outputBase = p
	}
}

// WithSourceRoot sets the source root explicitly instead of reading
// Convention.SourceRootVar.
func WithSourceRoot(p types.FilesystemPath) Option {
	return func(bc *BuildContext) {
		bc.sourceRoot = p
	}
}

// WithDirectiveWriter sets where Publish writes directive lines.
func WithDirectiveWriter(w io.Writer) Option {
	return func(bc *BuildContext) {
		bc.directives = w
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(bc *BuildContext) {
		if l != nil {
			bc.logger = l
		}
	}
}

// Env returns the environment snapshot.
func (bc *BuildContext) Env() depenv.Snapshot { return bc.env }

// Convention returns the naming convention in use.
func (bc *BuildContext) Convention() Convention { return bc.convention }

// OutputBase returns the canonical output base.
func (bc *BuildContext) OutputBase() (types.FilesystemPath, error) {
	base, err := bc.lookupPath(bc.outputBase, bc.convention.OutputBaseVar)
	if err != nil {
		return "", err
	}
	canon, err := fspath.Canonicalize(base)
	if err != nil {
		return "", &PathResolutionError{Path: base, Err: err}
	}
	return canon, nil
}

// SourceRoot returns the provider source root. It is not canonicalized;
// paths joined onto it are.
func (bc *BuildContext) SourceRoot() (types.FilesystemPath, error) {
	return bc.lookupPath(bc.sourceRoot, bc.convention.SourceRootVar)
}

func (bc *BuildContext) lookupPath(explicit types.FilesystemPath, name types.EnvVarName) (types.FilesystemPath, error) {
	if explicit.IsSet() {
		return explicit, nil
	}
	v, ok := bc.env.Lookup(name)
	if !ok || v == "" {
		return "", &MissingEnvVarError{Name: name}
	}
	return types.FilesystemPath(v), nil
}

// relativize turns path, which must name a regular file, into its
// slash-separated, output-base-relative form. Relative inputs are joined onto
// the source root first.
func (bc *BuildContext) relativize(path types.FilesystemPath) (types.FilesystemPath, error) {
	base, err := bc.OutputBase()
	if err != nil {
		return "", err
	}

	resolved := path
	if !fspath.IsAbs(path) {
		root, err := bc.SourceRoot()
		if err != nil {
			return "", err
		}
		resolved = fspath.Join(root, path)
	}

	canon, err := fspath.Canonicalize(resolved)
	if err != nil {
		return "", &PathResolutionError{Path: resolved, Err: err}
	}

	info, err := os.Stat(canon.String())
	if err != nil {
		return "", &PathResolutionError{Path: canon, Err: err}
	}
	if !info.Mode().IsRegular() {
		return "", &PathResolutionError{Path: canon, Err: ErrNotRegularFile}
	}

	rel, err := fspath.StripPrefix(canon, base)
	if err != nil {
		return "", &PathOutsideBaseError{Path: canon, Base: base}
	}
	return fspath.ToSlash(rel), nil
}
