// SPDX-License-Identifier: MPL-2.0

package apiscript

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/invowk/scriptlink/internal/testutil"
	"github.com/invowk/scriptlink/pkg/depenv"
	"github.com/invowk/scriptlink/pkg/types"
)

// testBuild is a sandboxed output base with one provider source tree and
// one dependent output directory inside it.
type testBuild struct {
	base      string
	sourceDir string
	outDir    string
}

func newTestBuild(t *testing.T) testBuild {
	t.Helper()
	base := testutil.RealTempDir(t)
	b := testBuild{
		base:      base,
		sourceDir: filepath.Join(base, "external", "plugin-cors"),
		outDir:    filepath.Join(base, "out", "app"),
	}
	testutil.MustMkdirAll(t, b.sourceDir, 0o755)
	testutil.MustMkdirAll(t, b.outDir, 0o755)
	return b
}

// script writes a script below the output base and returns its absolute path.
func (b testBuild) script(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(b.base, filepath.FromSlash(rel))
	testutil.MustWriteFile(t, path, content)
	return path
}

// context returns a BuildContext whose snapshot holds the output base, the
// source root and vars.
func (b testBuild) context(vars map[string]string, opts ...Option) (*BuildContext, *bytes.Buffer) {
	env := map[string]string{
		DefaultOutputBaseVar.String(): b.base,
		DefaultSourceRootVar.String(): b.sourceDir,
	}
	for k, v := range vars {
		env[k] = v
	}
	var directives bytes.Buffer
	opts = append([]Option{WithDirectiveWriter(&directives)}, opts...)
	return NewBuildContext(depenv.FromMap(env), opts...), &directives
}

func (b testBuild) out() types.FilesystemPath {
	return types.FilesystemPath(b.outDir)
}

func manifestStrings(m Manifest) []string {
	out := make([]string, len(m))
	for i, e := range m {
		out[i] = string(e)
	}
	return out
}
