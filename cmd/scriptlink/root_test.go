// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/fang"

	"github.com/invowk/scriptlink/internal/config"
	"github.com/invowk/scriptlink/internal/issue"
	"github.com/invowk/scriptlink/internal/testutil"
	"github.com/invowk/scriptlink/pkg/apiscript"
	"github.com/invowk/scriptlink/pkg/types"
)

type staticConfig struct {
	cfg *config.Config
	err error
}

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, types.FilesystemPath, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.cfg, "", nil
}

type cliRun struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	err    error
}

// run executes the command tree in-process with env as the whole environment.
func run(t *testing.T, cfg *config.Config, env map[string]string, args ...string) *cliRun {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	var environ []string
	for k, v := range env {
		environ = append(environ, k+"="+v)
	}

	r := &cliRun{}
	app := NewApp(Dependencies{
		Config:  staticConfig{cfg: cfg},
		Environ: func() []string { return environ },
		Stdout:  &r.stdout,
		Stderr:  &r.stderr,
	})
	root := NewRootCommand(app)
	root.SetArgs(args)
	r.err = root.ExecuteContext(context.Background())
	return r
}

func TestPublishCommand(t *testing.T) {
	t.Parallel()

	base := testutil.RealTempDir(t)
	src := filepath.Join(base, "external", "plugin-cors")
	testutil.MustWriteFile(t, filepath.Join(src, "gen", "api.js"), "//")
	env := map[string]string{
		"BUILD_OUTPUT_BASE": base,
		"BUILD_SOURCE_ROOT": src,
		"GEN":               "gen",
	}

	r := run(t, nil, env, "publish", "$GEN/api.js")
	if r.err != nil {
		t.Fatalf("publish error = %v", r.err)
	}
	if got, want := r.stdout.String(), "build:GLOBAL_API_SCRIPT_PATH=external/plugin-cors/gen/api.js\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestPublishCommand_ExplicitRoots(t *testing.T) {
	t.Parallel()

	base := testutil.RealTempDir(t)
	testutil.MustWriteFile(t, filepath.Join(base, "pkg", "api.js"), "//")

	cfg := config.DefaultConfig()
	cfg.Convention.DirectivePrefix = "cargo:"

	r := run(t, cfg, nil, "publish", "--output-base", base, "--source-root", filepath.Join(base, "pkg"), "api.js")
	if r.err != nil {
		t.Fatalf("publish error = %v", r.err)
	}
	if got := r.stdout.String(); got != "cargo:GLOBAL_API_SCRIPT_PATH=pkg/api.js\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestPublishCommand_OutsideBase(t *testing.T) {
	t.Parallel()

	base := testutil.RealTempDir(t)
	outside := filepath.Join(testutil.RealTempDir(t), "api.js")
	testutil.MustWriteFile(t, outside, "//")

	r := run(t, nil, map[string]string{"BUILD_OUTPUT_BASE": base}, "publish", outside)
	if !errors.Is(r.err, apiscript.ErrPathOutsideBase) {
		t.Fatalf("publish error = %v, want ErrPathOutsideBase", r.err)
	}
	if r.stdout.Len() != 0 {
		t.Errorf("no directive should be written, got %q", r.stdout.String())
	}
	var svcErr *ServiceError
	if !errors.As(r.err, &svcErr) || svcErr.IssueID != issue.PathOutsideBaseId {
		t.Errorf("error should carry PathOutsideBaseId, got %v", r.err)
	}
}

func TestPublishCommand_Usage(t *testing.T) {
	t.Parallel()

	r := run(t, nil, nil, "publish")
	if got := exitCode(r.err); got != types.ExitUsage {
		t.Errorf("exit code = %d, want %d (err: %v)", got, types.ExitUsage, r.err)
	}

	r = run(t, nil, nil, "publish", "--no-such-flag", "x")
	if got := exitCode(r.err); got != types.ExitUsage {
		t.Errorf("exit code for unknown flag = %d, want %d", got, types.ExitUsage)
	}
}

func TestAggregateReadList(t *testing.T) {
	t.Parallel()

	base := testutil.RealTempDir(t)
	outDir := filepath.Join(base, "out", "app")
	testutil.MustMkdirAll(t, outDir, 0o755)
	testutil.MustWriteFile(t, filepath.Join(base, "core", "global.js"), "core")
	testutil.MustWriteFile(t, filepath.Join(base, "b.js"), "b")
	testutil.MustWriteFile(t, filepath.Join(base, "a.js"), "a")

	env := map[string]string{
		"BUILD_OUTPUT_BASE":                 base,
		"DEP_PLUGIN_B_GLOBAL_API_SCRIPT_PATH": "b.js",
		"DEP_PLUGIN_A_GLOBAL_API_SCRIPT_PATH": "a.js",
	}

	r := run(t, nil, env, "aggregate", "--out-dir", outDir, "--override", filepath.Join(base, "core", "global.js"))
	if r.err != nil {
		t.Fatalf("aggregate error = %v", r.err)
	}
	if !strings.Contains(r.stdout.String(), "3 global API script(s)") {
		t.Errorf("aggregate stdout = %q", r.stdout.String())
	}

	r = run(t, nil, env, "list", "--out-dir", outDir)
	if r.err != nil {
		t.Fatalf("list error = %v", r.err)
	}
	if got := r.stdout.String(); got != "core/global.js\na.js\nb.js\n" {
		t.Errorf("list stdout = %q", got)
	}

	r = run(t, nil, env, "read", "--out-dir", outDir, "--separator", "|")
	if r.err != nil {
		t.Fatalf("read error = %v", r.err)
	}
	if got := r.stdout.String(); got != "core|a|b" {
		t.Errorf("read stdout = %q", got)
	}
}

func TestReadCommand_NoManifest(t *testing.T) {
	t.Parallel()

	r := run(t, nil, nil, "read", "--out-dir", t.TempDir())
	if r.err != nil {
		t.Fatalf("read error = %v", r.err)
	}
	if r.stdout.Len() != 0 {
		t.Errorf("read stdout = %q, want empty", r.stdout.String())
	}
}

func TestEnvFileOverlay(t *testing.T) {
	t.Parallel()

	base := testutil.RealTempDir(t)
	outDir := filepath.Join(base, "out")
	testutil.MustMkdirAll(t, outDir, 0o755)
	envFile := filepath.Join(base, ".depenv")
	testutil.MustWriteFile(t, envFile, fmt.Sprintf("export BUILD_OUTPUT_BASE=%q\nDEP_X_GLOBAL_API_SCRIPT_PATH=x.js\n", base))

	r := run(t, nil, map[string]string{"DEP_X_GLOBAL_API_SCRIPT_PATH": "stale.js"},
		"--env-file", envFile, "--env-file", filepath.Join(base, "missing.env?"),
		"aggregate", "--out-dir", outDir)
	if r.err != nil {
		t.Fatalf("aggregate error = %v", r.err)
	}
	if got := string(testutil.MustReadFile(t, filepath.Join(outDir, apiscript.ManifestFileName))); got != `["x.js"]` {
		t.Errorf("manifest = %s, want [\"x.js\"]", got)
	}

	r = run(t, nil, nil, "--env-file", filepath.Join(base, "missing.env"), "aggregate", "--out-dir", outDir)
	var svcErr *ServiceError
	if !errors.As(r.err, &svcErr) || svcErr.IssueID != issue.EnvFileLoadFailedId {
		t.Errorf("missing env file error = %v, want EnvFileLoadFailedId", r.err)
	}
}

func TestConfigLoadFailure(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: staticConfig{err: errors.New("broken")},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	root := NewRootCommand(app)
	root.SetArgs([]string{"list", "--out-dir", t.TempDir()})

	err := root.ExecuteContext(context.Background())
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID != issue.ConfigLoadFailedId {
		t.Errorf("error = %v, want ConfigLoadFailedId", err)
	}
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want issue.Id
	}{
		{&apiscript.MissingEnvVarError{Name: "BUILD_OUTPUT_BASE"}, issue.MissingEnvVarId},
		{&apiscript.PathResolutionError{Path: "x", Err: errors.New("enoent")}, issue.PathResolutionFailedId},
		{&apiscript.PathOutsideBaseError{Path: "/a", Base: "/b"}, issue.PathOutsideBaseId},
		{&apiscript.ManifestEncodeError{Path: "m", Err: errors.New("utf8")}, issue.ManifestEncodeFailedId},
		{&apiscript.ManifestDecodeError{Path: "m", Err: errors.New("bad")}, issue.ManifestDecodeFailedId},
		{&apiscript.IOError{Op: "read", Path: "m", Err: errors.New("eio")}, issue.FileIOFailedId},
		{fmt.Errorf("wrapped: %w", &apiscript.InvalidConventionError{Problems: []string{"x"}}), issue.InvalidConventionId},
		{errors.New("other"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			t.Parallel()
			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("classifyError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestProtocolSuggestions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing variable", &apiscript.MissingEnvVarError{Name: "BUILD_OUTPUT_BASE"}, "Export BUILD_OUTPUT_BASE"},
		{"outside base", &apiscript.PathOutsideBaseError{Path: "/a/x.js", Base: "/b"}, "below /b"},
		{"directory", &apiscript.PathResolutionError{Path: "/b", Err: apiscript.ErrNotRegularFile}, "not a directory"},
		{"missing file", &apiscript.PathResolutionError{Path: "gen/x.js", Err: errors.New("enoent")}, "gen/x.js exists"},
		{"corrupt manifest", &apiscript.ManifestDecodeError{Path: "out/m.js", Err: errors.New("bad")}, "Delete out/m.js"},
		{"io", &apiscript.IOError{Op: "read", Path: "out/a.js", Err: errors.New("eio")}, "out/a.js exists"},
		{"convention", &apiscript.InvalidConventionError{Problems: []string{"key"}}, "config show"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := protocolSuggestions(tt.err)
			if len(got) != 1 || !strings.Contains(got[0], tt.want) {
				t.Errorf("protocolSuggestions(%v) = %q, want one mentioning %q", tt.err, got, tt.want)
			}
		})
	}

	if got := protocolSuggestions(errors.New("other")); got != nil {
		t.Errorf("protocolSuggestions(other) = %q, want nil", got)
	}
}

func TestAggregateCommand_InvalidConvention(t *testing.T) {
	t.Parallel()

	out := testutil.RealTempDir(t)
	cfg := config.DefaultConfig()
	cfg.Convention.Key = ""

	r := run(t, cfg, map[string]string{"BUILD_OUTPUT_BASE": out}, "aggregate", "--out-dir", out)
	if !errors.Is(r.err, apiscript.ErrInvalidConvention) {
		t.Fatalf("aggregate error = %v, want ErrInvalidConvention", r.err)
	}
	var svcErr *ServiceError
	if !errors.As(r.err, &svcErr) || svcErr.IssueID != issue.InvalidConventionId {
		t.Errorf("error should carry InvalidConventionId, got %v", r.err)
	}
}

func TestIssuesCommand(t *testing.T) {
	t.Parallel()

	r := run(t, nil, nil, "issues")
	if r.err != nil {
		t.Fatalf("issues error = %v", r.err)
	}
	for _, want := range []string{" 1  A build variable is not set!", " 5  The script manifest is corrupt!"} {
		if !strings.Contains(r.stdout.String(), want) {
			t.Errorf("issues output missing %q:\n%s", want, r.stdout.String())
		}
	}

	r = run(t, nil, nil, "issues", "3")
	if r.err != nil {
		t.Fatalf("issues 3 error = %v", r.err)
	}
	if !strings.Contains(r.stdout.String(), "outside the output base") {
		t.Errorf("issues 3 output:\n%s", r.stdout.String())
	}

	for _, arg := range []string{"99", "corrupt"} {
		r = run(t, nil, nil, "issues", arg)
		if got := exitCode(r.err); got != types.ExitUsage {
			t.Errorf("issues %s exit code = %d (err %v), want %d", arg, got, r.err, types.ExitUsage)
		}
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	app := NewApp(Dependencies{Stdout: &bytes.Buffer{}, Stderr: &stderr})

	err := protocolError(&apiscript.ManifestDecodeError{Path: "out/m.js", Err: errors.New("not a list")},
		"read global API scripts", "out")
	app.handleError(&stderr, fang.Styles{}, err)

	out := stderr.String()
	for _, want := range []string{"Error:", "failed to read global API scripts: out", "not a list", "• Delete out/m.js", "manifest is corrupt"} {
		if !strings.Contains(out, want) {
			t.Errorf("handleError output missing %q:\n%s", want, out)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	if got := exitCode(errors.New("x")); got != types.ExitFailure {
		t.Errorf("exitCode(plain) = %d, want 1", got)
	}
	if got := exitCode(fmt.Errorf("wrapped: %w", usageError(errors.New("x")))); got != types.ExitUsage {
		t.Errorf("exitCode(usage) = %d, want 2", got)
	}
	if got := (&ExitError{Code: 3}).Error(); got != "exit status 3" {
		t.Errorf("ExitError.Error() = %q", got)
	}
}

func TestNewServiceError_PanicsOnNil(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("newServiceError(nil) should panic")
		}
	}()
	_ = newServiceError(nil, issue.FileIOFailedId)
}
