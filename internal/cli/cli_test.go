package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/quickhooks/internal/bootstrap"
	qherrors "github.com/randalmurphal/quickhooks/internal/errors"
	"github.com/randalmurphal/quickhooks/templates"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSetupCmd_WritesFiles(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "setup", "--dir", dir, "--skip-install", "--no-color")
	require.NoError(t, err)

	for _, name := range []string{bootstrap.HookConfigFile, bootstrap.GuideFile, bootstrap.LintConfigFile} {
		assert.FileExists(t, filepath.Join(dir, name))
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "written")
}

func TestSetupCmd_SecondRunSkips(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "setup", "--dir", dir, "--skip-install")
	require.NoError(t, err)

	out, err := execute(t, "setup", "--dir", dir, "--skip-install", "--json")
	require.NoError(t, err)

	var rep setupReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Files, 3)
	for _, f := range rep.Files {
		assert.Equal(t, bootstrap.ActionSkipped, f.Action, f.Name)
	}
	assert.False(t, rep.InstallAttempted)
}

func TestSetupCmd_WriteFailureExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, bootstrap.LintConfigFile), 0755))

	out, err := execute(t, "setup", "--dir", dir, "--skip-install", "--overwrite", "--json")
	require.Error(t, err)
	assert.Equal(t, 1, qherrors.ExitCode(err))

	var rep setupReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Files, 3)
	assert.Equal(t, bootstrap.ActionFailed, rep.Files[2].Action)
	assert.NotEmpty(t, rep.Error)
}

func TestSetupCmd_SkipInstallFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".quickhooks.yaml"), []byte("skip_install: true\n"), 0644))

	out, err := execute(t, "setup", "--dir", dir, "--json")
	require.NoError(t, err)

	var rep setupReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.False(t, rep.InstallAttempted)
	assert.Empty(t, rep.Warnings)
}

func TestCheckCmd_JSON(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "check", "--dir", dir, "--json")
	require.NoError(t, err, "check succeeds even when everything is missing")

	var result bootstrap.CheckResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.GitRepo)
	assert.Len(t, result.Files, 3)
	for _, f := range result.Files {
		assert.False(t, f.Exists)
	}
	assert.NotEmpty(t, result.Tools)
}

func TestCheckCmd_Text(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "check", "--dir", dir, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "not a git repository")
	assert.Contains(t, out, "pre-commit")
}

func TestCheckCmd_UnreadableDir(t *testing.T) {
	_, err := execute(t, "check", "--dir", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.NotEqual(t, 0, qherrors.ExitCode(err))
}

func TestRunHooksCmd_MissingPreCommit(t *testing.T) {
	t.Setenv("QUICKHOOKS_PRE_COMMIT", "quickhooks-no-such-binary")

	_, err := execute(t, "run", "hooks", "--dir", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, 127, qherrors.ExitCode(err))
}

func TestRunHooksCmd_MirrorsExitCode(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "fake-pre-commit")
	script := "#!/bin/sh\necho \"args: $*\"\nexit 3\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755))
	t.Setenv("QUICKHOOKS_PRE_COMMIT", bin)

	out, err := execute(t, "run", "hooks", "--dir", t.TempDir(), "--hook", "black")
	require.Error(t, err)
	assert.Equal(t, 3, qherrors.ExitCode(err))
	assert.Contains(t, out, "args: run --all-files black")
}

func TestRunHooksCmd_Success(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "fake-pre-commit")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\nexit 0\n"), 0755))
	t.Setenv("QUICKHOOKS_PRE_COMMIT", bin)

	_, err := execute(t, "run", "hooks", "--dir", t.TempDir())
	require.NoError(t, err)
}

func TestTemplatesCmd(t *testing.T) {
	out, err := execute(t, "templates", "list")
	require.NoError(t, err)
	for _, name := range templates.Names() {
		assert.Contains(t, out, name)
	}

	out, err = execute(t, "templates", "show", templates.LintConfig)
	require.NoError(t, err)
	want, err := templates.Read(templates.LintConfig)
	require.NoError(t, err)
	assert.Equal(t, string(want), out)

	_, err = execute(t, "templates", "show", "nope.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, &qherrors.HookError{Code: qherrors.CodeTemplateNotFound})
}

func TestConfigShowCmd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".quickhooks.yaml"), []byte("hook_types: [pre-commit]\n"), 0644))

	out, err := execute(t, "config", "show", "--dir", dir, "--source")
	require.NoError(t, err)
	assert.Contains(t, out, "pre_commit: pre-commit")
	assert.Contains(t, out, "- pre-commit")
	assert.NotContains(t, out, "commit-msg")
	assert.Contains(t, out, "project: ")
}

func TestConfigShowCmd_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".quickhooks.yaml"), []byte("hook_types: [bogus]\n"), 0644))

	_, err := execute(t, "config", "show", "--dir", dir)
	require.Error(t, err)
	assert.Equal(t, 2, qherrors.ExitCode(err))
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "quickhooks version "+Version+"\n", out)
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, qherrors.ErrToolNotFound("pre-commit", "pip install pre-commit"))
	assert.Contains(t, buf.String(), "Error: 'pre-commit' command not found")
	assert.Contains(t, buf.String(), "pip install pre-commit")

	buf.Reset()
	PrintError(&buf, &qherrors.ExitError{Code: 1})
	assert.Empty(t, buf.String(), "child exit codes are passed through silently")
}

func TestCheckCmd_InvalidConfigStillSucceeds(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".quickhooks.yaml"), []byte("hook_types: [bogus]\n"), 0644))

	out, err := execute(t, "check", "--dir", dir, "--json")
	require.NoError(t, err)
	assert.Equal(t, 0, qherrors.ExitCode(err))

	var result bootstrap.CheckResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Contains(t, result.ConfigError, "bogus")
	assert.Len(t, result.Files, 3)

	out, err = execute(t, "check", "--dir", dir, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "using defaults")
}

func TestSetupCmd_ReportsCoveredConfigs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".prettierrc.yaml"), []byte("semi: false\n"), 0644))

	out, err := execute(t, "setup", "--dir", dir, "--skip-install", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "configured by .prettierrc.yaml")
	assert.NoFileExists(t, filepath.Join(dir, bootstrap.FormatterConfigFile))
}
