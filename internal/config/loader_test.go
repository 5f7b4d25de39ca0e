package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qherrors "github.com/randalmurphal/quickhooks/internal/errors"
)

// isolate points the user config directory at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	loaded, err := Load(LoadOptions{ProjectDir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, "pre-commit", loaded.Config.PreCommit)
	assert.Equal(t, []string{"pre-commit", "commit-msg", "pre-push"}, loaded.Config.HookTypes)
	assert.False(t, loaded.Config.SkipInstall)
	assert.Empty(t, loaded.Config.Tools.Extra)
	require.Len(t, loaded.Sources, 1)
	assert.Equal(t, SourceDefault, loaded.Sources[0].Source)
}

func TestLoad_ProjectOverridesUser(t *testing.T) {
	home := isolate(t)
	project := t.TempDir()

	userPath := filepath.Join(home, ".config", AppDir, UserFileName)
	writeFile(t, userPath, "pre_commit: /opt/bin/pre-commit\nskip_install: true\n")
	writeFile(t, filepath.Join(project, ProjectFileName), "hook_types:\n  - pre-commit\n")

	loaded, err := Load(LoadOptions{ProjectDir: project})
	require.NoError(t, err)

	assert.Equal(t, "/opt/bin/pre-commit", loaded.Config.PreCommit)
	assert.True(t, loaded.Config.SkipInstall)
	assert.Equal(t, []string{"pre-commit"}, loaded.Config.HookTypes)

	require.Len(t, loaded.Sources, 3)
	assert.Equal(t, SourceUser, loaded.Sources[1].Source)
	assert.Equal(t, SourceProject, loaded.Sources[2].Source)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ProjectFileName), "pre_commit: from-project\n")

	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, explicit, "pre_commit: from-flag\n")

	loaded, err := Load(LoadOptions{ProjectDir: project, File: explicit})
	require.NoError(t, err)
	assert.Equal(t, "from-flag", loaded.Config.PreCommit)
	assert.Equal(t, "flag: "+explicit, loaded.Sources[len(loaded.Sources)-1].String())
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolate(t)

	_, err := Load(LoadOptions{
		ProjectDir: t.TempDir(),
		File:       filepath.Join(t.TempDir(), "nope.yaml"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, &qherrors.HookError{Code: qherrors.CodeConfigInvalid})
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ProjectFileName), "skip_install: false\n")

	t.Setenv("QUICKHOOKS_SKIP_INSTALL", "true")
	t.Setenv("QUICKHOOKS_HOOK_TYPES", "pre-commit,pre-push")

	loaded, err := Load(LoadOptions{ProjectDir: project})
	require.NoError(t, err)
	assert.True(t, loaded.Config.SkipInstall)
	assert.Equal(t, []string{"pre-commit", "pre-push"}, loaded.Config.HookTypes)
	assert.Equal(t, SourceEnv, loaded.Sources[len(loaded.Sources)-1].Source)
}

func TestLoad_ExtraTools(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ProjectFileName), `tools:
  extra:
    - name: mypy
      command: mypy
      purpose: python-lint
      install: pip install mypy
`)

	loaded, err := Load(LoadOptions{ProjectDir: project})
	require.NoError(t, err)
	require.Len(t, loaded.Config.Tools.Extra, 1)
	extra := loaded.Config.Tools.Extra[0]
	assert.Equal(t, "mypy", extra.Name)
	assert.Equal(t, "pip install mypy", extra.Install)
}

func TestLoad_MalformedProjectConfig(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ProjectFileName), "hook_types: [unclosed\n")

	_, err := Load(LoadOptions{ProjectDir: project})
	require.Error(t, err)
	assert.Equal(t, 2, qherrors.ExitCode(err))
}

func TestLoad_InvalidHookType(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ProjectFileName), "hook_types: [pre-commit, on-save]\n")

	_, err := Load(LoadOptions{ProjectDir: project})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "on-save")
}
