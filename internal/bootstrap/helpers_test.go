package bootstrap

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/quickhooks/internal/git"
	"github.com/randalmurphal/quickhooks/internal/probe"
)

// fakeInstaller records Install calls.
type fakeInstaller struct {
	calls   int
	types   []string
	results func(hookTypes []string) []git.InstallResult
	err     error
}

func (f *fakeInstaller) Install(_ context.Context, _ string, hookTypes []string) ([]git.InstallResult, error) {
	f.calls++
	f.types = hookTypes
	if f.err != nil {
		return nil, f.err
	}
	if f.results != nil {
		return f.results(hookTypes), nil
	}
	out := make([]git.InstallResult, 0, len(hookTypes))
	for _, ht := range hookTypes {
		out = append(out, git.InstallResult{HookType: ht, Output: "pre-commit installed at .git/hooks/" + ht})
	}
	return out, nil
}

// allFound resolves every command to a fake path.
var allFound = &probe.Prober{LookupFunc: func(cmd string) (string, bool) {
	return "/usr/bin/" + cmd, true
}}

// noneFound resolves nothing.
var noneFound = &probe.Prober{LookupFunc: func(string) (string, bool) {
	return "", false
}}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func gitInit(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git", "hooks"), 0755))
}

type entry struct {
	mode    fs.FileMode
	content string
}

// snapshot captures every path under dir with its mode and content.
func snapshot(t *testing.T, dir string) map[string]entry {
	t.Helper()
	snap := make(map[string]entry)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		e := entry{mode: info.Mode()}
		if info.Mode().IsRegular() {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			e.content = string(data)
		}
		snap[rel] = e
		return nil
	})
	require.NoError(t, err)
	return snap
}
