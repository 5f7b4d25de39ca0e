// Package templates provides the embedded files that setup copies into a
// target repository.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// Asset names. These are the names inside the embedded table, not the
// destination file names.
const (
	HookConfig      = "pre-commit-config.yaml"
	Guide           = "GIT_HOOKS_GUIDE.md"
	LintConfig      = "eslintrc.json"
	FormatterConfig = "prettierrc.json"
)

// Assets contains the bundled template files.
//
//go:embed assets/*
var Assets embed.FS

// Read returns the bytes of the named asset.
func Read(name string) ([]byte, error) {
	data, err := Assets.ReadFile("assets/" + name)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}
	return data, nil
}

// Names lists every bundled asset, sorted.
func Names() []string {
	entries, err := fs.ReadDir(Assets, "assets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
