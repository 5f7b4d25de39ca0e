// Package git inspects git repositories and drives the pre-commit hook
// framework inside them.
package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// IsRepo reports whether dir is the root of a git work tree. A .git file
// (worktrees, submodules) counts as well as a .git directory.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// HooksDir returns the directory git runs hook scripts from. It asks git so
// that core.hooksPath and linked worktrees are honored, and falls back to
// .git/hooks when git is unavailable.
func HooksDir(ctx context.Context, runner CommandRunner, dir string) string {
	fallback := filepath.Join(dir, ".git", "hooks")
	if runner == nil {
		return fallback
	}

	out, err := runner.Run(ctx, dir, "git", "rev-parse", "--git-path", "hooks")
	if err != nil || strings.TrimSpace(out) == "" {
		return fallback
	}
	path := strings.TrimSpace(out)
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return filepath.Clean(path)
}
