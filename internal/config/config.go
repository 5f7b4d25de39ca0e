// Package config provides configuration management for quickhooks.
package config

import (
	"fmt"
	"slices"

	qherrors "github.com/randalmurphal/quickhooks/internal/errors"
	"github.com/randalmurphal/quickhooks/internal/git"
	"github.com/randalmurphal/quickhooks/internal/probe"
)

const (
	// ProjectFileName is the per-repository config file.
	ProjectFileName = ".quickhooks.yaml"
	// UserFileName is the config file under the user config directory.
	UserFileName = "config.yaml"
	// AppDir is the directory name under the user config directory.
	AppDir = "quickhooks"
	// EnvPrefix prefixes environment overrides, e.g. QUICKHOOKS_PRE_COMMIT.
	EnvPrefix = "QUICKHOOKS"
)

// GitHookTypes are the hook stages git and pre-commit both understand.
var GitHookTypes = []string{
	"pre-commit",
	"pre-merge-commit",
	"pre-push",
	"prepare-commit-msg",
	"commit-msg",
	"post-checkout",
	"post-commit",
	"post-merge",
	"post-rewrite",
	"pre-rebase",
}

// ToolsConfig extends the probed tool set.
type ToolsConfig struct {
	// Extra requirements are probed after the builtin ones. An entry whose
	// name matches a builtin replaces it.
	Extra []probe.Requirement `yaml:"extra,omitempty" mapstructure:"extra"`
}

// Config represents the quickhooks configuration.
type Config struct {
	// PreCommit is the pre-commit executable name or path.
	PreCommit string `yaml:"pre_commit" mapstructure:"pre_commit"`

	// HookTypes are installed by setup and inspected by check.
	HookTypes []string `yaml:"hook_types" mapstructure:"hook_types"`

	// SkipInstall disables the `pre-commit install` step of setup.
	SkipInstall bool `yaml:"skip_install" mapstructure:"skip_install"`

	Tools ToolsConfig `yaml:"tools" mapstructure:"tools"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PreCommit: probe.HookFramework.Command,
		HookTypes: slices.Clone(git.DefaultHookTypes),
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.PreCommit == "" {
		return qherrors.ErrConfigInvalid("pre_commit", "must not be empty")
	}
	if len(c.HookTypes) == 0 {
		return qherrors.ErrConfigInvalid("hook_types", "at least one hook type is required")
	}
	for _, ht := range c.HookTypes {
		if !slices.Contains(GitHookTypes, ht) {
			return qherrors.ErrConfigInvalid("hook_types", fmt.Sprintf("unknown hook type %q", ht))
		}
	}
	for i, r := range c.Tools.Extra {
		if r.Name == "" || r.Command == "" {
			return qherrors.ErrConfigInvalid(fmt.Sprintf("tools.extra[%d]", i), "name and command are required")
		}
	}
	return nil
}
