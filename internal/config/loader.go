package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	qherrors "github.com/randalmurphal/quickhooks/internal/errors"
	"github.com/randalmurphal/quickhooks/internal/util"
)

// ConfigSource indicates where configuration was read from.
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceFlag    ConfigSource = "flag"
	SourceEnv     ConfigSource = "env"
)

// TrackedSource pairs a source with the file it came from.
type TrackedSource struct {
	Source ConfigSource
	Path   string // empty for defaults and env
}

// String returns a human-readable source description.
func (ts TrackedSource) String() string {
	if ts.Path == "" {
		return string(ts.Source)
	}
	return fmt.Sprintf("%s: %s", ts.Source, ts.Path)
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// ProjectDir holds .quickhooks.yaml. Empty means the working directory.
	ProjectDir string

	// File is an explicit config file (--config). It must exist.
	File string
}

// Loaded is the merged configuration with the sources that contributed.
type Loaded struct {
	Config  *Config
	Sources []TrackedSource
}

// Load merges configuration, later sources overriding earlier:
//  1. Built-in defaults
//  2. User config (<user config dir>/quickhooks/config.yaml)
//  3. Project config (<project>/.quickhooks.yaml)
//  4. Explicit --config file
//  5. Environment variables (QUICKHOOKS_*)
func Load(opts LoadOptions) (*Loaded, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault("pre_commit", def.PreCommit)
	v.SetDefault("hook_types", def.HookTypes)
	v.SetDefault("skip_install", def.SkipInstall)
	v.SetDefault("tools.extra", []any{})

	loaded := &Loaded{Sources: []TrackedSource{{Source: SourceDefault}}}

	if path := UserPath(); path != "" {
		if err := mergeOptional(v, path); err != nil {
			slog.Warn("failed to load user config", "path", path, "error", err)
		} else if util.FileExists(path) {
			loaded.Sources = append(loaded.Sources, TrackedSource{Source: SourceUser, Path: path})
		}
	}

	projectPath := filepath.Join(opts.ProjectDir, ProjectFileName)
	if err := mergeOptional(v, projectPath); err != nil {
		return nil, qherrors.ErrConfigInvalid(projectPath, err.Error())
	}
	if util.FileExists(projectPath) {
		loaded.Sources = append(loaded.Sources, TrackedSource{Source: SourceProject, Path: projectPath})
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.MergeInConfig(); err != nil {
			return nil, qherrors.ErrConfigInvalid(opts.File, err.Error())
		}
		loaded.Sources = append(loaded.Sources, TrackedSource{Source: SourceFlag, Path: opts.File})
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if envOverrides() {
		loaded.Sources = append(loaded.Sources, TrackedSource{Source: SourceEnv})
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, qherrors.ErrConfigInvalid("config", err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loaded.Config = cfg
	return loaded, nil
}

// UserPath returns the user config file path, or "" when no config
// directory can be determined.
func UserPath() string {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		return ""
	}
	return filepath.Join(base, AppDir, UserFileName)
}

// mergeOptional merges path into v when it exists.
func mergeOptional(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	v.SetConfigFile(path)
	return v.MergeInConfig()
}

func envOverrides() bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, EnvPrefix+"_") {
			return true
		}
	}
	return false
}
