package bootstrap

import (
	"context"

	"github.com/randalmurphal/quickhooks/internal/detect"
	qherrors "github.com/randalmurphal/quickhooks/internal/errors"
	"github.com/randalmurphal/quickhooks/internal/git"
	"github.com/randalmurphal/quickhooks/internal/probe"
)

// CheckOptions configures a check run.
type CheckOptions struct {
	Dir string

	// Runner resolves the hooks directory through git. Nil means
	// .git/hooks is assumed.
	Runner git.CommandRunner

	// HookTypes defaults to git.DefaultHookTypes.
	HookTypes []string

	Prober     *probe.Prober
	ExtraTools []probe.Requirement
}

// FileStatus reports whether a target file is present.
type FileStatus struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Exists    bool     `json:"exists"`
	CoveredBy []string `json:"covered_by,omitempty"`
}

// HookStatus reports the script installed for one hook type.
type HookStatus struct {
	HookType string        `json:"hook_type"`
	State    git.HookState `json:"state"`
}

// LintConfigStatus reports the config files of one lint tool in a JS
// project and whether package.json declares the tool.
type LintConfigStatus struct {
	Kind     detect.ConfigKind `json:"kind"`
	Files    []string          `json:"files,omitempty"`
	Declared bool              `json:"declared"`
}

// CheckResult is a read-only snapshot of a repository's hook setup.
type CheckResult struct {
	Dir         string             `json:"dir"`
	Project     string             `json:"project"`
	GitRepo     bool               `json:"git_repo"`
	Files       []FileStatus       `json:"files"`
	Tools       []probe.Status     `json:"tools"`
	Hooks       []HookStatus       `json:"hooks,omitempty"`
	LintConfigs []LintConfigStatus `json:"lint_configs,omitempty"`

	// ConfigError is set by callers whose configuration failed to load;
	// defaults were used instead.
	ConfigError string `json:"config_error,omitempty"`
}

// MissingFiles returns the target files that do not exist and are not
// covered by another config file of the same tool.
func (r *CheckResult) MissingFiles() []FileStatus {
	var out []FileStatus
	for _, f := range r.Files {
		if !f.Exists && len(f.CoveredBy) == 0 {
			out = append(out, f)
		}
	}
	return out
}

// Ready reports whether every target file is present, every probed tool
// is found, every hook type has a pre-commit script and the configuration
// loaded.
func (r *CheckResult) Ready() bool {
	if r.ConfigError != "" || len(r.MissingFiles()) > 0 || len(probe.Missing(r.Tools)) > 0 || !r.GitRepo {
		return false
	}
	for _, h := range r.Hooks {
		if h.State != git.HookManaged {
			return false
		}
	}
	return true
}

// Check inspects opts.Dir without modifying anything. It fails only when
// the directory cannot be read.
func Check(ctx context.Context, opts CheckOptions) (*CheckResult, error) {
	dir, err := resolveDir(opts.Dir)
	if err != nil {
		return nil, err
	}

	detection, err := detect.Detect(dir)
	if err != nil {
		return nil, qherrors.ErrFileSystem("read", dir, err)
	}

	result := &CheckResult{
		Dir:     dir,
		Project: detect.DescribeProject(detection),
		GitRepo: git.IsRepo(dir),
	}

	for _, t := range Targets(dir, detection) {
		result.Files = append(result.Files, FileStatus{Name: t.Name, Path: t.Path, Exists: t.Exists, CoveredBy: t.CoveredBy})
	}

	prober := opts.Prober
	if prober == nil {
		prober = &probe.Prober{}
	}
	result.Tools = prober.Probe(probe.Requirements(detection, opts.ExtraTools))

	if result.GitRepo {
		hookTypes := opts.HookTypes
		if len(hookTypes) == 0 {
			hookTypes = git.DefaultHookTypes
		}
		hooksDir := git.HooksDir(ctx, opts.Runner, dir)
		for _, ht := range hookTypes {
			result.Hooks = append(result.Hooks, HookStatus{HookType: ht, State: git.InspectHook(hooksDir, ht)})
		}
	}

	if detection.IsJS() {
		for _, kind := range []detect.ConfigKind{detect.ConfigESLint, detect.ConfigPrettier} {
			result.LintConfigs = append(result.LintConfigs, LintConfigStatus{
				Kind:     kind,
				Files:    detection.LintConfigs[kind],
				Declared: detection.Declares(string(kind)),
			})
		}
	}

	return result, nil
}
