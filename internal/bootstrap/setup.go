// Package bootstrap places the bundled hook configuration into a repository
// and reports on an existing setup.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/randalmurphal/quickhooks/internal/detect"
	qherrors "github.com/randalmurphal/quickhooks/internal/errors"
	"github.com/randalmurphal/quickhooks/internal/git"
	"github.com/randalmurphal/quickhooks/internal/probe"
	"github.com/randalmurphal/quickhooks/internal/util"
	"github.com/randalmurphal/quickhooks/templates"
)

// Action is what setup did with a target file.
type Action string

const (
	ActionWritten     Action = "written"
	ActionSkipped     Action = "skipped"
	ActionOverwritten Action = "overwritten"
	ActionFailed      Action = "failed"
)

// FileOutcome records the action taken for one target.
type FileOutcome struct {
	Target TargetFile `json:"target"`
	Action Action     `json:"action"`
	Err    error      `json:"-"`
}

// HookInstaller installs git hook scripts. *git.HookClient implements it.
type HookInstaller interface {
	Install(ctx context.Context, dir string, hookTypes []string) ([]git.InstallResult, error)
}

// Options configures a setup run.
type Options struct {
	// Dir is the target repository (default: current directory).
	Dir string

	// Overwrite replaces existing target files with the bundled templates.
	Overwrite bool

	// SkipInstall skips `pre-commit install`.
	SkipInstall bool

	// ConfirmOverwrite is asked once per existing target when Overwrite is
	// false. Returning true replaces that file.
	ConfirmOverwrite func(TargetFile) bool

	// Hooks defaults to a pre-commit client on PATH.
	Hooks HookInstaller

	// HookTypes defaults to git.DefaultHookTypes.
	HookTypes []string

	Prober     *probe.Prober
	ExtraTools []probe.Requirement

	// ReadTemplate defaults to templates.Read.
	ReadTemplate func(name string) ([]byte, error)
}

// SetupResult contains the results of a setup run.
type SetupResult struct {
	Dir       string            `json:"dir"`
	Detection *detect.Detection `json:"detection,omitempty"`
	Files     []FileOutcome     `json:"files"`

	// InstallAttempted is false when installation was skipped by option,
	// because the target is not a git repository, or because a write failed.
	InstallAttempted bool                `json:"install_attempted"`
	Hooks            []git.InstallResult `json:"hooks,omitempty"`

	Tools    []probe.Status `json:"tools,omitempty"`
	Warnings []error        `json:"-"`
	Duration time.Duration  `json:"duration"`
}

// Count returns the number of files that ended with action.
func (r *SetupResult) Count(action Action) int {
	n := 0
	for _, f := range r.Files {
		if f.Action == action {
			n++
		}
	}
	return n
}

// Setup copies each target template into opts.Dir and installs hooks.
//
// Existing files are left untouched unless opts.Overwrite is set or
// opts.ConfirmOverwrite approves them. Covered targets are never created,
// even with Overwrite. The first write failure stops the
// run: the partial result is returned together with a FileSystemError and
// no hooks are installed. Hook installation problems are collected as
// warnings and never fail the run.
func Setup(ctx context.Context, opts Options) (*SetupResult, error) {
	start := time.Now()

	dir, err := resolveDir(opts.Dir)
	if err != nil {
		return nil, err
	}

	detection, err := detect.Detect(dir)
	if err != nil {
		return nil, qherrors.ErrFileSystem("read", dir, err)
	}
	slog.Debug("detected project", "dir", dir, "type", detect.DescribeProject(detection))

	read := opts.ReadTemplate
	if read == nil {
		read = templates.Read
	}

	result := &SetupResult{Dir: dir, Detection: detection}

	for _, target := range Targets(dir, detection) {
		if target.Covered() {
			slog.Debug("tool already configured", "path", target.Path, "covered_by", target.CoveredBy)
			result.Files = append(result.Files, FileOutcome{Target: target, Action: ActionSkipped})
			continue
		}
		if target.Exists && !opts.Overwrite && !confirm(opts.ConfirmOverwrite, target) {
			slog.Debug("keeping existing file", "path", target.Path)
			result.Files = append(result.Files, FileOutcome{Target: target, Action: ActionSkipped})
			continue
		}

		if err := writeTarget(target, read); err != nil {
			result.Files = append(result.Files, FileOutcome{Target: target, Action: ActionFailed, Err: err})
			result.Duration = time.Since(start)
			return result, err
		}

		action := ActionWritten
		if target.Exists {
			action = ActionOverwritten
		}
		slog.Debug("wrote file", "path", target.Path, "action", action)
		result.Files = append(result.Files, FileOutcome{Target: target, Action: action})
	}

	if !opts.SkipInstall {
		installHooks(ctx, dir, opts, result)
	}

	prober := opts.Prober
	if prober == nil {
		prober = &probe.Prober{}
	}
	result.Tools = prober.Probe(probe.Requirements(detection, opts.ExtraTools))
	for _, s := range probe.Missing(result.Tools) {
		slog.Debug("tool missing", "tool", s.Requirement.Name, "command", s.Requirement.Command)
	}

	result.Duration = time.Since(start)
	return result, nil
}

func confirm(fn func(TargetFile) bool, t TargetFile) bool {
	return fn != nil && fn(t)
}

func writeTarget(t TargetFile, read func(string) ([]byte, error)) error {
	data, err := read(t.Template)
	if err != nil {
		return qherrors.ErrTemplateNotFound(t.Template).WithCause(err)
	}
	if err := util.WriteFileAtomic(t.Path, data, 0644); err != nil {
		return qherrors.ErrFileSystem("write", t.Path, err)
	}
	return nil
}

func installHooks(ctx context.Context, dir string, opts Options, result *SetupResult) {
	if !git.IsRepo(dir) {
		result.Warnings = append(result.Warnings, qherrors.ErrNotGitRepo(dir))
		return
	}

	hooks := opts.Hooks
	if hooks == nil {
		hooks = git.NewHookClient("")
	}
	hookTypes := opts.HookTypes
	if len(hookTypes) == 0 {
		hookTypes = git.DefaultHookTypes
	}

	result.InstallAttempted = true
	installs, err := hooks.Install(ctx, dir, hookTypes)
	if err != nil {
		result.Warnings = append(result.Warnings, err)
		return
	}
	result.Hooks = installs
	for _, r := range installs {
		if !r.OK() {
			result.Warnings = append(result.Warnings, r.Err)
		}
	}
}

// resolveDir makes dir absolute and checks that it is a directory.
func resolveDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", qherrors.ErrFileSystem("read", abs, err)
	}
	if !info.IsDir() {
		return "", qherrors.ErrFileSystem("read", abs, errors.New("not a directory"))
	}
	return abs, nil
}
