package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	qherrors "github.com/randalmurphal/quickhooks/internal/errors"
	"github.com/randalmurphal/quickhooks/internal/probe"
)

// HookClient drives the pre-commit executable.
type HookClient struct {
	// Binary is the pre-commit executable name or path.
	Binary string

	Runner CommandRunner

	// Lookup resolves Binary; defaults to probe.Lookup.
	Lookup func(command string) (string, bool)

	// Stdout and Stderr receive streamed output from RunAll.
	Stdout io.Writer
	Stderr io.Writer
}

// NewHookClient returns a client for binary using real processes.
func NewHookClient(binary string) *HookClient {
	if binary == "" {
		binary = probe.HookFramework.Command
	}
	return &HookClient{
		Binary: binary,
		Runner: NewExecRunner(),
		Lookup: probe.Lookup,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// InstallResult is the outcome of installing one hook type.
type InstallResult struct {
	HookType string `json:"hook_type"`
	Output   string `json:"output,omitempty"`
	Err      error  `json:"-"`
}

// OK reports whether the install succeeded.
func (r InstallResult) OK() bool { return r.Err == nil }

// RunOptions narrows a hook run.
type RunOptions struct {
	// HookID runs a single hook instead of all of them.
	HookID string
	// Stage selects the hook stage (pre-commit, pre-push, manual, ...).
	Stage string
}

func (c *HookClient) resolve() (string, error) {
	lookup := c.Lookup
	if lookup == nil {
		lookup = probe.Lookup
	}
	path, ok := lookup(c.Binary)
	if !ok {
		return "", qherrors.ErrToolNotFound(c.Binary, probe.HookFramework.Install)
	}
	return path, nil
}

// Install runs `pre-commit install --hook-type <t>` in dir for each hook
// type. It returns an error only when pre-commit cannot be found; failures
// of individual installs are reported in the results as SubprocessErrors.
func (c *HookClient) Install(ctx context.Context, dir string, hookTypes []string) ([]InstallResult, error) {
	bin, err := c.resolve()
	if err != nil {
		return nil, err
	}

	results := make([]InstallResult, 0, len(hookTypes))
	for _, hookType := range hookTypes {
		args := []string{"install", "--hook-type", hookType}
		slog.Debug("installing hook", "hook_type", hookType, "dir", dir)

		out, err := c.Runner.Run(ctx, dir, bin, args...)
		res := InstallResult{HookType: hookType, Output: out}
		if err != nil {
			res.Err = qherrors.ErrSubprocess(fmt.Sprintf("%s install --hook-type %s", c.Binary, hookType), exitCodeOf(err), out)
		}
		results = append(results, res)
	}
	return results, nil
}

// RunAll runs the configured hooks against every file, streaming output.
// The returned code is the child's exit status; err is set only when the
// process could not be started.
func (c *HookClient) RunAll(ctx context.Context, dir string, opts RunOptions) (int, error) {
	bin, err := c.resolve()
	if err != nil {
		return qherrors.ExitCode(err), err
	}

	args := []string{"run", "--all-files"}
	if opts.Stage != "" {
		args = append(args, "--hook-stage", opts.Stage)
	}
	if opts.HookID != "" {
		args = append(args, opts.HookID)
	}

	stdout, stderr := c.Stdout, c.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	slog.Debug("running hooks", "dir", dir, "args", args)
	err = c.Runner.Stream(ctx, dir, stdout, stderr, bin, args...)
	if err == nil {
		return 0, nil
	}
	code := exitCodeOf(err)
	if code < 0 {
		return 1, fmt.Errorf("run %s: %w", commandLine(err, c.Binary), err)
	}
	return code, nil
}

func exitCodeOf(err error) int {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return -1
}

func commandLine(err error, fallback string) string {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.CommandLine()
	}
	return fallback
}
