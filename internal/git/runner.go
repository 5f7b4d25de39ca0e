package git

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
)

// CommandRunner executes external commands.
// This interface allows mocking command execution in tests.
type CommandRunner interface {
	// Run executes a command and returns the trimmed stdout.
	// workDir is the working directory for the command.
	// If the command fails, it returns the stderr/stdout as the error message.
	Run(ctx context.Context, workDir string, name string, args ...string) (stdout string, err error)

	// Stream executes a command with its output connected to the given
	// writers and waits for it to exit.
	Stream(ctx context.Context, workDir string, stdout, stderr io.Writer, name string, args ...string) error
}

// ExecRunner is the default CommandRunner using exec.CommandContext.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command, capturing its output.
func (r *ExecRunner) Run(ctx context.Context, workDir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = strings.TrimSpace(stdout.String())
		}
		if errMsg == "" {
			errMsg = err.Error()
		}
		return errMsg, newCommandError(name, args, workDir, errMsg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Stream executes the command without capturing output.
func (r *ExecRunner) Stream(ctx context.Context, workDir string, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = workDir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return newCommandError(name, args, workDir, "", err)
	}
	return nil
}

// CommandError represents a command execution error.
type CommandError struct {
	Command  string
	Args     []string
	WorkDir  string
	Output   string
	ExitCode int // -1 when the process never ran or was killed by a signal
	Err      error
}

func newCommandError(name string, args []string, workDir, output string, err error) *CommandError {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &CommandError{
		Command:  name,
		Args:     args,
		WorkDir:  workDir,
		Output:   output,
		ExitCode: code,
		Err:      err,
	}
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return e.Output
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "command failed"
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// CommandLine renders the command and its arguments for messages.
func (e *CommandError) CommandLine() string {
	return strings.TrimSpace(e.Command + " " + strings.Join(e.Args, " "))
}
