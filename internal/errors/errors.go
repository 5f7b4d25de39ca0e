// Package errors provides structured error types for quickhooks.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
)

// Code represents a unique error code.
type Code string

// Error codes for quickhooks.
const (
	CodeFileSystem       Code = "FILESYSTEM_ERROR"
	CodeToolNotFound     Code = "TOOL_NOT_FOUND"
	CodeSubprocessFailed Code = "SUBPROCESS_FAILED"
	CodeNotGitRepo       Code = "NOT_GIT_REPO"
	CodeConfigInvalid    Code = "CONFIG_INVALID"
	CodeTemplateNotFound Code = "TEMPLATE_NOT_FOUND"
)

// Category groups error codes for exit status mapping.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryFileSystem
	CategoryMissingTool
	CategorySubprocess
	CategoryUsage
)

var codeCategories = map[Code]Category{
	CodeFileSystem:       CategoryFileSystem,
	CodeToolNotFound:     CategoryMissingTool,
	CodeSubprocessFailed: CategorySubprocess,
	CodeNotGitRepo:       CategoryUsage,
	CodeConfigInvalid:    CategoryUsage,
	CodeTemplateNotFound: CategoryFileSystem,
}

// ExitCode returns the process exit status for a category.
func (c Category) ExitCode() int {
	switch c {
	case CategoryMissingTool:
		return 127
	case CategoryUsage:
		return 2
	default:
		return 1
	}
}

// HookError is the structured error type for quickhooks.
type HookError struct {
	Code  Code   `json:"code"`
	What  string `json:"what"`
	Why   string `json:"why,omitempty"`
	Fix   string `json:"fix,omitempty"`
	Path  string `json:"path,omitempty"`
	Cause error  `json:"-"`
}

// Error implements the error interface.
func (e *HookError) Error() string {
	var b strings.Builder
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString(": ")
		b.WriteString(e.Why)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *HookError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly message for CLI output.
func (e *HookError) UserMessage() string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString("\n\nWhy: ")
		b.WriteString(e.Why)
	}
	if e.Fix != "" {
		b.WriteString("\n\nFix: ")
		b.WriteString(e.Fix)
	}
	return b.String()
}

// Category returns the error category.
func (e *HookError) Category() Category {
	if cat, ok := codeCategories[e.Code]; ok {
		return cat
	}
	return CategoryUnknown
}

// MarshalJSON implements json.Marshaler.
func (e *HookError) MarshalJSON() ([]byte, error) {
	type alias HookError
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// Is reports whether target is a HookError with the same code.
func (e *HookError) Is(target error) bool {
	t, ok := target.(*HookError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause.
func (e *HookError) WithCause(err error) *HookError {
	cp := *e
	cp.Cause = err
	return &cp
}

// --- Error constructors ---

// ErrFileSystem returns an error for a template read or destination write
// that failed.
func ErrFileSystem(op, path string, cause error) *HookError {
	return &HookError{
		Code:  CodeFileSystem,
		What:  fmt.Sprintf("cannot %s %s", op, path),
		Fix:   "Check that the directory exists and is accessible, then re-run the command",
		Path:  path,
		Cause: cause,
	}
}

// ErrToolNotFound returns an error for an executable missing from PATH.
// install is the suggested install command and may be empty.
func ErrToolNotFound(tool, install string) *HookError {
	e := &HookError{
		Code: CodeToolNotFound,
		What: fmt.Sprintf("'%s' command not found", tool),
		Why:  "The executable is not on PATH",
	}
	if install != "" {
		e.Fix = fmt.Sprintf("Install it with `%s` and make sure it is on PATH", install)
	}
	return e
}

// ErrSubprocess returns an error for an external command that exited non-zero.
func ErrSubprocess(command string, exitCode int, output string) *HookError {
	return &HookError{
		Code: CodeSubprocessFailed,
		What: fmt.Sprintf("%s failed", command),
		Why:  fmt.Sprintf("exit status %d", exitCode),
		Cause: &ExitError{
			Code:   exitCode,
			Output: output,
		},
	}
}

// ErrNotGitRepo returns an error when the target is not inside a git work tree.
func ErrNotGitRepo(dir string) *HookError {
	return &HookError{
		Code: CodeNotGitRepo,
		What: fmt.Sprintf("%s is not a git repository", dir),
		Why:  "Hook scripts can only be installed into a repository's .git/hooks",
		Fix:  "Run 'git init' first, then re-run setup",
		Path: dir,
	}
}

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(field, reason string) *HookError {
	return &HookError{
		Code: CodeConfigInvalid,
		What: fmt.Sprintf("invalid configuration: %s", field),
		Why:  reason,
		Fix:  "Check .quickhooks.yaml and fix the invalid field",
	}
}

// ErrTemplateNotFound returns an error for an unknown bundled template.
func ErrTemplateNotFound(name string) *HookError {
	return &HookError{
		Code: CodeTemplateNotFound,
		What: fmt.Sprintf("template %s not found", name),
		Fix:  "Run 'quickhooks templates list' to see bundled templates",
	}
}

// ExitError carries the exit status of a child process so the CLI can
// mirror it.
type ExitError struct {
	Code   int
	Output string
}

func (e *ExitError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("exit status %d: %s", e.Code, e.Output)
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode maps err to a process exit status. A wrapped ExitError wins over
// the category of any HookError around it.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if stderrors.As(err, &exitErr) && exitErr.Code != 0 {
		return exitErr.Code
	}
	if hookErr := AsHookError(err); hookErr != nil {
		return hookErr.Category().ExitCode()
	}
	return 1
}

// AsHookError attempts to convert an error to a HookError.
// Returns nil if the error is not a HookError.
func AsHookError(err error) *HookError {
	var hookErr *HookError
	if stderrors.As(err, &hookErr) {
		return hookErr
	}
	return nil
}
