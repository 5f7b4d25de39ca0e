package git

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// fakeRunner records calls and replies from a table keyed by the joined
// argument list.
type fakeRunner struct {
	calls   []string
	outputs map[string]string
	fail    map[string]int // exit code per joined args
	stdout  string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{outputs: map[string]string{}, fail: map[string]int{}}
}

func (f *fakeRunner) key(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

func (f *fakeRunner) Run(_ context.Context, workDir, name string, args ...string) (string, error) {
	k := f.key(name, args)
	f.calls = append(f.calls, k)
	out := f.outputs[k]
	if code, ok := f.fail[k]; ok {
		return out, &CommandError{Command: name, Args: args, WorkDir: workDir, Output: out, ExitCode: code, Err: fmt.Errorf("exit status %d", code)}
	}
	return out, nil
}

func (f *fakeRunner) Stream(_ context.Context, workDir string, stdout, _ io.Writer, name string, args ...string) error {
	k := f.key(name, args)
	f.calls = append(f.calls, k)
	if f.stdout != "" {
		io.WriteString(stdout, f.stdout)
	}
	if code, ok := f.fail[k]; ok {
		return &CommandError{Command: name, Args: args, WorkDir: workDir, ExitCode: code, Err: fmt.Errorf("exit status %d", code)}
	}
	return nil
}
